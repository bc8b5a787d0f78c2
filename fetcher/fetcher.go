// Package fetcher implements the page acquisition protocol: the ordered
// sequence of navigation, staged waits, scroll-triggered content loading
// with adaptive detection, network-quiescence waiting, and content
// extraction with fallback, executed against a remote browser session.
package fetcher

import (
	"context"
	"strings"
	"time"

	"github.com/domfetch/domfetch/config"
)

// Fetcher runs fetch requests against the shared remote browser session.
// It is safe for concurrent use; concurrent requests share the session
// but each open their own page.
type Fetcher struct {
	sessions *SessionManager
	cfg      config.FetcherConfig
	detach   []string // lowercased detachment keywords
}

// New creates a Fetcher using the given session manager and timing
// configuration.
func New(sessions *SessionManager, cfg config.FetcherConfig) *Fetcher {
	keywords := cfg.DetachKeywords
	if len(keywords) == 0 {
		keywords = config.DefaultDetachKeywords
	}
	detach := make([]string, len(keywords))
	for i, kw := range keywords {
		detach[i] = strings.ToLower(kw)
	}

	return &Fetcher{
		sessions: sessions,
		cfg:      cfg,
		detach:   detach,
	}
}

// Sessions exposes the session manager, for health reporting and
// shutdown wiring.
func (f *Fetcher) Sessions() *SessionManager {
	return f.sessions
}

// isDetachment reports whether err indicates the page or its frame
// disappeared. The remote service surfaces this only through error
// message wording, hence the substring match.
func (f *Fetcher) isDetachment(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, kw := range f.detach {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// sleep suspends for d, or returns early with the context error if the
// request is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
