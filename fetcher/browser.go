package fetcher

import (
	"context"
	"time"
)

// Session is one live control connection to the remote browser. The
// remote service hosts multiple logical pages per connection; page
// creation is serialized on its side.
type Session interface {
	// NewPage opens a new logical page within the session.
	NewPage(opts PageOptions) (Page, error)

	// Close tears down the connection.
	Close() error
}

// PageOptions carries the per-request setup applied at page creation,
// before any navigation.
type PageOptions struct {
	// Stealth injects anti-bot-detection JS into every new document.
	Stealth bool

	// Headers are extra HTTP headers attached to all page requests.
	Headers map[string]string
}

// Page is one logical browser tab. The page acquisition protocol is
// written against this interface; the rod adapter in rod.go is the one
// production implementation.
type Page interface {
	// Navigate loads the URL and returns once the base document is
	// parsed (DOMContentLoaded), bounded by timeout. It does not wait
	// for network quiescence.
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// ScrollHeight reads document.body.scrollHeight.
	ScrollHeight() (int, error)

	// ScrollToBottom smoothly scrolls the document to its bottom.
	ScrollToBottom() error

	// PressEnd simulates an End key press, the coarse fallback when
	// script-driven scrolling fails.
	PressEnd() error

	// WaitNetworkIdle blocks until no network request has started within
	// the idle window, bounded by timeout. Expiry is not an error.
	WaitNetworkIdle(ctx context.Context, idle, timeout time.Duration)

	// OuterHTML evaluates document.documentElement.outerHTML in the page
	// context. Primary extraction strategy.
	OuterHTML() (string, error)

	// RenderedSource retrieves the rendered document through the DOM
	// domain rather than script evaluation. Fallback extraction strategy.
	RenderedSource() (string, error)

	// Closed reports whether the page has been closed or detached.
	Closed() bool

	// Close destroys the page. Safe to call on an already-closed page.
	Close() error
}
