package fetcher

import (
	"context"
	"sync"
	"time"

	"github.com/domfetch/domfetch/config"
	"github.com/domfetch/domfetch/models"
)

// fakeSession and fakePage implement Session and Page so protocol tests
// can run without a browser.

type fakeSession struct {
	page       *fakePage
	newPageErr error
	lastOpts   PageOptions
	closed     bool
}

func (s *fakeSession) NewPage(opts PageOptions) (Page, error) {
	s.lastOpts = opts
	if s.newPageErr != nil {
		return nil, s.newPageErr
	}
	return s.page, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakePage struct {
	mu sync.Mutex

	// heights are returned by successive ScrollHeight calls; the last
	// value repeats once the slice is exhausted.
	heights   []int
	heightErr error // overrides heights when set

	navErr    error
	scrollErr error
	pressErr  error

	outerHTML string
	outerErr  error
	source    string
	sourceErr error

	closed bool

	heightCalls int
	scrollCalls int
	pressCalls  int
	idleCalls   int
	closeCalls  int
}

func (p *fakePage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	return p.navErr
}

func (p *fakePage) ScrollHeight() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.heightCalls++
	if p.heightErr != nil {
		return 0, p.heightErr
	}
	if len(p.heights) == 0 {
		return 0, nil
	}
	h := p.heights[0]
	if len(p.heights) > 1 {
		p.heights = p.heights[1:]
	}
	return h, nil
}

func (p *fakePage) ScrollToBottom() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrollCalls++
	return p.scrollErr
}

func (p *fakePage) PressEnd() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pressCalls++
	return p.pressErr
}

func (p *fakePage) WaitNetworkIdle(ctx context.Context, idle, timeout time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idleCalls++
}

func (p *fakePage) OuterHTML() (string, error) {
	if p.outerErr != nil {
		return "", p.outerErr
	}
	return p.outerHTML, nil
}

func (p *fakePage) RenderedSource() (string, error) {
	if p.sourceErr != nil {
		return "", p.sourceErr
	}
	return p.source, nil
}

func (p *fakePage) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeCalls++
	p.closed = true
	return nil
}

// testTiming shrinks every wait so adaptive-detection tests run in
// milliseconds.
func testTiming() config.FetcherConfig {
	return config.FetcherConfig{
		NavigationTimeout:  time.Second,
		StabilizePause:     time.Millisecond,
		ScrollSettle:       time.Millisecond,
		HeightPollInterval: 2 * time.Millisecond,
		NewContentSettle:   time.Millisecond,
		NetworkIdleWindow:  time.Millisecond,
		NetworkIdleTimeout: 5 * time.Millisecond,
		FinalRenderWait:    time.Millisecond,
	}
}

func newTestFetcher(sess Session) *Fetcher {
	sm := &SessionManager{
		controlURL: "wss://test.invalid",
		connect: func(string) (Session, error) {
			return sess, nil
		},
	}
	return New(sm, testTiming())
}

// fetchReq builds a request with explicit wait values (milliseconds).
func fetchReq(url string, initialWaitMs, scrollCount, scrollWaitMs int) *models.FetchRequest {
	return &models.FetchRequest{
		URL:             url,
		InitialWaitTime: &initialWaitMs,
		ScrollCount:     scrollCount,
		ScrollWaitTime:  &scrollWaitMs,
	}
}
