package fetcher

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"
)

// connectRemote dials the remote browser service over its CDP WebSocket
// control URL. No local browser is ever launched.
func connectRemote(controlURL string) (Session, error) {
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}
	return &rodSession{browser: browser}, nil
}

type rodSession struct {
	browser *rod.Browser
}

func (s *rodSession) NewPage(opts PageOptions) (Page, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}

	rp := newRodPage(s.browser, page)

	// Stealth and headers only take effect for navigations that happen
	// after they are installed, so both run before the caller navigates.
	if opts.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}
	if len(opts.Headers) > 0 {
		if hdrErr := (proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(opts.Headers),
		}).Call(page); hdrErr != nil {
			slog.Warn("failed to set extra headers, proceeding without them",
				"error", hdrErr,
			)
		}
	}

	return rp, nil
}

func (s *rodSession) Close() error {
	return s.browser.Close()
}

// rodPage adapts *rod.Page to the Page interface.
type rodPage struct {
	page      *rod.Page
	closed    atomic.Bool
	stopWatch context.CancelFunc
}

// newRodPage wraps the page and subscribes to target destruction so
// Closed() reflects pages that disappear underneath us (navigated away,
// closed remotely, session dropped).
func newRodPage(browser *rod.Browser, page *rod.Page) *rodPage {
	rp := &rodPage{page: page}

	watchCtx, cancel := context.WithCancel(browser.GetContext())
	rp.stopWatch = cancel

	targetID := page.TargetID
	go browser.Context(watchCtx).EachEvent(func(e *proto.TargetTargetDestroyed) bool {
		if e.TargetID == targetID {
			rp.closed.Store(true)
			return true
		}
		return false
	})()

	return rp
}

func (p *rodPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)

	// The event listener must be registered before Navigate, otherwise a
	// fast page fires DOMContentLoaded before we start waiting.
	wait := page.WaitEvent(&proto.PageDomContentEventFired{})
	if err := page.Navigate(url); err != nil {
		return err
	}
	wait()

	return page.GetContext().Err()
}

func (p *rodPage) ScrollHeight() (int, error) {
	res, err := p.page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (p *rodPage) ScrollToBottom() error {
	_, err := p.page.Eval(`() => window.scrollTo({ top: document.body.scrollHeight, behavior: "smooth" })`)
	return err
}

func (p *rodPage) PressEnd() error {
	return p.page.Keyboard.Press(input.End)
}

func (p *rodPage) WaitNetworkIdle(ctx context.Context, idle, timeout time.Duration) {
	page := p.page.Context(ctx).Timeout(timeout)
	wait := page.WaitRequestIdle(idle, nil, nil, nil)
	wait()
}

func (p *rodPage) OuterHTML() (string, error) {
	res, err := p.page.Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (p *rodPage) RenderedSource() (string, error) {
	return p.page.HTML()
}

func (p *rodPage) Closed() bool {
	return p.closed.Load()
}

func (p *rodPage) Close() error {
	p.stopWatch()
	if p.closed.Swap(true) {
		return nil
	}
	return p.page.Close()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders
// type (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
