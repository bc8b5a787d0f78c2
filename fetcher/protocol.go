package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/domfetch/domfetch/models"
)

// Fetch runs the full page acquisition protocol for one request and
// returns the rendered document markup.
//
// Stages (numbered comments below match this list):
//
//  1. Session ensure       – lazily connect to the remote browser
//  2. Page open            – one fresh page per request
//  3. DEFER: teardown      – the page is closed exactly once on every exit path
//  4. Navigate             – DOMContentLoaded only, then a short stabilize pause
//  5. Initial wait         – fixed delay for bootstrap scripts
//  6. Scroll loop          – scrollCount iterations with adaptive content detection
//  7. Post-scroll settle   – one more scrollWaitTime, only if any scrolling happened
//  8. Network-idle wait    – bounded, non-fatal on timeout
//  9. Final render wait    – fixed pause for last script-driven mutations
//  10. Extract             – outer markup, with a coarser fallback
//
// Only connection, page-open, navigation, and extraction failures are
// fatal; everything inside the scroll loop is absorbed.
func (f *Fetcher) Fetch(ctx context.Context, req *models.FetchRequest) (*Result, error) {
	// ── 1. Session ensure ─────────────────────────────────────────────
	// On failure the session reference stays nil, so the next top-level
	// request retries the connection from scratch.
	sess, err := f.sessions.Acquire()
	if err != nil {
		return nil, models.NewFetchError(
			models.ErrCodeConnection,
			"failed to connect to remote browser",
			err,
		)
	}

	// ── 2. Page open ──────────────────────────────────────────────────
	page, err := sess.NewPage(PageOptions{
		Stealth: req.Stealth,
		Headers: req.Headers,
	})
	if err != nil {
		return nil, models.NewFetchError(
			models.ErrCodePageCreate,
			"failed to open page on remote browser",
			err,
		)
	}

	// ── 3. Teardown guard ─────────────────────────────────────────────
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("failed to close page",
				"url", req.URL,
				"error", closeErr,
			)
		}
	}()

	// ── 4. Navigate ───────────────────────────────────────────────────
	// Waits only until the base document is parsed; network quiescence
	// is deferred to stage 8.
	navStart := time.Now()
	if navErr := page.Navigate(ctx, req.URL, f.cfg.NavigationTimeout); navErr != nil {
		return nil, models.NewFetchError(
			models.ErrCodeNavigation,
			fmt.Sprintf("failed to load %s", req.URL),
			navErr,
		)
	}
	navigationMs := time.Since(navStart).Milliseconds()

	if err := sleep(ctx, f.cfg.StabilizePause); err != nil {
		return nil, err
	}

	// ── 5. Initial wait ───────────────────────────────────────────────
	if err := sleep(ctx, req.InitialWait()); err != nil {
		return nil, err
	}

	// ── 6+7. Scroll loop and post-scroll settle ───────────────────────
	scrollStart := time.Now()
	if req.ScrollCount > 0 {
		f.scrollLoop(ctx, page, req.ScrollCount, req.ScrollWait())

		// Unconditional final settle, independent of the adaptive
		// detection inside the loop.
		if err := sleep(ctx, req.ScrollWait()); err != nil {
			return nil, err
		}
	}
	scrollMs := time.Since(scrollStart).Milliseconds()

	// ── 8. Network-idle wait ──────────────────────────────────────────
	page.WaitNetworkIdle(ctx, f.cfg.NetworkIdleWindow, f.cfg.NetworkIdleTimeout)

	// ── 9. Final render wait ──────────────────────────────────────────
	if err := sleep(ctx, f.cfg.FinalRenderWait); err != nil {
		return nil, err
	}

	// ── 10. Extract ───────────────────────────────────────────────────
	content, err := f.extract(page, req.URL)
	if err != nil {
		return nil, err
	}

	return &Result{
		Content:      content,
		NavigationMs: navigationMs,
		ScrollMs:     scrollMs,
	}, nil
}
