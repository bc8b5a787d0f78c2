package fetcher

import (
	"context"
	"log/slog"
	"time"
)

// scrollLoop drives the scroll-and-detect iterations that trigger
// incremental content loading.
//
// A detachment-classified error stops the whole loop early without
// failing the request; any other iteration error is logged and the loop
// moves on. Scroll failures are never fatal to the overall fetch.
func (f *Fetcher) scrollLoop(ctx context.Context, page Page, count int, budget time.Duration) {
	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			return
		}
		if page.Closed() {
			slog.Debug("page closed, stopping scroll loop", "iteration", i)
			return
		}

		if err := f.scrollOnce(ctx, page, budget); err != nil {
			if f.isDetachment(err) {
				slog.Warn("page detached during scroll, stopping scroll loop",
					"iteration", i,
					"error", err,
				)
				return
			}
			slog.Warn("scroll iteration failed, continuing",
				"iteration", i,
				"error", err,
			)
		}
	}
}

// scrollOnce runs a single iteration: record the current height, scroll
// to the bottom, settle briefly, then wait adaptively for new content.
func (f *Fetcher) scrollOnce(ctx context.Context, page Page, budget time.Duration) error {
	previous, err := page.ScrollHeight()
	if err != nil {
		// Height reads are never fatal; scroll blind from zero.
		slog.Debug("scroll height read failed, assuming 0", "error", err)
		previous = 0
	}

	if err := page.ScrollToBottom(); err != nil {
		// A detached frame rejects script scrolling; a synthetic End key
		// press goes through the input domain instead.
		slog.Debug("smooth scroll failed, falling back to End key", "error", err)
		if keyErr := page.PressEnd(); keyErr != nil {
			return keyErr
		}
	}

	if err := sleep(ctx, f.cfg.ScrollSettle); err != nil {
		return err
	}

	f.waitForNewContent(ctx, page, previous, budget)
	return nil
}

// waitForNewContent polls the scroll height until it strictly exceeds
// previous — new content has loaded, so settle a little longer — or the
// budget is spent. Equal height does not count, and a failed read
// abandons the wait for this iteration without error.
func (f *Fetcher) waitForNewContent(ctx context.Context, page Page, previous int, budget time.Duration) {
	deadline := time.Now().Add(budget)
	for time.Now().Before(deadline) {
		if err := sleep(ctx, f.cfg.HeightPollInterval); err != nil {
			return
		}

		height, err := page.ScrollHeight()
		if err != nil {
			slog.Debug("height read failed mid-poll, abandoning detection wait",
				"error", err,
			)
			return
		}
		if height > previous {
			slog.Debug("new content detected",
				"previousHeight", previous,
				"currentHeight", height,
			)
			_ = sleep(ctx, f.cfg.NewContentSettle)
			return
		}
	}
}
