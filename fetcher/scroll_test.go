package fetcher

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForNewContentExitsEarlyOnGrowth(t *testing.T) {
	page := &fakePage{heights: []int{2000}}
	f := newTestFetcher(&fakeSession{page: page})

	start := time.Now()
	f.waitForNewContent(context.Background(), page, 1000, 200*time.Millisecond)
	elapsed := time.Since(start)

	if elapsed > 100*time.Millisecond {
		t.Errorf("detection wait took %v, should exit on first growing poll", elapsed)
	}
	if page.heightCalls != 1 {
		t.Errorf("want 1 height poll, got %d", page.heightCalls)
	}
}

func TestWaitForNewContentConsumesFullBudgetWithoutGrowth(t *testing.T) {
	page := &fakePage{heights: []int{1000}}
	f := newTestFetcher(&fakeSession{page: page})

	start := time.Now()
	f.waitForNewContent(context.Background(), page, 1000, 50*time.Millisecond)
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond {
		t.Errorf("detection wait returned after %v, budget not consumed", elapsed)
	}
}

func TestWaitForNewContentEqualHeightDoesNotCount(t *testing.T) {
	// Height equal to previous is not new content; only a strict
	// increase triggers the early exit.
	page := &fakePage{heights: []int{1000}}
	f := newTestFetcher(&fakeSession{page: page})

	start := time.Now()
	f.waitForNewContent(context.Background(), page, 1000, 40*time.Millisecond)
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("equal height exited early after %v", elapsed)
	}
}

func TestWaitForNewContentAbandonedOnReadError(t *testing.T) {
	page := &fakePage{heightErr: errors.New("Execution context was destroyed")}
	f := newTestFetcher(&fakeSession{page: page})

	start := time.Now()
	f.waitForNewContent(context.Background(), page, 1000, 200*time.Millisecond)
	elapsed := time.Since(start)

	if elapsed > 100*time.Millisecond {
		t.Errorf("detection wait took %v, should abandon on read failure", elapsed)
	}
	if page.heightCalls != 1 {
		t.Errorf("want exactly 1 failed poll, got %d", page.heightCalls)
	}
}

func TestScrollLoopRunsAllIterations(t *testing.T) {
	page := &fakePage{heights: []int{1000}}
	f := newTestFetcher(&fakeSession{page: page})

	f.scrollLoop(context.Background(), page, 3, time.Millisecond)
	if page.scrollCalls != 3 {
		t.Errorf("want 3 scroll iterations, got %d", page.scrollCalls)
	}
}

func TestScrollLoopStopsOnDetachment(t *testing.T) {
	page := &fakePage{
		scrollErr: errors.New("eval refused"),
		pressErr:  errors.New("Target closed"),
	}
	f := newTestFetcher(&fakeSession{page: page})

	f.scrollLoop(context.Background(), page, 5, time.Millisecond)
	if page.scrollCalls != 1 {
		t.Errorf("loop should stop after the detachment, got %d iterations", page.scrollCalls)
	}
}

func TestScrollLoopContinuesOnOrdinaryError(t *testing.T) {
	page := &fakePage{
		scrollErr: errors.New("eval refused"),
		pressErr:  errors.New("keyboard input rejected"),
	}
	f := newTestFetcher(&fakeSession{page: page})

	f.scrollLoop(context.Background(), page, 4, time.Millisecond)
	if page.scrollCalls != 4 {
		t.Errorf("non-detachment errors should not stop the loop, got %d iterations", page.scrollCalls)
	}
}

func TestScrollLoopStopsWhenPageClosed(t *testing.T) {
	page := &fakePage{closed: true}
	f := newTestFetcher(&fakeSession{page: page})

	f.scrollLoop(context.Background(), page, 3, time.Millisecond)
	if page.scrollCalls != 0 {
		t.Errorf("closed page should not be scrolled, got %d iterations", page.scrollCalls)
	}
}

func TestScrollOnceFallsBackToEndKey(t *testing.T) {
	page := &fakePage{
		heights:   []int{1000},
		scrollErr: errors.New("smooth scroll rejected"),
	}
	f := newTestFetcher(&fakeSession{page: page})

	if err := f.scrollOnce(context.Background(), page, 0); err != nil {
		t.Fatalf("End key fallback should absorb the scroll failure: %v", err)
	}
	if page.pressCalls != 1 {
		t.Errorf("want 1 End key press, got %d", page.pressCalls)
	}
}

func TestScrollOnceHeightReadFailureIsNotFatal(t *testing.T) {
	page := &fakePage{heightErr: errors.New("flaky context")}
	f := newTestFetcher(&fakeSession{page: page})

	if err := f.scrollOnce(context.Background(), page, 0); err != nil {
		t.Fatalf("height read failure should be absorbed: %v", err)
	}
	if page.scrollCalls != 1 {
		t.Errorf("scroll should still run, got %d calls", page.scrollCalls)
	}
}
