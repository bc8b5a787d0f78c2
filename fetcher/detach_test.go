package fetcher

import (
	"errors"
	"testing"

	"github.com/domfetch/domfetch/config"
)

func TestIsDetachmentDefaultKeywords(t *testing.T) {
	f := newTestFetcher(&fakeSession{})

	tests := []struct {
		name string
		msg  string
		want bool
	}{
		{"target closed", "Target closed", true},
		{"session closed mixed case", "Session Closed: browser disconnected", true},
		{"detached frame", "navigating frame was detached", true},
		{"page closed", "page has been closed", true},
		{"missing context", "Cannot find context with specified id", true},
		{"ordinary failure", "net::ERR_CONNECTION_RESET", false},
		{"timeout", "context deadline exceeded", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.isDetachment(errors.New(tt.msg))
			if got != tt.want {
				t.Errorf("isDetachment(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestIsDetachmentNilError(t *testing.T) {
	f := newTestFetcher(&fakeSession{})
	if f.isDetachment(nil) {
		t.Error("nil error classified as detachment")
	}
}

func TestIsDetachmentCustomKeywords(t *testing.T) {
	cfg := testTiming()
	cfg.DetachKeywords = []string{"GONE"}
	f := New(&SessionManager{}, cfg)

	if !f.isDetachment(errors.New("page is gone")) {
		t.Error("custom keyword should match case-insensitively")
	}
	if f.isDetachment(errors.New("target closed")) {
		t.Error("default keywords should not apply when overridden")
	}
}

func TestIsDetachmentEmptyKeywordsFallBackToDefaults(t *testing.T) {
	cfg := testTiming()
	cfg.DetachKeywords = nil
	f := New(&SessionManager{}, cfg)

	if !f.isDetachment(errors.New("target closed")) {
		t.Errorf("empty keyword set should fall back to %v", config.DefaultDetachKeywords)
	}
}
