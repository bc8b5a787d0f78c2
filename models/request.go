package models

import (
	"errors"
	"time"
)

// Default wait values applied when the client leaves a field unset.
const (
	DefaultInitialWaitMs = 3000
	DefaultScrollWaitMs  = 3000
)

// FetchRequest is the payload for POST /api/v1/fetch and the argument
// set of the fetch_rendered_html tool. Field names follow the tool's
// wire schema.
type FetchRequest struct {
	// URL is the page to fetch. Required.
	URL string `json:"url" binding:"required,url"`

	// InitialWaitTime is a fixed pause in milliseconds after navigation,
	// letting bootstrap scripts run before any scrolling. A pointer so
	// that an explicit 0 (no wait) is distinguishable from unset.
	// Default: 3000.
	InitialWaitTime *int `json:"initialWaitTime,omitempty" binding:"omitempty,min=0"`

	// ScrollCount is the number of scroll-to-bottom iterations used to
	// trigger incremental ("infinite scroll") loading. Default: 0.
	ScrollCount int `json:"scrollCount,omitempty" binding:"omitempty,min=0"`

	// ScrollWaitTime is the per-iteration budget in milliseconds for
	// detecting newly loaded content, and the duration of the one-off
	// settle after the last iteration. Default: 3000.
	ScrollWaitTime *int `json:"scrollWaitTime,omitempty" binding:"omitempty,min=0"`

	// Stealth enables anti-bot-detection evasions on the remote page.
	// Default: false.
	Stealth bool `json:"stealth,omitempty"`

	// Headers are extra HTTP headers applied before navigation.
	Headers map[string]string `json:"headers,omitempty"`

	// MaxAge, in milliseconds, allows the HTTP handler to serve a cached
	// response no older than this. 0 disables cache lookup.
	MaxAge int `json:"maxAge,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *FetchRequest) Defaults() {
	if r.InitialWaitTime == nil {
		v := DefaultInitialWaitMs
		r.InitialWaitTime = &v
	}
	if r.ScrollWaitTime == nil {
		v := DefaultScrollWaitMs
		r.ScrollWaitTime = &v
	}
}

// Validate rejects malformed requests before any browser work starts.
// The gin binding performs the same checks on the HTTP path; the MCP
// adapter calls this directly.
func (r *FetchRequest) Validate() error {
	if r.URL == "" {
		return errors.New("url is required")
	}
	if r.InitialWaitTime != nil && *r.InitialWaitTime < 0 {
		return errors.New("initialWaitTime must be >= 0")
	}
	if r.ScrollCount < 0 {
		return errors.New("scrollCount must be >= 0")
	}
	if r.ScrollWaitTime != nil && *r.ScrollWaitTime < 0 {
		return errors.New("scrollWaitTime must be >= 0")
	}
	return nil
}

// InitialWait returns the initial wait as a duration. Defaults must have
// been applied.
func (r *FetchRequest) InitialWait() time.Duration {
	if r.InitialWaitTime == nil {
		return DefaultInitialWaitMs * time.Millisecond
	}
	return time.Duration(*r.InitialWaitTime) * time.Millisecond
}

// ScrollWait returns the per-iteration scroll wait as a duration.
func (r *FetchRequest) ScrollWait() time.Duration {
	if r.ScrollWaitTime == nil {
		return DefaultScrollWaitMs * time.Millisecond
	}
	return time.Duration(*r.ScrollWaitTime) * time.Millisecond
}
