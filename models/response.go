package models

// FetchResponse is the response for POST /api/v1/fetch.
type FetchResponse struct {
	// Success indicates whether the fetch completed without errors.
	Success bool `json:"success"`

	// Content is the serialized outer markup of the rendered document.
	Content string `json:"content,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// NavigationMs is the time spent loading the base document.
	NavigationMs int64 `json:"navigation_ms"`

	// ScrollMs is the time spent in the scroll-and-detect loop.
	ScrollMs int64 `json:"scroll_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string        `json:"status"` // "healthy" or "degraded"
	Uptime  string        `json:"uptime"`
	Browser BrowserStatus `json:"browser"`
	Version string        `json:"version"`
}

// BrowserStatus reports the state of the remote browser session.
type BrowserStatus struct {
	// Connected is true when a live session to the remote browser exists.
	// The session is lazily created, so false before the first fetch is
	// normal.
	Connected bool `json:"connected"`
}
