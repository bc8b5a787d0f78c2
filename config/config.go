package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Fetcher   FetcherConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig describes the remote browser-automation endpoint.
// The control URL is built from Scheme/Host/Path plus the credential
// Token, unless Endpoint overrides the whole thing.
type BrowserConfig struct {
	// Endpoint, when set, is used verbatim as the control URL.
	Endpoint string

	// Scheme is the control URL scheme. default: "wss"
	Scheme string

	// Host is the remote browser service host. default: "chrome.browserless.io"
	Host string

	// Path is the control URL path. default: "/"
	Path string

	// Token is the credential passed to the remote service. Required
	// unless Endpoint is set.
	Token string
}

// ControlURL assembles the connection string for the remote browser.
func (c BrowserConfig) ControlURL() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	u := url.URL{
		Scheme:   c.Scheme,
		Host:     c.Host,
		Path:     c.Path,
		RawQuery: url.Values{"token": {c.Token}}.Encode(),
	}
	return u.String()
}

// Validate checks that the endpoint is usable. Called at process start;
// a missing credential is fatal before any request is accepted.
func (c BrowserConfig) Validate() error {
	if c.Endpoint == "" && c.Token == "" {
		return errors.New("remote browser token is required: set DOMFETCH_BROWSER_TOKEN or DOMFETCH_BROWSER_ENDPOINT")
	}
	return nil
}

// FetcherConfig controls the page-acquisition timing and the detachment
// keyword set.
type FetcherConfig struct {
	// NavigationTimeout bounds page.Navigate plus the DOMContentLoaded wait.
	NavigationTimeout time.Duration // default: 30s

	// StabilizePause runs once after a successful navigation.
	StabilizePause time.Duration // default: 1s

	// ScrollSettle is the pause after each scroll command.
	ScrollSettle time.Duration // default: 500ms

	// HeightPollInterval is the cadence of scroll-height polling.
	HeightPollInterval time.Duration // default: 500ms

	// NewContentSettle is the extra pause after new content is detected.
	NewContentSettle time.Duration // default: 1s

	// NetworkIdleWindow is the trailing quiet window that counts as idle.
	NetworkIdleWindow time.Duration // default: 500ms

	// NetworkIdleTimeout bounds the whole network-idle wait. Expiry is
	// non-fatal.
	NetworkIdleTimeout time.Duration // default: 5s

	// FinalRenderWait is the unconditional pause before extraction.
	FinalRenderWait time.Duration // default: 1s

	// DetachKeywords are matched (case-insensitively) against error
	// messages to recognise a page or frame that disappeared. The remote
	// service's error wording drifts between versions, so the set is
	// configurable rather than hardcoded.
	DetachKeywords []string
}

// CacheConfig controls the fetch response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000
}

// AuthConfig controls API key authentication on the HTTP surface.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// DefaultDetachKeywords is the baseline set of substrings that mark an
// error as a detachment signal.
var DefaultDetachKeywords = []string{
	"detached",
	"target closed",
	"session closed",
	"page has been closed",
	"cannot find context",
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("DOMFETCH_HOST", "0.0.0.0"),
			Port: envIntOr("DOMFETCH_PORT", 8080),
			Mode: envOr("DOMFETCH_MODE", "release"),
		},
		Browser: BrowserConfig{
			Endpoint: os.Getenv("DOMFETCH_BROWSER_ENDPOINT"),
			Scheme:   envOr("DOMFETCH_BROWSER_SCHEME", "wss"),
			Host:     envOr("DOMFETCH_BROWSER_HOST", "chrome.browserless.io"),
			Path:     envOr("DOMFETCH_BROWSER_PATH", "/"),
			Token:    os.Getenv("DOMFETCH_BROWSER_TOKEN"),
		},
		Fetcher: FetcherConfig{
			NavigationTimeout:  envDurationOr("DOMFETCH_NAV_TIMEOUT", 30*time.Second),
			StabilizePause:     envDurationOr("DOMFETCH_STABILIZE_PAUSE", time.Second),
			ScrollSettle:       envDurationOr("DOMFETCH_SCROLL_SETTLE", 500*time.Millisecond),
			HeightPollInterval: envDurationOr("DOMFETCH_HEIGHT_POLL_INTERVAL", 500*time.Millisecond),
			NewContentSettle:   envDurationOr("DOMFETCH_NEW_CONTENT_SETTLE", time.Second),
			NetworkIdleWindow:  envDurationOr("DOMFETCH_NETWORK_IDLE_WINDOW", 500*time.Millisecond),
			NetworkIdleTimeout: envDurationOr("DOMFETCH_NETWORK_IDLE_TIMEOUT", 5*time.Second),
			FinalRenderWait:    envDurationOr("DOMFETCH_FINAL_RENDER_WAIT", time.Second),
			DetachKeywords:     envSliceOr("DOMFETCH_DETACH_KEYWORDS", DefaultDetachKeywords),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("DOMFETCH_AUTH_ENABLED", true),
			APIKeys: envSliceOr("DOMFETCH_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("DOMFETCH_RATE_RPS", 5.0),
			Burst:             envIntOr("DOMFETCH_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("DOMFETCH_CACHE_MAX_ENTRIES", 1000),
		},
		Log: LogConfig{
			Level:  envOr("DOMFETCH_LOG_LEVEL", "info"),
			Format: envOr("DOMFETCH_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
