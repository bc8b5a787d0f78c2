package config

import (
	"strings"
	"testing"
	"time"
)

func TestBrowserConfigControlURL(t *testing.T) {
	cfg := BrowserConfig{
		Scheme: "wss",
		Host:   "chrome.browserless.io",
		Path:   "/",
		Token:  "abc 123",
	}

	u := cfg.ControlURL()
	if !strings.HasPrefix(u, "wss://chrome.browserless.io/") {
		t.Errorf("unexpected control URL: %q", u)
	}
	if !strings.Contains(u, "token=abc+123") {
		t.Errorf("token not query-encoded: %q", u)
	}
}

func TestBrowserConfigEndpointOverride(t *testing.T) {
	cfg := BrowserConfig{
		Endpoint: "ws://localhost:9222/devtools",
		Scheme:   "wss",
		Host:     "ignored.example",
		Token:    "ignored",
	}

	if got := cfg.ControlURL(); got != "ws://localhost:9222/devtools" {
		t.Errorf("endpoint override not honored: %q", got)
	}
}

func TestBrowserConfigValidate(t *testing.T) {
	if err := (BrowserConfig{}).Validate(); err == nil {
		t.Error("missing token should fail validation")
	}
	if err := (BrowserConfig{Token: "t"}).Validate(); err != nil {
		t.Errorf("token alone should validate: %v", err)
	}
	if err := (BrowserConfig{Endpoint: "ws://localhost:9222"}).Validate(); err != nil {
		t.Errorf("explicit endpoint should validate without token: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Fetcher.NavigationTimeout != 30*time.Second {
		t.Errorf("navigation timeout default = %v", cfg.Fetcher.NavigationTimeout)
	}
	if cfg.Fetcher.NetworkIdleWindow != 500*time.Millisecond {
		t.Errorf("network idle window default = %v", cfg.Fetcher.NetworkIdleWindow)
	}
	if cfg.Fetcher.NetworkIdleTimeout != 5*time.Second {
		t.Errorf("network idle timeout default = %v", cfg.Fetcher.NetworkIdleTimeout)
	}
	if len(cfg.Fetcher.DetachKeywords) == 0 {
		t.Error("detach keywords default missing")
	}
	if cfg.Browser.Scheme != "wss" {
		t.Errorf("browser scheme default = %q", cfg.Browser.Scheme)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DOMFETCH_NAV_TIMEOUT", "10s")
	t.Setenv("DOMFETCH_BROWSER_HOST", "browser.internal")
	t.Setenv("DOMFETCH_DETACH_KEYWORDS", "gone, vanished")
	t.Setenv("DOMFETCH_RATE_RPS", "2.5")

	cfg := Load()

	if cfg.Fetcher.NavigationTimeout != 10*time.Second {
		t.Errorf("navigation timeout override = %v", cfg.Fetcher.NavigationTimeout)
	}
	if cfg.Browser.Host != "browser.internal" {
		t.Errorf("browser host override = %q", cfg.Browser.Host)
	}
	if len(cfg.Fetcher.DetachKeywords) != 2 || cfg.Fetcher.DetachKeywords[1] != "vanished" {
		t.Errorf("detach keywords override = %v", cfg.Fetcher.DetachKeywords)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("rate override = %v", cfg.RateLimit.RequestsPerSecond)
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("DOMFETCH_PORT", "not-a-number")
	t.Setenv("DOMFETCH_STABILIZE_PAUSE", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("malformed port should fall back to default, got %d", cfg.Server.Port)
	}
	if cfg.Fetcher.StabilizePause != time.Second {
		t.Errorf("malformed duration should fall back to default, got %v", cfg.Fetcher.StabilizePause)
	}
}
