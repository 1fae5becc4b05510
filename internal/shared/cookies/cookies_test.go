package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solar-system-server/internal/shared/config"
)

func withConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	previous := config.GlobalConfig
	config.GlobalConfig = cfg
	t.Cleanup(func() { config.GlobalConfig = previous })
}

func TestSetSessionCookie(t *testing.T) {
	withConfig(t, &config.Config{
		Session:  config.SessionConfig{TTL: 2 * time.Hour, CookieSecure: true, CookieSameSite: "strict"},
		Frontend: config.FrontendConfig{URL: "https://solar.example.com"},
	})

	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "token-value")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName || c.Value != "token-value" {
		t.Errorf("Unexpected cookie %s=%s", c.Name, c.Value)
	}
	if c.MaxAge != 7200 {
		t.Errorf("Expected MaxAge 7200, got %d", c.MaxAge)
	}
	if !c.HttpOnly || !c.Secure {
		t.Error("Expected HttpOnly and Secure cookie")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("Expected strict SameSite, got %v", c.SameSite)
	}
	if c.Domain != "solar.example.com" {
		t.Errorf("Expected domain solar.example.com, got %q", c.Domain)
	}
}

func TestClearSessionCookie(t *testing.T) {
	withConfig(t, &config.Config{Frontend: config.FrontendConfig{URL: "http://localhost:8080"}})

	rec := httptest.NewRecorder()
	ClearSessionCookie(rec)

	c := rec.Result().Cookies()[0]
	if c.MaxAge >= 0 {
		t.Errorf("Expected negative MaxAge, got %d", c.MaxAge)
	}
	if c.Domain != "" {
		t.Errorf("Expected no domain for localhost, got %q", c.Domain)
	}
}

func TestParseSameSite(t *testing.T) {
	tests := map[string]http.SameSite{
		"strict":  http.SameSiteStrictMode,
		"lax":     http.SameSiteLaxMode,
		"none":    http.SameSiteNoneMode,
		"unknown": http.SameSiteLaxMode,
	}
	for input, expected := range tests {
		if got := parseSameSite(input); got != expected {
			t.Errorf("parseSameSite(%q): expected %v, got %v", input, expected, got)
		}
	}
}
