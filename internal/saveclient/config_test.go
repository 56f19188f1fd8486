package saveclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("LIFEMAP_ENDPOINT", "")
	t.Setenv("LIFEMAP_SAVE_TIMEOUT_MS", "")

	cfg := LoadConfig()
	assert.Equal(t, "http://127.0.0.1:5000", cfg.Endpoint)
	assert.Zero(t, cfg.TimeoutMs, "no timeout unless configured")
	assert.False(t, cfg.LogCalls)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LIFEMAP_ENDPOINT", "https://lifemap.example.com/")
	t.Setenv("LIFEMAP_SESSION_COOKIE", "tok")
	t.Setenv("LIFEMAP_SAVE_TIMEOUT_MS", "2500")
	t.Setenv("LIFEMAP_LOG", "true")

	cfg := LoadConfig()
	assert.Equal(t, "https://lifemap.example.com", cfg.Endpoint)
	assert.Equal(t, "session=tok", cfg.cookieHeader())
	assert.Equal(t, 2500, cfg.TimeoutMs)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfig_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("LIFEMAP_SAVE_TIMEOUT_MS", "soon")
	assert.Zero(t, LoadConfig().TimeoutMs)
}

func TestCookieHeader_FullPair(t *testing.T) {
	cfg := Config{SessionCookie: "remember_token=xyz"}
	assert.Equal(t, "remember_token=xyz", cfg.cookieHeader())
	assert.Empty(t, Config{}.cookieHeader())
}
