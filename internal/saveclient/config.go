package saveclient

import (
	"os"
	"strconv"
	"strings"
)

// SessionCookieName is the cookie the LifeMap web app keeps its login in.
const SessionCookieName = "session"

// Config holds the settings of the save endpoint client.
type Config struct {
	// Endpoint is the web app's base URL; "/save-tasks" is appended.
	Endpoint string
	// SessionCookie is the value of the web app's session cookie, or a
	// complete "name=value" pair.
	SessionCookie string
	// TimeoutMs bounds a save request. Zero leaves it to the transport.
	TimeoutMs int
	LogCalls  bool
}

// DefaultConfig points at a local development server with no timeout.
func DefaultConfig() Config {
	return Config{
		Endpoint: "http://127.0.0.1:5000",
	}
}

// LoadConfig reads the client settings from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LIFEMAP_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("LIFEMAP_SESSION_COOKIE"); v != "" {
		cfg.SessionCookie = v
	}
	if v := os.Getenv("LIFEMAP_SAVE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("LIFEMAP_LOG"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// cookieHeader renders SessionCookie as a Cookie header value.
func (c Config) cookieHeader() string {
	if c.SessionCookie == "" || strings.Contains(c.SessionCookie, "=") {
		return c.SessionCookie
	}
	return SessionCookieName + "=" + c.SessionCookie
}
