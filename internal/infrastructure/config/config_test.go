package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cozy/keys-autofill/internal/autofill/generate"
	"github.com/cozy/keys-autofill/internal/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	// Autofill config
	assert.Equal(t, "attributes", cfg.Autofill.IdentityStrategy)
	assert.Equal(t, 20, cfg.Autofill.DelayMS)
	assert.True(t, cfg.Autofill.AllowTotp)
	assert.False(t, cfg.Autofill.AllowUntrustedIframe)

	// Cozy config
	assert.Empty(t, cfg.Cozy.URL)
	assert.Equal(t, 10*time.Second, cfg.Cozy.Timeout)

	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                            "9000",
		"HOST":                            "127.0.0.1",
		"LOG_LEVEL":                       "debug",
		"LOG_DEV":                         "true",
		"RATE_LIMIT_RPS":                  "500",
		"RATE_LIMIT_BURST":                "1000",
		"RATE_LIMIT_ENABLED":              "false",
		"AUTOFILL_IDENTITY_STRATEGY":      "slots",
		"AUTOFILL_DEFAULT_URI_MATCH":      "host",
		"AUTOFILL_ALLOW_UNTRUSTED_IFRAME": "true",
		"AUTOFILL_ALLOW_TOTP":             "false",
		"AUTOFILL_DELAY_MS":               "50",
		"AUTOFILL_CONTACTS_MENU":          "true",
		"COZY_URL":                        "https://alice.mycozy.cloud",
		"COZY_TOKEN":                      "token",
		"COZY_TIMEOUT":                    "3s",
		"COZY_CACHE_TTL":                  "1m",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)

	strategy, err := cfg.Autofill.Strategy()
	require.NoError(t, err)
	assert.Equal(t, generate.IdentityBySlot, strategy)
	assert.True(t, cfg.Autofill.AllowUntrustedIframe)
	assert.Equal(t, 50, cfg.Autofill.DelayMS)
	assert.True(t, cfg.Autofill.ContactsMenu)
	assert.Equal(t, types.FillOptions{DefaultUriMatch: types.UriMatchHost}, cfg.Autofill.FillOptions())

	assert.Equal(t, "https://alice.mycozy.cloud", cfg.Cozy.URL)
	assert.Equal(t, "token", cfg.Cozy.Token)
	assert.Equal(t, 3*time.Second, cfg.Cozy.Timeout)
	assert.Equal(t, time.Minute, cfg.Cozy.CacheTTL)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"identity strategy", "AUTOFILL_IDENTITY_STRATEGY", "guess"},
		{"uri match", "AUTOFILL_DEFAULT_URI_MATCH", "fuzzy"},
		{"negative delay", "AUTOFILL_DELAY_MS", "-1"},
		{"malformed duration", "COZY_TIMEOUT", "soon"},
		{"malformed bool", "LOG_DEV", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)

			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
}

func TestServerConfig(t *testing.T) {
	tests := []struct {
		name     string
		port     string
		host     string
		wantPort string
		wantHost string
	}{
		{"default values", "", "", "8000", "0.0.0.0"},
		{"custom port", "9000", "", "9000", "0.0.0.0"},
		{"custom host", "", "localhost", "8000", "localhost"},
		{"custom port and host", "3000", "127.0.0.1", "3000", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.port != "" {
				t.Setenv("PORT", tt.port)
			}
			if tt.host != "" {
				t.Setenv("HOST", tt.host)
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantPort, cfg.Server.Port)
			assert.Equal(t, tt.wantHost, cfg.Server.Host)
		})
	}
}
