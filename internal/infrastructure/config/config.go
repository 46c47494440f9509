package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/cozy/keys-autofill/internal/autofill/generate"
	"github.com/cozy/keys-autofill/internal/types"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Autofill  AutofillConfig
	Cozy      CozyConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// AutofillConfig holds the defaults of fill-script generation.
type AutofillConfig struct {
	// IdentityStrategy is "attributes" or "slots".
	IdentityStrategy     string `envconfig:"AUTOFILL_IDENTITY_STRATEGY" default:"attributes"`
	DefaultURIMatch      string `envconfig:"AUTOFILL_DEFAULT_URI_MATCH" default:"domain"`
	AllowUntrustedIframe bool   `envconfig:"AUTOFILL_ALLOW_UNTRUSTED_IFRAME" default:"false"`
	AllowTotp            bool   `envconfig:"AUTOFILL_ALLOW_TOTP" default:"true"`
	DelayMS              int    `envconfig:"AUTOFILL_DELAY_MS" default:"20"`
	// ContactsMenu qualifies birthday and job title fields for the
	// identity menu.
	ContactsMenu bool `envconfig:"AUTOFILL_CONTACTS_MENU" default:"false"`
}

// CozyConfig holds the remote attribute fetcher configuration. An empty
// URL disables remote lookups.
type CozyConfig struct {
	URL        string        `envconfig:"COZY_URL"`
	Token      string        `envconfig:"COZY_TOKEN"`
	Timeout    time.Duration `envconfig:"COZY_TIMEOUT" default:"10s"`
	RateLimit  float64       `envconfig:"COZY_RATE_LIMIT" default:"10"`
	MaxRetries int           `envconfig:"COZY_MAX_RETRIES" default:"2"`
	CacheTTL   time.Duration `envconfig:"COZY_CACHE_TTL" default:"30s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Autofill: AutofillConfig{
			IdentityStrategy: string(generate.IdentityByAttribute),
			DefaultURIMatch:  "domain",
			AllowTotp:        true,
			DelayMS:          20,
		},
		Cozy: CozyConfig{
			Timeout:    10 * time.Second,
			RateLimit:  10,
			MaxRetries: 2,
			CacheTTL:   30 * time.Second,
		},
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := c.Autofill.Strategy(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Autofill.URIMatch(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Autofill.DelayMS < 0 {
		return fmt.Errorf("invalid config: negative AUTOFILL_DELAY_MS %d", c.Autofill.DelayMS)
	}
	return nil
}

// Strategy returns the parsed identity strategy.
func (a AutofillConfig) Strategy() (generate.IdentityStrategy, error) {
	return generate.ParseIdentityStrategy(a.IdentityStrategy)
}

// URIMatch returns the parsed default URI match strategy.
func (a AutofillConfig) URIMatch() (types.UriMatchStrategy, error) {
	return types.ParseUriMatchStrategy(a.DefaultURIMatch)
}

// FillOptions returns the options bag defaults.
func (a AutofillConfig) FillOptions() types.FillOptions {
	match, _ := a.URIMatch()
	return types.FillOptions{
		AllowTotpAutofill: a.AllowTotp,
		DefaultUriMatch:   match,
	}
}
