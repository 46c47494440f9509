// Package config provides 12-factor configuration management for the
// autofill service.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Autofill: identity strategy, default URI match, TOTP and iframe policy
//   - Cozy: remote attribute fetcher (instance URL, token, timeouts)
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - AUTOFILL_IDENTITY_STRATEGY, AUTOFILL_DEFAULT_URI_MATCH,
//     AUTOFILL_ALLOW_UNTRUSTED_IFRAME, AUTOFILL_ALLOW_TOTP,
//     AUTOFILL_DELAY_MS, AUTOFILL_CONTACTS_MENU
//   - COZY_URL, COZY_TOKEN, COZY_TIMEOUT, COZY_RATE_LIMIT,
//     COZY_MAX_RETRIES, COZY_CACHE_TTL
package config
