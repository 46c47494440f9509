// Package middleware provides the HTTP middleware of the autofill API.
//
//   - CORS: cross-origin access, including browser extension origins
//   - RateLimit: per-IP token bucket with idle client eviction
//   - GlobalRateLimit: one bucket shared by every client
//   - BodyLimit: request body size cap
//
// Rejected requests get a 429 with a Retry-After header.
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
