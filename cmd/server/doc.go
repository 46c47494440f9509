// Package main is the entry point of the autofill HTTP server.
//
// The server collects page details from HTML, generates fill scripts for
// logins, cards, identities, contacts and papers, and qualifies page fields.
//
// Configuration:
//   - Environment variables (PORT, LOG_LEVEL, AUTOFILL_*, COZY_*)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev -log-level debug
//
//	# Remote contact and paper attributes
//	COZY_TOKEN=... ./server -cozy https://alice.mycozy.cloud
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
