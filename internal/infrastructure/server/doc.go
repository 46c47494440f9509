// Package server wires the autofill engine behind its HTTP API.
//
// NewServer builds, from the configuration:
//   - the logger, Prometheus registry and tracer
//   - the TOTP provider and, when COZY_URL is set, the remote attribute client
//   - the autofill service, qualifier and page collector
//   - the middleware stack (recovery, tracing, metrics, CORS, body limit,
//     rate limiting)
//   - the API routes and /metrics
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go srv.Run()
//	...
//	srv.Shutdown(ctx)
package server
