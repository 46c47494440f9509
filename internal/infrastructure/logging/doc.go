// Package logging builds the zap loggers of the service.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The autofill packages take a plain *zap.Logger; Component hands each of
// them a named child so entries read "autofill", "qualify", "cozy"...
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	svc := autofill.NewService(cfg, generate.Deps{Log: logger.Component("autofill")})
package logging
