package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/cozy/keys-autofill/internal/api/http"
	"github.com/cozy/keys-autofill/internal/api/middleware"
	"github.com/cozy/keys-autofill/internal/autofill"
	"github.com/cozy/keys-autofill/internal/autofill/generate"
	"github.com/cozy/keys-autofill/internal/autofill/qualify"
	"github.com/cozy/keys-autofill/internal/infrastructure/config"
	"github.com/cozy/keys-autofill/internal/infrastructure/logging"
	"github.com/cozy/keys-autofill/internal/infrastructure/monitoring"
	"github.com/cozy/keys-autofill/internal/infrastructure/tracing"
	"github.com/cozy/keys-autofill/internal/providers/cozy"
	"github.com/cozy/keys-autofill/internal/providers/scraper"
	"github.com/cozy/keys-autofill/internal/providers/totp"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return newServer(cfg, logger)
}

func newServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	strategy, err := cfg.Autofill.Strategy()
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing autofill server",
		zap.String("port", cfg.Server.Port),
		zap.String("identity_strategy", string(strategy)),
		zap.Bool("cozy", cfg.Cozy.URL != ""),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)
	tracer := tracing.New("keys-autofill", logger.Component("tracing"))

	deps := generate.Deps{
		Log:  logger.Component("autofill"),
		Totp: totp.NewProvider(),
	}
	var remote *cozy.Client
	if cfg.Cozy.URL != "" {
		remote = cozy.NewClient(cozy.Config{
			URL:        cfg.Cozy.URL,
			Token:      cfg.Cozy.Token,
			Timeout:    cfg.Cozy.Timeout,
			RateLimit:  cfg.Cozy.RateLimit,
			MaxRetries: cfg.Cozy.MaxRetries,
			CacheTTL:   cfg.Cozy.CacheTTL,
		}).WithLogger(logger.Component("cozy")).WithMetrics(metrics)
		deps.Source = remote
		logger.Info("Remote attributes enabled", zap.String("url", cfg.Cozy.URL))
	}

	service := autofill.NewService(autofill.Config{
		IdentityStrategy: strategy,
		Delay:            cfg.Autofill.DelayMS,
	}, deps).WithMetrics(metrics)
	qualifier := qualify.New(
		qualify.WithLogger(logger.Component("qualify")),
		qualify.WithContactsForIdentityForms(cfg.Autofill.ContactsMenu),
	)
	collector := scraper.NewCollector().WithLogger(logger.Component("scraper"))

	handlers := api.NewHandlers(service, qualifier, collector).
		WithLogger(logger.Component("api")).
		WithMetrics(metrics).
		WithTracer(tracer).
		WithDefaults(api.Defaults{
			Fill:                 cfg.Autofill.FillOptions(),
			AllowUntrustedIframe: cfg.Autofill.AllowUntrustedIframe,
		})
	if remote != nil {
		handlers.WithRemote(remote)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.BodyLimit(middleware.DefaultMaxBodySize))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
	}, nil
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server. It returns nil once Shutdown was called.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for the in-flight ones until
// ctx is done, then flushes traces and logs.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()

	return err
}
