package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/autofill"
	"github.com/cozy/keys-autofill/internal/autofill/qualify"
	"github.com/cozy/keys-autofill/internal/infrastructure/monitoring"
	"github.com/cozy/keys-autofill/internal/infrastructure/resilience"
	"github.com/cozy/keys-autofill/internal/infrastructure/tracing"
	"github.com/cozy/keys-autofill/internal/providers/scraper"
	"github.com/cozy/keys-autofill/internal/types"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// BreakerStater reports the circuit state of a remote dependency.
type BreakerStater interface {
	BreakerState() resilience.State
}

// Defaults are the server-side settings applied to requests that do not
// carry their own.
type Defaults struct {
	Fill                 types.FillOptions
	AllowUntrustedIframe bool
}

// Handlers contains all HTTP handlers
type Handlers struct {
	service   *autofill.Service
	qualifier *qualify.Qualifier
	collector *scraper.Collector
	defaults  Defaults

	log     *zap.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	remote  BreakerStater
}

// NewHandlers creates a new handler set
func NewHandlers(service *autofill.Service, qualifier *qualify.Qualifier, collector *scraper.Collector) *Handlers {
	return &Handlers{
		service:   service,
		qualifier: qualifier,
		collector: collector,
		log:       zap.NewNop(),
	}
}

// WithDefaults sets the request defaults.
func (h *Handlers) WithDefaults(d Defaults) *Handlers {
	h.defaults = d
	return h
}

// WithLogger sets the logger.
func (h *Handlers) WithLogger(log *zap.Logger) *Handlers {
	if log != nil {
		h.log = log
	}
	return h
}

// WithMetrics adds metrics tracking to the handlers
func (h *Handlers) WithMetrics(metrics *monitoring.Metrics) *Handlers {
	h.metrics = metrics
	return h
}

// WithTracer traces the engine calls of each request.
func (h *Handlers) WithTracer(tracer *tracing.Tracer) *Handlers {
	h.tracer = tracer
	return h
}

// WithRemote reports the remote attribute fetcher in health checks.
func (h *Handlers) WithRemote(remote BreakerStater) *Handlers {
	h.remote = remote
	return h
}

// Register mounts the routes on router.
func (h *Handlers) Register(router gin.IRoutes) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	router.POST("/v1/page-details", h.PageDetails)
	router.POST("/v1/fill-script", h.FillScript)
	router.POST("/v1/autofill", h.AutoFill)
	router.POST("/v1/qualify", h.Qualify)
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "cozy-keys-autofill",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{"status": "healthy"}
	if h.metrics != nil {
		resp["metrics"] = h.metrics.Snapshot()
	}
	if h.remote != nil {
		state := h.remote.BreakerState()
		resp["cozy"] = gin.H{"breaker": state.String()}
		if state == resilience.StateOpen {
			resp["status"] = "degraded"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// trace runs fn inside a span named name when a tracer is set.
func (h *Handlers) trace(ctx context.Context, name string, fn func(context.Context) error) error {
	if h.tracer == nil {
		return fn(ctx)
	}
	span, ctx := h.tracer.StartSpan(ctx, name)
	err := fn(ctx)
	if err != nil {
		span.SetError(err)
	}
	span.Finish()
	h.tracer.Submit(span)
	return err
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
