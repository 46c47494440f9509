package cozy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cozy/keys-autofill/internal/infrastructure/monitoring"
	"github.com/cozy/keys-autofill/internal/infrastructure/resilience"
)

var (
	// ErrAttributeNotFound is returned when the document or the attribute
	// does not exist. It does not count against the circuit breaker.
	ErrAttributeNotFound = errors.New("attribute not found")
	// ErrNoDocument is returned for records that reference no document.
	ErrNoDocument = errors.New("record has no cozy document")
)

// Config configures the client.
type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
	// RateLimit is the request budget per second, 0 for unlimited.
	RateLimit  float64
	MaxRetries int
	RetryWait  time.Duration
	// CacheTTL keeps fetched documents so that one fill fetches each
	// document once.
	CacheTTL time.Duration
}

// Client reads contact and paper documents of a Cozy instance.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	log     *zap.Logger
	metrics *monitoring.Metrics
	ttl     time.Duration

	mu    sync.Mutex
	cache map[string]cachedDoc
}

type cachedDoc struct {
	doc     document
	expires time.Time
}

// NewClient creates a client for the instance at cfg.URL.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryWait == 0 {
		cfg.RetryWait = 500 * time.Millisecond
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWait
	retryClient.RetryWaitMax = 10 * cfg.RetryWait
	retryClient.Logger = nil

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "cozy-keys-autofill/1.0")
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(1, int(cfg.RateLimit)))
	}

	c := &Client{
		resty:   restyClient,
		limiter: limiter,
		log:     zap.NewNop(),
		ttl:     cfg.CacheTTL,
		cache:   map[string]cachedDoc{},
	}
	c.breaker = resilience.New("cozy", resilience.Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrAttributeNotFound)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			c.log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})
	return c
}

// WithLogger sets the logger.
func (c *Client) WithLogger(log *zap.Logger) *Client {
	if log != nil {
		c.log = log
	}
	return c
}

// WithMetrics adds metrics tracking to the client
func (c *Client) WithMetrics(metrics *monitoring.Metrics) *Client {
	c.metrics = metrics
	return c
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// fetch returns the document at path, from the cache when fresh.
func (c *Client) fetch(ctx context.Context, path string, decode func(*resty.Response) (document, error)) (document, error) {
	if doc, ok := c.cached(path); ok {
		return doc, nil
	}

	var doc document
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
		resp, err := c.resty.R().SetContext(ctx).Get(path)
		if err != nil {
			return fmt.Errorf("get %s: %w", path, err)
		}
		switch {
		case resp.StatusCode() == http.StatusNotFound:
			return fmt.Errorf("%s: %w", path, ErrAttributeNotFound)
		case resp.IsError():
			return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode())
		}
		doc, err = decode(resp)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.store(path, doc)
	return doc, nil
}

func (c *Client) cached(key string) (document, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expires) {
		delete(c.cache, key)
		return nil, false
	}
	return entry.doc, true
}

func (c *Client) store(key string, doc document) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cachedDoc{doc: doc, expires: time.Now().Add(c.ttl)}
}
