package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		// Route templates keep the path label bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())
		if respSize < 0 {
			respSize = 0
		}

		metrics.RecordHTTPRequest(method, path, status, time.Since(start), reqSize, respSize)
	}
}

// Timer measures a remote attribute lookup
type Timer struct {
	start     time.Time
	metrics   *Metrics
	attribute string
}

// NewTimer creates a new timer. A nil metrics gives a timer whose Stop
// does nothing.
func NewTimer(metrics *Metrics, attribute string) *Timer {
	return &Timer{
		start:     time.Now(),
		metrics:   metrics,
		attribute: attribute,
	}
}

// Stop stops the timer and records the lookup
func (t *Timer) Stop(status string) {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordRemoteAttribute(t.attribute, status, time.Since(t.start))
}
