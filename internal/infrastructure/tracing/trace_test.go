package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newObserved() (*Tracer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New("test", zap.New(core)), logs
}

func TestStartSpan(t *testing.T) {
	tracer, _ := newObserved()
	defer tracer.Close()

	parent, ctx := tracer.StartSpan(context.Background(), "parent")
	assert.NotEmpty(t, parent.TraceID)
	assert.Empty(t, parent.ParentID)
	assert.Equal(t, parent.TraceID, GetTraceID(ctx))
	assert.Equal(t, parent.SpanID, GetSpanID(ctx))

	child, childCtx := tracer.StartSpan(ctx, "child")
	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.NotEqual(t, parent.SpanID, child.SpanID)
	assert.Equal(t, child.SpanID, GetSpanID(childCtx))
}

func TestSubmitLogsSpans(t *testing.T) {
	tracer, logs := newObserved()

	span, _ := tracer.StartSpan(context.Background(), "ok")
	span.SetTag("cipher", "login")
	span.Finish()
	tracer.Submit(span)

	failed, _ := tracer.StartSpan(context.Background(), "failed")
	failed.SetError(errors.New("boom"))
	failed.Finish()
	tracer.Submit(failed)

	tracer.Close()

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "span completed", entries[0].Message)
	assert.Equal(t, "login", entries[0].ContextMap()["cipher"])
	assert.Equal(t, "span completed with error", entries[1].Message)
	assert.EqualValues(t, 500, entries[1].ContextMap()["status"])
}

func TestSubmitAfterClose(t *testing.T) {
	tracer, logs := newObserved()
	tracer.Close()
	tracer.Close()

	span, _ := tracer.StartSpan(context.Background(), "late")
	span.Finish()
	tracer.Submit(span)

	assert.Zero(t, logs.Len())
}

func TestFields(t *testing.T) {
	assert.Nil(t, Fields(context.Background()))

	ctx := WithTrace(context.Background(), "trace", "span")
	assert.Len(t, Fields(ctx), 2)
}

func TestHTTPMiddleware(t *testing.T) {
	tracer, logs := newObserved()

	var seen TraceID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/v1/items/:id", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/items/42", nil)
	req.Header.Set(HeaderTraceID, "remote-trace")
	req.Header.Set(HeaderSpanID, "remote-span")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	tracer.Close()

	assert.Equal(t, TraceID("remote-trace"), seen)
	assert.Equal(t, "remote-trace", rec.Header().Get(HeaderTraceID))
	assert.NotEmpty(t, rec.Header().Get(HeaderSpanID))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET /v1/items/:id", fields["operation"])
	assert.Equal(t, "remote-span", fields["parent_id"])
	assert.Equal(t, "418", fields["http.status"])
	assert.Equal(t, "/v1/items/42", fields["http.path"])
}
