/*
Package tracing provides lightweight request tracing.

Spans carry a trace ID, propagated through the X-Trace-ID and X-Span-ID
headers, and are logged by a background collector once finished.

	tracer := tracing.New("keys-autofill", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "generate")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
