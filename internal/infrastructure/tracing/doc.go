/*
Package tracing provides lightweight request tracing for the shell API.

Each HTTP request gets a span keyed by a ULID request id. Incoming
X-Trace-ID / X-Span-ID headers are honoured so a browser session can
correlate its calls; the ids are echoed back on every response. Finished
spans are queued to a buffered collector and logged at debug level.

	tracer := tracing.New("namixos", logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))

The buffer holds DefaultBufferSize spans; when full, spans are dropped
with a warning rather than blocking the request.
*/
package tracing
