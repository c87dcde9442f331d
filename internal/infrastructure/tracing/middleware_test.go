package tracing

import (
	"context"
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

func TestHTTPMiddlewareSetsHeaders(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := New("test", zap.New(core))

	var seen TraceID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/shell", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shell", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	traceID := w.Header().Get(HeaderTraceID)
	require.NotEmpty(t, traceID)
	assert.NotEmpty(t, w.Header().Get(HeaderSpanID))
	assert.Equal(t, TraceID(traceID), seen)

	tracer.Close()
	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "GET /shell", entries[0].ContextMap()["operation"])
}

func TestHTTPMiddlewarePropagatesTrace(t *testing.T) {
	tracer := New("test", nil)
	defer tracer.Close()

	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderTraceID, "trace-abc")
	req.Header.Set(HeaderSpanID, "span-parent")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "trace-abc", w.Header().Get(HeaderTraceID))
	assert.NotEqual(t, "span-parent", w.Header().Get(HeaderSpanID))
}

func TestStartSpanParenting(t *testing.T) {
	tracer := New("test", nil)
	defer tracer.Close()

	root, ctx := tracer.StartSpan(context.Background(), "root")
	child, _ := tracer.StartSpan(ctx, "child")

	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)

	headers := map[string]string{}
	InjectTraceContext(ctx, headers)
	traceID, spanID := ExtractTraceContext(headers)
	assert.Equal(t, root.TraceID, traceID)
	assert.Equal(t, root.SpanID, spanID)
}

func TestSubmitAfterClose(t *testing.T) {
	tracer := New("test", nil)
	tracer.Close()

	span, _ := tracer.StartSpan(context.Background(), "late")
	assert.NotPanics(t, func() { tracer.Submit(span) })
	tracer.Close()
}
