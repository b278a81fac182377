package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spellwise/vocab-api/internal/api/shared"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	t.Run("generates_trace_id", func(t *testing.T) {
		log, buf := logger.GetTestLogger(t)

		var seen string
		h := TraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = shared.GetTraceID(r.Context())
			logger.FromContext(r.Context()).Info("inside handler")
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/learners/ana/deck", nil))

		assert.Len(t, seen, 32)
		assert.Equal(t, seen, rec.Header().Get(shared.TraceIDHeader))

		inside := buf.FindEntries("inside handler")
		require.Len(t, inside, 1)
		assert.Equal(t, seen, inside[0]["trace_id"])

		done := buf.FindEntries("request completed")
		require.Len(t, done, 1)
		assert.Equal(t, float64(http.StatusTeapot), done[0]["status"])
	})

	t.Run("keeps_incoming_trace_id", func(t *testing.T) {
		log, _ := logger.GetTestLogger(t)

		var seen string
		h := TraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = shared.GetTraceID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(shared.TraceIDHeader, "client-trace-0001")
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "client-trace-0001", seen)
	})
}
