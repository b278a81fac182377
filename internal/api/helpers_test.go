package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/spellwise/vocab-api/internal/api/shared"
	"github.com/spellwise/vocab-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// newLearnerRequest builds a request with the {name} path parameter set the
// way chi would after routing.
func newLearnerRequest(t *testing.T, method, target, learner, body string) *http.Request {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, r)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(LearnerParam, learner)

	log, _ := logger.GetTestLogger(t)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, shared.TraceIDKey, "test-trace-id")
	ctx = logger.WithLogger(ctx, log)
	return req.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
