package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/campus/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, slogx.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, slogx.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, slogx.ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel(""))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel("chatty"))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	require.Equal(t, slog.Default(), slogx.FromContext(context.Background()))

	l := slogx.Discard()
	require.Equal(t, l, slogx.FromContext(slogx.WithContext(context.Background(), l)))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slogx.NewHandler(slogx.Config{Format: "json", Output: &buf}))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /courses/{id}", func(w http.ResponseWriter, r *http.Request) {
		slogx.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})

	h := slogx.HTTPMiddleware(base)(mux)

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses/abc", nil))

		require.Equal(t, http.StatusTeapot, rec.Code)
		reqID := rec.Header().Get(slogx.RequestIDHeader)
		require.NotEmpty(t, reqID)

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)

		var inner, access map[string]any
		require.NoError(t, json.Unmarshal(lines[0], &inner))
		require.NoError(t, json.Unmarshal(lines[1], &access))

		require.Equal(t, "inside handler", inner["msg"])
		require.Equal(t, reqID, inner["req_id"])

		require.Equal(t, "http_request", access["msg"])
		require.Equal(t, float64(http.StatusTeapot), access["status"])
		require.Equal(t, "GET /courses/{id}", access["route"])
		require.Equal(t, "/courses/abc", access["path"])
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/courses/abc", nil)
		req.Header.Set(slogx.RequestIDHeader, "trace-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "trace-123", rec.Header().Get(slogx.RequestIDHeader))
		require.Contains(t, buf.String(), `"req_id":"trace-123"`)
	})
}
