package system

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/sdk"
	"github.com/aussiebroadwan/campus/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type keys bool

func (k keys) Ready() bool { return bool(k) }

func newHandler(db Pinger, k KeyHolder) http.Handler {
	mux := http.NewServeMux()
	Routes{
		Service: "test",
		Version: "v1.2.3",
		DB:      db,
		Keys:    k,
	}.Register(mux)
	return Wrap("test", slogx.Discard(), mux)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLivez(t *testing.T) {
	h := newHandler(pingerFunc(func(context.Context) error { return nil }), keys(true))

	rec := get(t, h, "/livez")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(slogx.RequestIDHeader))

	var body sdk.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
	require.Equal(t, "v1.2.3", body.Version)
	require.Nil(t, body.Checks)
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name     string
		ping     error
		keys     KeyHolder
		status   int
		database string
		signer   string
	}{
		{"ready", nil, keys(true), http.StatusOK, "ok", "ok"},
		{"database down", errors.New("db gone"), keys(true), http.StatusServiceUnavailable, "error: db gone", "ok"},
		{"no key", nil, keys(false), http.StatusServiceUnavailable, "ok", "error: no key loaded"},
		{"nil key holder", nil, nil, http.StatusServiceUnavailable, "ok", "error: no key loaded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(pingerFunc(func(context.Context) error { return tt.ping }), tt.keys)

			rec := get(t, h, "/readyz")
			require.Equal(t, tt.status, rec.Code)

			var body sdk.HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.NotNil(t, body.Checks)
			require.Equal(t, tt.database, body.Checks.Database)
			require.Equal(t, tt.signer, body.Checks.Signer)
		})
	}
}

func TestReadyzPingHasDeadline(t *testing.T) {
	var deadline time.Time
	h := newHandler(pingerFunc(func(ctx context.Context) error {
		deadline, _ = ctx.Deadline()
		return nil
	}), keys(true))

	require.Equal(t, http.StatusOK, get(t, h, "/readyz").Code)
	require.False(t, deadline.IsZero())
}

func TestUnknownRoute(t *testing.T) {
	h := newHandler(pingerFunc(func(context.Context) error { return nil }), keys(true))

	rec := get(t, h, "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body httpx.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, httpx.CodeNotFound, body.Error)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHandler(pingerFunc(func(context.Context) error { return nil }), keys(true))

	get(t, h, "/livez")
	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `campus_http_requests_total{method="GET",route="GET /livez",service="test",status="200"}`)
}
