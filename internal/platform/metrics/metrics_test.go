package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{httpx.ErrMissingBearer, "missing"},
		{fmt.Errorf("verify: %w", jwtx.ErrExpired), "expired"},
		{jwtx.ErrNotYetValid, "not_yet_valid"},
		{jwtx.ErrInvalidSig, "invalid_signature"},
		{jwtx.ErrAlgMismatch, "alg_mismatch"},
		{jwtx.ErrInvalidClaim, "invalid_claim"},
		{jwtx.ErrMalformed, "malformed"},
		{errors.New("something else"), "other"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FailureReason(tt.err), tt.err.Error())
	}
}

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /courses/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := Middleware("metrics-test")(mux)

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("metrics-test", "GET", "GET /courses/{id}", "404"))

	req := httptest.NewRequest(http.MethodGet, "/courses/abc", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("metrics-test", "GET", "GET /courses/{id}", "404"))
	require.Equal(t, before+1, after)
}

func TestHooks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	before := testutil.ToFloat64(AuthFailuresTotal.WithLabelValues("hooks-test", "expired"))
	AuthnHook("hooks-test")(req, jwtx.ErrExpired)
	require.Equal(t, before+1, testutil.ToFloat64(AuthFailuresTotal.WithLabelValues("hooks-test", "expired")))

	action := authz.ActionCreateCourse
	before = testutil.ToFloat64(AuthzDenialsTotal.WithLabelValues("hooks-test", action.String()))
	DenyHook("hooks-test")(req, action, authz.ErrForbidden)
	require.Equal(t, before+1, testutil.ToFloat64(AuthzDenialsTotal.WithLabelValues("hooks-test", action.String())))
}
