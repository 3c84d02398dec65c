// Package metrics defines every Prometheus metric the services export. All
// of them live on the default registry and carry a service label, so the
// three services can also share one process in tests.
package metrics

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "campus"

// HTTPRequestsTotal counts handled requests.
// Labels: service, method, route (mux pattern), status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"service", "method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"service", "method", "route"},
)

// AuthFailuresTotal counts rejected bearer tokens by cause. The cause never
// reaches the client.
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected bearer tokens, by reason.",
	},
	[]string{"service", "reason"},
)

var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied by the policy engine, by action.",
	},
	[]string{"service", "action"},
)

var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users.",
	},
)

// LoginsTotal counts login attempts. Label result: "success" or "failure".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CourseMutationsTotal counts committed course writes. Label op: create,
// update, delete.
var CourseMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "course_mutations_total",
		Help:      "Total number of committed course mutations, by operation.",
	},
	[]string{"op"},
)

var EnrollmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_created_total",
		Help:      "Total number of enrollments created.",
	},
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// AuthnHook records token rejections for service.
func AuthnHook(service string) httpx.AuthnHook {
	return func(_ *http.Request, err error) {
		AuthFailuresTotal.WithLabelValues(service, FailureReason(err)).Inc()
	}
}

// DenyHook records policy denials for service.
func DenyHook(service string) httpx.DenyHook {
	return func(_ *http.Request, action authz.Action, _ error) {
		AuthzDenialsTotal.WithLabelValues(service, action.String()).Inc()
	}
}

// FailureReason maps a verification error to a bounded label value.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, httpx.ErrMissingBearer):
		return "missing"
	case errors.Is(err, jwtx.ErrExpired):
		return "expired"
	case errors.Is(err, jwtx.ErrNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, jwtx.ErrInvalidSig):
		return "invalid_signature"
	case errors.Is(err, jwtx.ErrAlgMismatch):
		return "alg_mismatch"
	case errors.Is(err, jwtx.ErrInvalidClaim):
		return "invalid_claim"
	case errors.Is(err, jwtx.ErrMalformed):
		return "malformed"
	default:
		return "other"
	}
}
