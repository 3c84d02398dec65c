// Package system mounts the routes every service exposes besides its API:
// health probes, Prometheus metrics and the Swagger UI.
package system

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/campus/internal/platform/metrics"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/slogx"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Routes describes the system endpoints of one service.
type Routes struct {
	// Service names the metrics label and the swagger docs instance.
	Service   string
	Version   string
	StartTime time.Time

	DB   Pinger
	Keys KeyHolder

	Swagger bool
	Limit   httpx.RateLimitConfig // applied per IP to the probes
}

// Register mounts /livez, /readyz, /metrics and optionally /swagger/ on mux,
// plus the JSON 404 for anything unmatched.
func (s Routes) Register(mux *http.ServeMux) {
	start := s.StartTime
	if start.IsZero() {
		start = time.Now()
	}

	// Monitoring may poll these often, so they get their own bucket
	mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(start, s.Version),
			httpx.RateLimitByIP(s.Limit),
		),
	)
	mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(start, s.Version, s.DB, s.Keys),
			httpx.RateLimitByIP(s.Limit),
		),
	)
	mux.Handle("GET /metrics", metrics.Handler())

	if s.Swagger {
		mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.InstanceName(s.Service)))
	}

	mux.Handle("/", httpx.NotFoundHandler())
}

// Wrap applies the global middleware chain of a service to mux. The
// request logger runs first; the metrics middleware sits right on the mux
// so both see the matched route.
func Wrap(service string, logger *slog.Logger, mux http.Handler) http.Handler {
	return httpx.Chain(mux,
		slogx.HTTPMiddleware(logger),
		metrics.Middleware(service),
	)
}
