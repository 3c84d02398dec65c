package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/campus/internal/enrollment/service"
	"github.com/aussiebroadwan/campus/internal/platform/config"
	"github.com/aussiebroadwan/campus/internal/platform/metrics"
	"github.com/aussiebroadwan/campus/internal/platform/system"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/jwtx"

	_ "github.com/aussiebroadwan/campus/api/enrollment" // Swagger docs
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux *http.ServeMux

	verifier     *jwtx.HS256Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       config.Limits
	swagger      bool

	store             store.Store
	EnrollmentService *service.EnrollmentService
}

func NewRouter(
	verifier *jwtx.HS256Verifier,
	buildVersion string,
	st store.Store,
	limits config.Limits,
	swagger bool,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		limits:       limits,
		swagger:      swagger,
		store:        st,
	}
}

func (r *Router) ApplyRoutes() {
	r.registerEnrollments()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Campus Enrollment Service API
//	@version		0.1.0
//	@description	Enrollment of the calling user into courses.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/campus
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token issued by the identity service. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	system.Wrap(service.ServiceName, r.logger, r.Mux).ServeHTTP(w, req)
}

func (r *Router) registerEnrollments() {
	h := &EnrollmentsHandler{EnrollmentService: r.EnrollmentService}
	authn := httpx.AuthnMiddleware(r.verifier, metrics.AuthnHook(service.ServiceName))
	deny := metrics.DenyHook(service.ServiceName)

	// POST /enrollments - moderate rate limit by user
	r.Mux.Handle("POST /enrollments",
		httpx.Chain(http.HandlerFunc(h.HandleEnroll),
			authn,
			httpx.RequireAction(authz.ActionCreateEnrollment, deny),
			httpx.RateLimitBySubject(r.limits.Moderate),
		),
	)

	// GET /enrollments/my-courses - lenient rate limit by user
	r.Mux.Handle("GET /enrollments/my-courses",
		httpx.Chain(http.HandlerFunc(h.HandleMyCourses),
			authn,
			httpx.RequireAction(authz.ActionListOwnEnrollments, deny),
			httpx.RateLimitBySubject(r.limits.Lenient),
		),
	)
}

func (r *Router) registerSystem() {
	system.Routes{
		Service:   service.ServiceName,
		Version:   r.buildVersion,
		StartTime: r.startTime,
		DB:        r.store,
		Keys:      r.verifier,
		Swagger:   r.swagger,
		Limit:     r.limits.Lenient,
	}.Register(r.Mux)
}
