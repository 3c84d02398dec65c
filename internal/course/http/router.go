package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/campus/internal/course/service"
	"github.com/aussiebroadwan/campus/internal/platform/config"
	"github.com/aussiebroadwan/campus/internal/platform/metrics"
	"github.com/aussiebroadwan/campus/internal/platform/system"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/jwtx"

	_ "github.com/aussiebroadwan/campus/api/course" // Swagger docs
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

	store         store.Store
	CourseService *service.CourseService
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
	r.registerCourses()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Campus Course Service API
//	@version		0.1.0
//	@description	Course catalogue. Anyone may read; instructors create courses and manage the ones they own, admins manage all of them.
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

func (r *Router) registerCourses() {
	h := &CoursesHandler{CourseService: r.CourseService}
	authn := httpx.AuthnMiddleware(r.verifier, metrics.AuthnHook(service.ServiceName))

	// Public reads - high limit by IP
	r.Mux.Handle("GET /courses",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /courses/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)

	// POST /courses - role check up front, no target involved
	r.Mux.Handle("POST /courses",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			authn,
			httpx.RequireAction(authz.ActionCreateCourse, metrics.DenyHook(service.ServiceName)),
			httpx.RateLimitBySubject(r.limits.Moderate),
		),
	)

	// PUT/DELETE - ownership is decided inside the service transaction
	r.Mux.Handle("PUT /courses/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			authn,
			httpx.RateLimitBySubject(r.limits.Moderate),
		),
	)
	r.Mux.Handle("DELETE /courses/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			authn,
			httpx.RateLimitBySubject(r.limits.Moderate),
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
