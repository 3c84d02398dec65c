package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/campus/internal/identity/service"
	"github.com/aussiebroadwan/campus/internal/platform/config"
	"github.com/aussiebroadwan/campus/internal/platform/metrics"
	"github.com/aussiebroadwan/campus/internal/platform/system"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/jwtx"

	_ "github.com/aussiebroadwan/campus/api/identity" // Swagger docs
)

// ServiceName labels metrics and names the swagger instance.
const ServiceName = "identity"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux *http.ServeMux

	signer       *jwtx.HS256Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       config.Limits
	swagger      bool

	store        store.Store
	UserService  *service.UserService
	TokenService *service.TokenService
}

func NewRouter(
	signer *jwtx.HS256Signer,
	buildVersion string,
	st store.Store,
	limits config.Limits,
	swagger bool,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		limits:       limits,
		swagger:      swagger,
		store:        st,
	}
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Campus Identity Service API
//	@version		0.1.0
//	@description	Account registration and HS256 bearer token issuance for the campus services.
//	@description
//	@description				Tokens carry the user id and role and are accepted by every campus service until they expire.
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	system.Wrap(ServiceName, r.logger, r.Mux).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	// POST /register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /register",
		httpx.Chain(&RegisterHandler{UserService: r.UserService},
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	// POST /login - strict rate limit by IP (credential guessing)
	r.Mux.Handle("POST /login",
		httpx.Chain(&LoginHandler{TokenService: r.TokenService},
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	// GET /me - verifies the token itself, lenient limit
	r.Mux.Handle("GET /me",
		httpx.Chain(&MeHandler{
			TokenService:  r.TokenService,
			OnAuthFailure: metrics.AuthnHook(ServiceName),
		},
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
}

func (r *Router) registerSystem() {
	system.Routes{
		Service:   ServiceName,
		Version:   r.buildVersion,
		StartTime: r.startTime,
		DB:        r.store,
		Keys:      r.signer,
		Swagger:   r.swagger,
		Limit:     r.limits.Lenient,
	}.Register(r.Mux)
}
