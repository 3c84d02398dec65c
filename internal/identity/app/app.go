package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/aussiebroadwan/campus/internal/identity/http"
	"github.com/aussiebroadwan/campus/internal/identity/service"
	"github.com/aussiebroadwan/campus/internal/platform/config"
	"github.com/aussiebroadwan/campus/internal/platform/database"
	"github.com/aussiebroadwan/campus/internal/platform/server"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/pkg/cryptox"
	"github.com/aussiebroadwan/campus/pkg/jwtx"
	"github.com/aussiebroadwan/campus/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the identity service with all its dependencies
type Application struct {
	cfg    config.Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	// Services
	userService  *service.UserService
	tokenService *service.TokenService

	// HTTP server
	server *server.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg config.Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initKeys(); err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, cfg.DB, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler is the fully wired HTTP handler, middleware included.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// and closes the database.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Info("identity service starting", "port", app.cfg.Port, "version", BuildVersion)

	err := app.server.Run(ctx)
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	return err
}

// Close releases the database.
func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "err", err)
		return err
	}
	app.logger.Info("identity service stopped")
	return nil
}

func (app *Application) initKeys() error {
	signer, err := jwtx.NewHS256Signer([]byte(app.cfg.Token.SigningKey))
	if err != nil {
		return fmt.Errorf("token signer: %w", err)
	}
	verifier, err := jwtx.NewHS256Verifier([]byte(app.cfg.Token.SigningKey), app.cfg.Token.ClockSkew)
	if err != nil {
		return fmt.Errorf("token verifier: %w", err)
	}

	app.signer = signer
	app.verifier = verifier
	return nil
}

func (app *Application) initServices() {
	hasher := cryptox.NewHasher(app.cfg.PasswordPepper)

	app.userService = &service.UserService{
		Store:  app.db,
		Hasher: hasher,
	}
	app.tokenService = &service.TokenService{
		Store:    app.db,
		Hasher:   hasher,
		Signer:   app.signer,
		Verifier: app.verifier,
		TTL:      app.cfg.Token.TTL,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.cfg.RateLimit.Limits(),
		app.cfg.SwaggerEnabled,
		app.logger,
	)

	// Wire services to router
	router.UserService = app.userService
	router.TokenService = app.tokenService
	router.ApplyRoutes()

	app.router = router
	app.server = server.New(app.cfg.Port, router, app.cfg.ShutdownGracePeriod, app.logger)
}
