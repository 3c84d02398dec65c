package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/aussiebroadwan/campus/internal/enrollment/http"
	"github.com/aussiebroadwan/campus/internal/enrollment/service"
	"github.com/aussiebroadwan/campus/internal/platform/config"
	"github.com/aussiebroadwan/campus/internal/platform/database"
	"github.com/aussiebroadwan/campus/internal/platform/server"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/pkg/jwtx"
	"github.com/aussiebroadwan/campus/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the enrollment service with all its dependencies.
// It only verifies tokens, it never issues them.
type Application struct {
	cfg    config.Config
	logger *slog.Logger

	db       store.Store
	verifier *jwtx.HS256Verifier

	enrollmentService *service.EnrollmentService

	server *server.Server
	router *httpapi.Router
}

func New(ctx context.Context, cfg config.Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "enrollment-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	verifier, err := jwtx.NewHS256Verifier([]byte(cfg.Token.SigningKey), cfg.Token.ClockSkew)
	if err != nil {
		return nil, fmt.Errorf("token verifier: %w", err)
	}
	app.verifier = verifier

	db, err := database.Open(ctx, cfg.DB, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	app.enrollmentService = &service.EnrollmentService{Store: app.db}
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

	app.logger.Info("enrollment service starting", "port", app.cfg.Port, "version", BuildVersion)

	err := app.server.Run(ctx)
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	return err
}

func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "err", err)
		return err
	}
	app.logger.Info("enrollment service stopped")
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.cfg.RateLimit.Limits(),
		app.cfg.SwaggerEnabled,
		app.logger,
	)
	router.EnrollmentService = app.enrollmentService
	router.ApplyRoutes()

	app.router = router
	app.server = server.New(app.cfg.Port, router, app.cfg.ShutdownGracePeriod, app.logger)
}
