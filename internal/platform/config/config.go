// Package config loads the environment configuration shared by the three
// services. The value is built once in main and passed down explicitly.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/jwtx"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                 string        `env:"ENV, default=dev"`                   // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL, default=info"`            // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT, default=json"`           // json, text
	Port                int           `env:"PORT, default=8080"`                 // HTTP listen port
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD, default=10s"` // in-flight request deadline on shutdown
	PasswordPepper      string        `env:"PASSWORD_PEPPER"`                    // optional, identity service only
	SwaggerEnabled      bool          `env:"SWAGGER_ENABLED, default=true"`      // serve /swagger/

	DB        DatabaseConfig
	Token     TokenConfig
	RateLimit RateLimitConfig
}

type DatabaseConfig struct {
	Driver               string        `env:"DB_DRIVER, default=sqlite"`
	DSN                  string        `env:"DB_DSN, default=file:campus.db"`
	MaxOpenConns         int           `env:"DB_MAX_OPEN_CONNS, default=10"` // postgres only
	MaxIdleConns         int           `env:"DB_MAX_IDLE_CONNS, default=5"`  // postgres only
	ConnMaxLifetime      time.Duration `env:"DB_CONN_MAX_LIFETIME, default=30m"`
	Migrate              bool          `env:"DB_MIGRATE, default=true"`
	RetryMaxTries        uint          `env:"DB_RETRY_MAX_TRIES, default=3"`
	RetryInitialInterval time.Duration `env:"DB_RETRY_INITIAL_INTERVAL, default=50ms"`
}

type TokenConfig struct {
	SigningKey string        `env:"TOKEN_SIGNING_KEY, required"` // shared HS256 secret
	TTL        time.Duration `env:"TOKEN_TTL, default=24h"`
	ClockSkew  time.Duration `env:"TOKEN_CLOCK_SKEW, default=30s"`
}

// RateLimitConfig overrides the httpx profiles. Unset fields keep the
// profile default.
type RateLimitConfig struct {
	Enabled  bool        `env:"RATELIMIT_ENABLED, default=true"`
	Strict   LimitConfig `env:", prefix=RATELIMIT_STRICT_"`
	Moderate LimitConfig `env:", prefix=RATELIMIT_MODERATE_"`
	Lenient  LimitConfig `env:", prefix=RATELIMIT_LENIENT_"`
	Public   LimitConfig `env:", prefix=RATELIMIT_PUBLIC_"`
}

type LimitConfig struct {
	Requests int           `env:"REQUESTS"`
	Window   time.Duration `env:"WINDOW"`
	Burst    int           `env:"BURST"`
}

// Load reads the process environment.
func Load(ctx context.Context) (Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the services cannot safely start with.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.ShutdownGracePeriod <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_GRACE_PERIOD must be positive"))
	}

	switch strings.ToLower(c.DB.Driver) {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q not supported", c.DB.Driver))
	}
	if c.DB.DSN == "" {
		errs = append(errs, errors.New("DB_DSN is required"))
	}
	if c.DB.RetryMaxTries == 0 {
		errs = append(errs, errors.New("DB_RETRY_MAX_TRIES must be at least 1"))
	}

	if len(c.Token.SigningKey) < jwtx.MinKeyLength {
		errs = append(errs, fmt.Errorf("TOKEN_SIGNING_KEY must be at least %d bytes", jwtx.MinKeyLength))
	}
	if c.Token.TTL <= 0 || c.Token.TTL > jwtx.MaxTTL {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be in (0, %s]", jwtx.MaxTTL))
	}
	if c.Token.ClockSkew < 0 || c.Token.ClockSkew > jwtx.MaxLeeway {
		errs = append(errs, fmt.Errorf("TOKEN_CLOCK_SKEW must be in [0, %s]", jwtx.MaxLeeway))
	}

	for name, l := range map[string]LimitConfig{
		"STRICT":   c.RateLimit.Strict,
		"MODERATE": c.RateLimit.Moderate,
		"LENIENT":  c.RateLimit.Lenient,
		"PUBLIC":   c.RateLimit.Public,
	} {
		if l.Requests < 0 || l.Burst < 0 || l.Window < 0 {
			errs = append(errs, fmt.Errorf("RATELIMIT_%s values must not be negative", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Apply returns def with the configured fields replaced.
func (l LimitConfig) Apply(def httpx.RateLimitConfig) httpx.RateLimitConfig {
	if l.Requests > 0 {
		def.RequestsPerWindow = l.Requests
	}
	if l.Window > 0 {
		def.Window = l.Window
	}
	if l.Burst > 0 {
		def.Burst = l.Burst
	}
	return def
}

// Limits is the resolved set of rate limit profiles. All of them are the
// zero config, which disables limiting, when rate limiting is turned off.
type Limits struct {
	Strict, Moderate, Lenient, Public httpx.RateLimitConfig
}

func (c RateLimitConfig) Limits() Limits {
	if !c.Enabled {
		return Limits{}
	}
	return Limits{
		Strict:   c.Strict.Apply(httpx.StrictLimit),
		Moderate: c.Moderate.Apply(httpx.ModerateLimit),
		Lenient:  c.Lenient.Apply(httpx.LenientLimit),
		Public:   c.Public.Apply(httpx.PublicLimit),
	}
}
