package campus_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	courseapp "github.com/aussiebroadwan/campus/internal/course/app"
	enrollmentapp "github.com/aussiebroadwan/campus/internal/enrollment/app"
	identityapp "github.com/aussiebroadwan/campus/internal/identity/app"
	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/internal/platform/config"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/internal/store/drivers/sqlite"
	"github.com/aussiebroadwan/campus/internal/testkit"
	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/sdk"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

/*
 * The three services run in-process on httptest servers and share one
 * sqlite file, the same way they share a database when deployed.
 */

// cluster holds one SDK client per service plus a direct store handle for
// the things no endpoint does (promoting users, counting rows).
type cluster struct {
	identity   *sdk.Client
	course     *sdk.Client
	enrollment *sdk.Client
	store      store.Store
}

func testConfig(t *testing.T, dsn string) config.Config {
	t.Helper()

	cfg, err := config.LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":               "test",
		"LOG_LEVEL":         "error",
		"TOKEN_SIGNING_KEY": string(testkit.Key),
		"TOKEN_TTL":         "1h",
		"DB_DRIVER":         "sqlite",
		"DB_DSN":            dsn,
		"SWAGGER_ENABLED":   "true",
		"RATELIMIT_ENABLED": "false",
	}))
	require.NoError(t, err)
	return cfg
}

// handlerApp is the part of each service application the harness needs.
type handlerApp interface {
	Handler() http.Handler
	Close() error
}

func serve(t *testing.T, a handlerApp, err error) *sdk.Client {
	t.Helper()
	require.NoError(t, err)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = a.Close()
	})
	return sdk.NewClient(srv.URL)
}

func startCluster(t *testing.T) cluster {
	t.Helper()
	ctx := context.Background()

	dsn := "file:" + filepath.Join(t.TempDir(), "campus.db")
	cfg := testConfig(t, dsn)

	identity, err := identityapp.New(ctx, cfg)
	idClient := serve(t, identity, err)

	course, err := courseapp.New(ctx, cfg)
	courseClient := serve(t, course, err)

	enrollment, err := enrollmentapp.New(ctx, cfg)
	enrollClient := serve(t, enrollment, err)

	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return cluster{
		identity:   idClient,
		course:     courseClient,
		enrollment: enrollClient,
		store:      st,
	}
}

// registerAndLogin signs a new student up and returns a session for each
// service.
func (c cluster) registerAndLogin(t *testing.T, username, password string) (*sdk.UserResponse, sessions) {
	t.Helper()
	ctx := t.Context()

	user, err := c.identity.Register(ctx, sdk.RegisterRequest{
		Username:  username,
		Password:  password,
		Email:     username + "@example.com",
		FirstName: username,
		LastName:  "Test",
	})
	require.NoError(t, err)

	return user, c.login(t, username, password)
}

// staff creates a user with role directly in the store, since no endpoint
// promotes accounts, then logs in through the identity service.
func (c cluster) staff(t *testing.T, username string, role authz.Role) (domain.User, sessions) {
	t.Helper()
	u := testkit.CreateUser(t, c.store, username, role)
	return u, c.login(t, username, testkit.Password)
}

func (c cluster) login(t *testing.T, username, password string) sessions {
	t.Helper()

	login, err := c.identity.Login(t.Context(), sdk.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	require.Equal(t, "Bearer", login.TokenType)

	return sessions{
		token:      login.Token,
		identity:   c.identity.WithToken(login.Token),
		course:     c.course.WithToken(login.Token),
		enrollment: c.enrollment.WithToken(login.Token),
	}
}

// sessions is one token presented to each service.
type sessions struct {
	token      string
	identity   *sdk.Session
	course     *sdk.Session
	enrollment *sdk.Session
}

func countEnrollments(t *testing.T, st store.Store, courseID string) int {
	t.Helper()

	var n int
	require.NoError(t, st.View(t.Context(), func(tx store.Tx) error {
		var err error
		n, err = tx.Enrollments().CountEnrollments(t.Context(), courseID)
		return err
	}))
	return n
}
