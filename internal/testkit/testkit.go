// Package testkit builds the fixtures shared by service and HTTP tests: a
// migrated in-memory store, seeded users and token plumbing.
package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/internal/store/drivers/sqlite"
	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/cryptox"
	"github.com/aussiebroadwan/campus/pkg/idx"
	"github.com/aussiebroadwan/campus/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// Password is the plaintext of every user made by CreateUser.
const Password = "correct-horse"

// Key is the HS256 secret used by tests.
var Key = []byte("campus-test-signing-key-0123456789abcdef")

// FastParams keep argon2id cheap enough for tests.
var FastParams = cryptox.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// Store returns a migrated in-memory sqlite store closed with the test.
func Store(t testing.TB) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func Hasher() *cryptox.Hasher {
	return cryptox.NewHasherWithParams("", FastParams)
}

func Signer(t testing.TB) *jwtx.HS256Signer {
	t.Helper()
	s, err := jwtx.NewHS256Signer(Key)
	require.NoError(t, err)
	return s
}

func Verifier(t testing.TB) *jwtx.HS256Verifier {
	t.Helper()
	v, err := jwtx.NewHS256Verifier(Key, jwtx.DefaultLeeway)
	require.NoError(t, err)
	return v
}

// CreateUser inserts a user with the given role directly, the way an
// operator would promote one. The password is Password.
func CreateUser(t testing.TB, s store.Store, username string, role authz.Role) domain.User {
	t.Helper()

	hash, err := Hasher().Hash(Password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		FirstName:    username,
		LastName:     "Test",
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	require.NoError(t, s.WithTx(context.Background(), func(tx store.Tx) error {
		return tx.Users().CreateUser(context.Background(), u)
	}))
	return u
}

// Token signs a token for u with the test key.
func Token(t testing.TB, u domain.User) string {
	t.Helper()

	raw, err := Signer(t).Sign(jwtx.NewClaims(u.ID, u.Role, u.Username, time.Hour, time.Now()))
	require.NoError(t, err)
	return raw
}

// Identity is the caller identity of u.
func Identity(u domain.User) *authz.Identity {
	return &authz.Identity{Subject: u.ID, Role: u.Role, Username: u.Username}
}
