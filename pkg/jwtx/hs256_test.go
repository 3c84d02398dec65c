package jwtx_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/idx"
	"github.com/aussiebroadwan/campus/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var (
	testKey  = []byte("0123456789abcdef0123456789abcdef")
	otherKey = []byte("fedcba9876543210fedcba9876543210")
)

func mustSigner(t *testing.T, key []byte) *jwtx.HS256Signer {
	t.Helper()
	s, err := jwtx.NewHS256Signer(key)
	require.NoError(t, err)
	return s
}

func mustVerifier(t *testing.T, key []byte) *jwtx.HS256Verifier {
	t.Helper()
	v, err := jwtx.NewHS256Verifier(key, jwtx.DefaultLeeway)
	require.NoError(t, err)
	return v
}

func TestHS256RoundTrip(t *testing.T) {
	signer := mustSigner(t, testKey)
	verifier := mustVerifier(t, testKey)

	sub := idx.New().String()
	token, err := signer.Sign(jwtx.NewClaims(sub, authz.RoleStudent, "alice", time.Hour, time.Now()))
	require.NoError(t, err)
	require.Equal(t, "HS256", signer.Alg())
	require.True(t, signer.Ready())

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, sub, claims.Subject)
	require.Equal(t, "student", claims.Role)
	require.Equal(t, "alice", claims.Username)
}

func TestNewWithWeakKey(t *testing.T) {
	_, err := jwtx.NewHS256Signer([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakKey)

	_, err = jwtx.NewHS256Verifier([]byte("short"), 0)
	require.ErrorIs(t, err, jwtx.ErrWeakKey)
}

func TestNewVerifierLeewayBounds(t *testing.T) {
	_, err := jwtx.NewHS256Verifier(testKey, time.Minute)
	require.Error(t, err)

	_, err = jwtx.NewHS256Verifier(testKey, -time.Second)
	require.Error(t, err)

	_, err = jwtx.NewHS256Verifier(testKey, jwtx.MaxLeeway)
	require.NoError(t, err)
}

func TestVerifyRejections(t *testing.T) {
	signer := mustSigner(t, testKey)
	verifier := mustVerifier(t, testKey)
	sub := idx.New().String()
	now := time.Now()

	sign := func(t *testing.T, c jwtx.Claims) string {
		t.Helper()
		tok, err := signer.Sign(c)
		require.NoError(t, err)
		return tok
	}

	t.Run("wrong key", func(t *testing.T) {
		tok, err := mustSigner(t, otherKey).Sign(jwtx.NewClaims(sub, authz.RoleAdmin, "eve", time.Hour, now))
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("expired beyond leeway", func(t *testing.T) {
		tok := sign(t, jwtx.NewClaims(sub, authz.RoleStudent, "a", time.Hour, now.Add(-2*time.Hour)))
		_, err := verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("expired within leeway", func(t *testing.T) {
		tok := sign(t, jwtx.NewClaims(sub, authz.RoleStudent, "a", time.Hour, now.Add(-time.Hour-10*time.Second)))
		_, err := verifier.Verify(tok)
		require.NoError(t, err)
	})

	t.Run("issued in the future", func(t *testing.T) {
		tok := sign(t, jwtx.NewClaims(sub, authz.RoleStudent, "a", time.Hour, now.Add(5*time.Minute)))
		_, err := verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrNotYetValid)
	})

	t.Run("missing exp", func(t *testing.T) {
		c := jwtx.NewClaims(sub, authz.RoleStudent, "a", time.Hour, now)
		c.ExpiresAt = nil
		_, err := verifier.Verify(sign(t, c))
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("unknown role", func(t *testing.T) {
		c := jwtx.NewClaims(sub, authz.RoleStudent, "a", time.Hour, now)
		c.Role = "superuser"
		_, err := verifier.Verify(sign(t, c))
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("bad subject", func(t *testing.T) {
		c := jwtx.NewClaims("1", authz.RoleStudent, "a", time.Hour, now)
		_, err := verifier.Verify(sign(t, c))
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("alg none", func(t *testing.T) {
		c := jwtx.NewClaims(sub, authz.RoleAdmin, "a", time.Hour, now)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrAlgMismatch)
	})

	t.Run("other hmac alg with same key", func(t *testing.T) {
		c := jwtx.NewClaims(sub, authz.RoleAdmin, "a", time.Hour, now)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString(testKey)
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrAlgMismatch)
	})

	t.Run("tampered payload", func(t *testing.T) {
		tok := sign(t, jwtx.NewClaims(sub, authz.RoleStudent, "a", time.Hour, now))
		parts := strings.Split(tok, ".")
		require.Len(t, parts, 3)

		forged := jwtx.NewClaims(sub, authz.RoleAdmin, "a", time.Hour, now)
		other := sign(t, forged)
		parts[1] = strings.Split(other, ".")[1]

		_, err := verifier.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	malformed := []string{
		"",
		"   ",
		"not-a-token",
		"a.b",
		"a.b.c",
		"eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte("{not json")) + ".sig",
	}
	for _, raw := range malformed {
		t.Run("malformed "+raw, func(t *testing.T) {
			_, err := verifier.Verify(raw)
			require.Error(t, err)
			require.ErrorIs(t, err, jwtx.ErrMalformed)
		})
	}
}

func TestVerifyUsesInjectedClock(t *testing.T) {
	signer := mustSigner(t, testKey)
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tok, err := signer.Sign(jwtx.NewClaims(idx.New().String(), authz.RoleStudent, "a", time.Hour, issued))
	require.NoError(t, err)

	at := func(ts time.Time) func() time.Time { return func() time.Time { return ts } }

	v, err := jwtx.NewHS256VerifierAt(testKey, 30*time.Second, at(issued.Add(30*time.Minute)))
	require.NoError(t, err)
	_, err = v.Verify(tok)
	require.NoError(t, err)

	v, err = jwtx.NewHS256VerifierAt(testKey, 30*time.Second, at(issued.Add(time.Hour+20*time.Second)))
	require.NoError(t, err)
	_, err = v.Verify(tok)
	require.NoError(t, err)

	v, err = jwtx.NewHS256VerifierAt(testKey, 30*time.Second, at(issued.Add(time.Hour+31*time.Second)))
	require.NoError(t, err)
	_, err = v.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}
