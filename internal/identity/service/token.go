package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/internal/platform/metrics"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/cryptox"
	"github.com/aussiebroadwan/campus/pkg/errx"
	"github.com/aussiebroadwan/campus/pkg/jwtx"
	"github.com/aussiebroadwan/campus/pkg/slogx"
)

// ErrInvalidCredentials is the single answer for every failed login or
// token check. Callers can't tell an unknown user from a wrong password.
var ErrInvalidCredentials = errx.Unauthenticated("authentication failed")

// MaxPasswordLength matches the registration limit, in characters.
const MaxPasswordLength = 128

// Token is an issued bearer token.
type Token struct {
	Raw       string
	ExpiresAt time.Time
	Claims    jwtx.Claims
}

type TokenService struct {
	Store    store.Store
	Hasher   *cryptox.Hasher
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	TTL      time.Duration    // defaults to jwtx.DefaultTTL
	Now      func() time.Time // defaults to time.Now
}

// Login checks username and password and issues a token carrying the
// user's id and current role.
func (s *TokenService) Login(ctx context.Context, username, password string) (Token, error) {
	log := slogx.FromContext(ctx)

	// Nothing longer was ever registered, and argon2 cost grows with input
	if utf8.RuneCountInString(password) > MaxPasswordLength {
		_ = s.Hasher.VerifyDummy(string([]rune(password)[:MaxPasswordLength]))
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		log.Info("login failed", slog.String("reason", "oversized_password"))
		return Token{}, ErrInvalidCredentials
	}

	var user domain.User
	err := s.Store.View(ctx, func(tx store.Tx) error {
		var err error
		user, err = tx.Users().GetUserByUsername(ctx, username)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		_ = s.Hasher.VerifyDummy(password)
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		log.Info("login failed", slog.String("reason", "unknown_user"))
		return Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return Token{}, errx.Internal(err, "load user")
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			return Token{}, errx.Internal(err, "verify password")
		}
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		log.Info("login failed",
			slog.String("reason", "wrong_password"),
			slog.String("user_id", user.ID),
		)
		return Token{}, ErrInvalidCredentials
	}

	claims := jwtx.NewClaims(user.ID, user.Role, user.Username, s.ttl(), s.now())
	raw, err := s.Signer.Sign(claims)
	if err != nil {
		return Token{}, errx.Internal(err, "sign token")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	log.Info("login succeeded",
		slog.String("user_id", user.ID),
		slog.String("jti", claims.ID),
	)
	return Token{Raw: raw, ExpiresAt: claims.Expiry(), Claims: claims}, nil
}

// WhoAmI verifies raw and returns the identity it carries. It never reads
// the store: the token is the source of truth until it expires.
func (s *TokenService) WhoAmI(ctx context.Context, raw string) (authz.Identity, jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		slogx.FromContext(ctx).Warn("token rejected", "err", err)
		return authz.Identity{}, jwtx.Claims{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	return claims.Identity(), claims, nil
}

func (s *TokenService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return jwtx.DefaultTTL
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
