package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultTTL is how long a token stays valid when nothing else is
	// configured. It also bounds how stale an embedded role can get.
	DefaultTTL = 24 * time.Hour

	// MaxTTL is the longest lifetime a service will agree to issue.
	MaxTTL = 24 * time.Hour

	// DefaultLeeway is the clock skew tolerated on exp/iat.
	DefaultLeeway = 30 * time.Second

	// MaxLeeway caps the configured clock skew.
	MaxLeeway = 30 * time.Second
)

// Claims are the token claims every service understands. Keep changes
// additive, older services may still be verifying them.
type Claims struct {
	jwt.RegisteredClaims

	// Role snapshot at issuance time.
	Role string `json:"role"`

	// Username of the subject, so /me can answer without a store read.
	Username string `json:"username,omitempty"`
}

// NewClaims builds the claims for a freshly authenticated user.
func NewClaims(subject string, role authz.Role, username string, ttl time.Duration, now time.Time) Claims {
	now = now.UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Role:     role.String(),
		Username: username,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. Nothing
// tracks it server side, it exists so log lines can be tied to one token.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// Validate is called by the jwt parser after the registered claims passed.
// It rejects anything the policy engine could not reason about.
func (c Claims) Validate() error {
	if !idx.Valid(c.Subject) {
		return fmt.Errorf("%w: subject %q", ErrInvalidClaim, c.Subject)
	}

	if _, err := authz.ParseRole(c.Role); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	}

	if c.IssuedAt == nil {
		return fmt.Errorf("%w: missing iat", ErrInvalidClaim)
	}

	return nil
}

// Identity converts verified claims into the caller identity. Claims that
// did not come out of a Verifier should not be passed here.
func (c Claims) Identity() authz.Identity {
	role, err := authz.ParseRole(c.Role)
	if err != nil {
		role = authz.RoleUnknown
	}

	return authz.Identity{
		Subject:  c.Subject,
		Role:     role,
		Username: c.Username,
	}
}

// Expiry returns the exp claim, or the zero time when it is absent.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
