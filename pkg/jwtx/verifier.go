package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token and hands back its claims if it is legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrAlgMismatch  = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256Verifier checks tokens signed by an HS256Signer holding the same key.
// It has no side effects and is safe for concurrent use.
type HS256Verifier struct {
	key    []byte
	parser *jwt.Parser
}

// NewHS256Verifier builds a verifier. leeway applies to exp and iat only and
// is capped at MaxLeeway.
func NewHS256Verifier(key []byte, leeway time.Duration) (*HS256Verifier, error) {
	return newHS256Verifier(key, leeway, nil)
}

func newHS256Verifier(key []byte, leeway time.Duration, now func() time.Time) (*HS256Verifier, error) {
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrWeakKey, len(key), MinKeyLength)
	}
	if leeway < 0 || leeway > MaxLeeway {
		return nil, fmt.Errorf("jwtx: leeway %s outside [0, %s]", leeway, MaxLeeway)
	}

	opts := []jwt.ParserOption{
		jwt.WithLeeway(leeway),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if now != nil {
		opts = append(opts, jwt.WithTimeFunc(now))
	}

	k := make([]byte, len(key))
	copy(k, key)
	return &HS256Verifier{key: k, parser: jwt.NewParser(opts...)}, nil
}

func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, ErrMalformed
	}

	var c Claims
	_, err := v.parser.ParseWithClaims(raw, &c, v.keyFunc)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	return c, nil
}

// Ready reports whether the verifier holds a usable key.
func (v *HS256Verifier) Ready() bool { return v != nil && len(v.key) >= MinKeyLength }

func (v *HS256Verifier) keyFunc(t *jwt.Token) (any, error) {
	// Only the exact HS256 method is accepted, this is what stops "none" and
	// public-key algorithms from being checked against the shared secret.
	if t.Method != jwt.SigningMethodHS256 {
		return nil, ErrAlgMismatch
	}
	return v.key, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	case errors.Is(err, ErrInvalidClaim):
		return ErrInvalidClaim
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued), errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing), errors.Is(err, jwt.ErrTokenInvalidClaims):
		return ErrInvalidClaim
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrMalformed
	default:
		return ErrMalformed
	}
}
