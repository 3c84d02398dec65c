package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeyLength is the shortest shared key accepted for HS256, in bytes.
const MinKeyLength = 32

// ErrWeakKey is returned when the shared key is shorter than MinKeyLength.
var ErrWeakKey = errors.New("jwtx: signing key too short")

// Signer is anything that can sign our claims.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with the key shared by every service.
type HS256Signer struct {
	key []byte
}

func NewHS256Signer(key []byte) (*HS256Signer, error) {
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrWeakKey, len(key), MinKeyLength)
	}

	// Copy so callers can't mutate the key underneath us
	k := make([]byte, len(key))
	copy(k, key)
	return &HS256Signer{key: k}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

func (s *HS256Signer) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Ready reports whether the signer holds a usable key.
func (s *HS256Signer) Ready() bool { return s != nil && len(s.key) >= MinKeyLength }
