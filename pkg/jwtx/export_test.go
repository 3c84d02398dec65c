package jwtx

import "time"

// NewHS256VerifierAt exposes a verifier with a fixed clock to tests.
func NewHS256VerifierAt(key []byte, leeway time.Duration, now func() time.Time) (*HS256Verifier, error) {
	return newHS256Verifier(key, leeway, now)
}
