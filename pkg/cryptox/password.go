// Package cryptox holds the password digest used by the identity service.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

var (
	ErrMismatch    = errors.New("cryptox: password does not match")
	ErrInvalidHash = errors.New("cryptox: invalid hash format")
)

// Params are the Argon2id cost parameters encoded into every digest.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
	SaltLength  uint32
}

// DefaultParams follow the OWASP minimum for Argon2id (19 MiB, t=2, p=1).
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// Hasher produces and checks PHC-format Argon2id digests. The pepper is
// mixed into every digest and never stored alongside it.
type Hasher struct {
	pepper string
	params Params

	dummyOnce sync.Once
	dummy     string
}

func NewHasher(pepper string) *Hasher {
	return NewHasherWithParams(pepper, DefaultParams)
}

func NewHasherWithParams(pepper string, p Params) *Hasher {
	return &Hasher{pepper: pepper, params: p}
}

// Hash returns a digest of the form $argon2id$v=19$m=..,t=..,p=..$salt$hash.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks password against encoded in constant time. It returns
// ErrMismatch for a wrong password and ErrInvalidHash for a digest it can't
// read.
func (h *Hasher) Verify(password, encoded string) error {
	p, salt, want, err := decode(encoded)
	if err != nil {
		return err
	}

	got := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		p.Iterations,
		p.Memory,
		p.Parallelism,
		uint32(len(want)), // #nosec G115 -- bounded by decode
	)

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

// VerifyDummy burns the same cost as Verify against a digest nobody owns.
// Login calls it for unknown usernames so response time doesn't tell them
// apart from wrong passwords. It always returns ErrMismatch.
func (h *Hasher) VerifyDummy(password string) error {
	h.dummyOnce.Do(func() {
		h.dummy, _ = h.Hash(rand.Text())
	})

	if h.dummy == "" {
		return ErrMismatch
	}

	_ = h.Verify(password, h.dummy)
	return ErrMismatch
}

// decode splits ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"].
func decode(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, nil, nil, fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("%w: not argon2id", ErrInvalidHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return p, nil, nil, fmt.Errorf("%w: unsupported version", ErrInvalidHash)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("%w: parameters: %w", ErrInvalidHash, err)
	}
	if p.Memory == 0 || p.Iterations == 0 || p.Parallelism == 0 {
		return p, nil, nil, fmt.Errorf("%w: zero cost parameter", ErrInvalidHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, fmt.Errorf("%w: salt", ErrInvalidHash)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > 1024 {
		return p, nil, nil, fmt.Errorf("%w: hash", ErrInvalidHash)
	}

	return p, salt, key, nil
}
