package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/internal/platform/metrics"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/cryptox"
	"github.com/aussiebroadwan/campus/pkg/errx"
	"github.com/aussiebroadwan/campus/pkg/idx"
	"github.com/aussiebroadwan/campus/pkg/slogx"
	"github.com/aussiebroadwan/campus/pkg/validx"
)

var (
	ErrUsernameTaken = errx.Conflict("username already taken")
	ErrEmailTaken    = errx.Conflict("email already registered")

	// ErrAccountExists covers the race where a concurrent registration won
	// the unique index between our checks and the insert.
	ErrAccountExists = errx.Conflict("username or email already registered")
)

// RegisterInput is a sign-up request. Tags mirror the JSON body so
// validation errors name the fields the client sent.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=50,username"`
	Password  string `json:"password" validate:"required,max=128"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"required,notblank,max=100"`
}

type UserService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Now    func() time.Time // defaults to time.Now
}

// Register creates a student account. Username and email must both be
// unused; the password is stored as an argon2id digest.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validx.Struct(in); err != nil {
		return domain.User{}, err
	}

	// Hash outside the transaction, it is by far the slowest step
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, errx.Internal(err, "hash password")
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         authz.RoleStudent,
		CreatedAt:    s.now(),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByUsername(ctx, user.Username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if _, err := tx.Users().GetUserByEmail(ctx, user.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		return tx.Users().CreateUser(ctx, user)
	})
	switch {
	case err == nil:
	case errors.Is(err, errx.ErrConflict):
		return domain.User{}, err
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.User{}, ErrAccountExists
	default:
		return domain.User{}, errx.Internal(err, "create user")
	}

	metrics.UsersRegisteredTotal.Inc()
	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
