package sqlite

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/pkg/authz"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, role, created_at`

const (
	createUserQuery = `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	getUserByIDQuery       = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	getUserByUsernameQuery = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	getUserByEmailQuery    = `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	deleteUserQuery = `DELETE FROM users WHERE id = ?`
)

type usersRepo struct {
	q querier
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, createUserQuery,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Role.String(),
		u.CreatedAt.UTC(),
	)
	return mapError(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.get(ctx, getUserByIDQuery, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.get(ctx, getUserByUsernameQuery, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.get(ctx, getUserByEmailQuery, email)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return affectedOne(r.q.ExecContext(ctx, deleteUserQuery, id))
}

func (r *usersRepo) get(ctx context.Context, query string, arg string) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := r.q.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&role,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, mapError(err)
	}

	if u.Role, err = authz.ParseRole(role); err != nil {
		return domain.User{}, fmt.Errorf("sqlite: user %s: %w", u.ID, err)
	}
	return u, nil
}
