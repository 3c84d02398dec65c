package postgres

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/campus/internal/store"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txStore struct {
	q querier
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{q: tx}
}

func (t *txStore) Users() store.Users             { return &usersRepo{q: t.q} }
func (t *txStore) Courses() store.Courses         { return &coursesRepo{q: t.q} }
func (t *txStore) Enrollments() store.Enrollments { return &enrollmentsRepo{q: t.q} }
