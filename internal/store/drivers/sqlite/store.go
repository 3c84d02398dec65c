// Package sqlite is the embedded store driver. One connection is shared by
// the whole process so writers are serialized and every transaction is
// isolated from the others.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/campus/internal/store"
	_ "modernc.org/sqlite"
)

// DefaultPragmas are appended to DSNs that don't set foreign_keys. They are
// applied by the driver to every new connection.
const DefaultPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

type Store struct {
	db    *sql.DB
	retry store.RetryPolicy
}

type Option func(*Store)

// WithRetryPolicy overrides store.DefaultRetryPolicy.
func WithRetryPolicy(p store.RetryPolicy) Option {
	return func(s *Store) { s.retry = p }
}

// NewStore opens dsn, e.g. ":memory:" or "file:campus.db".
func NewStore(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, err
	}

	// A single long lived connection: writers never contend with each other
	// inside the process, and ":memory:" databases survive between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enforce FKs even when the DSN pragmas were overridden
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, retry: store.DefaultRetryPolicy}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func withPragmas(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + DefaultPragmas
	}
	return dsn + "?" + DefaultPragmas
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB exposes the pool for tests and migrations.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) WithTx(ctx context.Context, fn store.TxFunc) error {
	return store.Retry(ctx, s.retry, func() error {
		return s.runTx(ctx, fn)
	})
}

// View runs fn in a plain transaction: sqlite gives the same snapshot
// guarantees either way and the driver rejects read-only options.
func (s *Store) View(ctx context.Context, fn store.TxFunc) error {
	return s.WithTx(ctx, fn)
}

func (s *Store) runTx(ctx context.Context, fn store.TxFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}

	// No-op after a successful commit
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(newTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", mapError(err))
	}
	return nil
}
