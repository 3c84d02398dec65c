package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/lib/pq"
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeAdminShutdown        = "57P01"

	classConnectionException = "08"
)

// mapError translates driver errors onto the store sentinels, keeping the
// original error in the chain for logs.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %w", store.ErrAlreadyExists, err)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %w", store.ErrInvalidReference, err)
		case codeSerializationFailure, codeDeadlockDetected, codeAdminShutdown:
			return fmt.Errorf("%w: %w", store.ErrTransient, err)
		}
		if string(pqErr.Code.Class()) == classConnectionException {
			return fmt.Errorf("%w: %w", store.ErrTransient, err)
		}
		return err
	}

	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %w", store.ErrTransient, err)
	}

	return err
}

// affectedOne turns a zero-row write into store.ErrNotFound.
func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return mapError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
