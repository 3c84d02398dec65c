package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var fastRetry = store.RetryPolicy{
	MaxTries:        3,
	InitialInterval: time.Millisecond,
	MaxInterval:     time.Millisecond,
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return newStore(db, WithRetryPolicy(fastRetry)), mock
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique", &pq.Error{Code: "23505"}, store.ErrAlreadyExists},
		{"foreign key", &pq.Error{Code: "23503"}, store.ErrInvalidReference},
		{"serialization", &pq.Error{Code: "40001"}, store.ErrTransient},
		{"deadlock", &pq.Error{Code: "40P01"}, store.ErrTransient},
		{"connection failure", &pq.Error{Code: "08006"}, store.ErrTransient},
		{"admin shutdown", &pq.Error{Code: "57P01"}, store.ErrTransient},
		{"bad conn", driver.ErrBadConn, store.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			require.ErrorIs(t, got, tt.want)
			require.ErrorIs(t, got, tt.err)
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		syntax := &pq.Error{Code: "42601"}
		got := mapError(syntax)
		require.Same(t, syntax, got)
		require.NoError(t, mapError(nil))
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	u := domain.User{
		ID:           "01J00000000000000000000000",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FirstName:    "Alice",
		LastName:     "Liddell",
		Role:         authz.RoleStudent,
		CreatedAt:    time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, "student", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	}))
}

func TestCreateUserDuplicate(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})
	mock.ExpectRollback()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, domain.User{Role: authz.RoleStudent})
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestWithTxRetriesTransientFailures(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses")).
		WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses")).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Courses().DeleteCourse(ctx, "c1")
	}))
}

func TestWithTxGivesUpAfterMaxTries(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	for range fastRetry.MaxTries {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses")).
			WillReturnError(&pq.Error{Code: "40P01"})
		mock.ExpectRollback()
	}

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Courses().DeleteCourse(ctx, "c1")
	})
	require.ErrorIs(t, err, store.ErrTransient)
}

func TestGetCourseForUpdateLocksRow(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "instructor_id", "created_at", "updated_at"}).
		AddRow("c1", "Go 101", nil, "u1", now, now)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE id = $1 FOR UPDATE")).
		WithArgs("c1").
		WillReturnRows(rows)
	mock.ExpectCommit()

	var got domain.Course
	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		var err error
		got, err = tx.Courses().GetCourseForUpdate(ctx, "c1")
		return err
	}))

	require.Equal(t, "Go 101", got.Title)
	require.Equal(t, "u1", got.OwnerID())
	require.Nil(t, got.Description)
}

func TestGetCourseNotFound(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := s.View(ctx, func(tx store.Tx) error {
		_, err := tx.Courses().GetCourse(ctx, "missing")
		return err
	})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListEnrolledCourses(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	now := time.Now().UTC()
	desc := "intro"
	rows := sqlmock.NewRows([]string{"id", "title", "description", "instructor_id", "enrollment_date"}).
		AddRow("c2", "Go 201", desc, "u9", now).
		AddRow("c1", "Go 101", nil, "u9", now.Add(-time.Hour))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("JOIN courses c ON c.id = e.course_id")).
		WithArgs("u1").
		WillReturnRows(rows)
	mock.ExpectCommit()

	var got []domain.EnrolledCourse
	require.NoError(t, s.View(ctx, func(tx store.Tx) error {
		var err error
		got, err = tx.Enrollments().ListEnrolledCourses(ctx, "u1")
		return err
	}))

	require.Len(t, got, 2)
	require.Equal(t, "c2", got[0].CourseID)
	require.Equal(t, &desc, got[0].Description)
	require.Nil(t, got[1].Description)
}

func TestDeleteMissingUser(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().DeleteUser(ctx, "u1")
	})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestFnErrorRollsBack(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := s.WithTx(ctx, func(tx store.Tx) error { return boom })
	require.ErrorIs(t, err, boom)
}
