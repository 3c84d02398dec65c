// Package store is the data access contract shared by the three services.
// Drivers live under drivers/ and map their native errors onto the
// sentinels below.
package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/campus/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrInvalidReference means a foreign key pointed at a missing row.
	ErrInvalidReference = errors.New("store: invalid reference")

	// ErrTransient marks failures worth retrying: lock contention,
	// serialization failures, dropped connections.
	ErrTransient = errors.New("store: transient failure")
)

// Repos are the sub-repositories. They are only reachable through a
// transaction, which is what stops callers from mixing transactional and
// non-transactional reads in one unit of work.
type Repos interface {
	Users() Users
	Courses() Courses
	Enrollments() Enrollments
}

// Tx is a transaction-scoped view of the store. It can't start another
// transaction.
type Tx interface {
	Repos
}

// TxFunc is a unit of work. Returning an error rolls it back.
type TxFunc func(tx Tx) error

// Store is the root data access interface implemented by each driver.
type Store interface {
	// WithTx runs fn in a read/write transaction and commits if fn returns
	// nil. The whole unit is retried when it fails with ErrTransient, so fn
	// must not have side effects outside tx. Cancelling ctx rolls back.
	WithTx(ctx context.Context, fn TxFunc) error

	// View is WithTx for read-only units of work.
	View(ctx context.Context, fn TxFunc) error

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	Close() error
}

type Users interface {
	// CreateUser inserts u. A duplicate username or email yields
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// DeleteUser removes the user, their courses and every enrollment that
	// referenced either (per schema cascades).
	DeleteUser(ctx context.Context, id string) error
}

type Courses interface {
	// CreateCourse inserts c. ErrInvalidReference when the instructor does
	// not exist.
	CreateCourse(ctx context.Context, c domain.Course) error

	GetCourse(ctx context.Context, id string) (domain.Course, error)

	// GetCourseForUpdate is GetCourse plus a row lock held until the
	// transaction ends, on drivers that have row locks.
	GetCourseForUpdate(ctx context.Context, id string) (domain.Course, error)

	// ListCourses returns every course, newest first.
	ListCourses(ctx context.Context) ([]domain.Course, error)

	// UpdateCourse writes title, description and updated_at of c.
	UpdateCourse(ctx context.Context, c domain.Course) error

	// DeleteCourse cascades to the course's enrollments.
	DeleteCourse(ctx context.Context, id string) error
}

type Enrollments interface {
	// CreateEnrollment inserts e. ErrAlreadyExists for a duplicate pair,
	// ErrInvalidReference when the user or course does not exist.
	CreateEnrollment(ctx context.Context, e domain.Enrollment) error

	// ListEnrolledCourses returns the courses userID is enrolled in, most
	// recent enrollment first.
	ListEnrolledCourses(ctx context.Context, userID string) ([]domain.EnrolledCourse, error)

	// CountEnrollments counts enrollments of a course.
	CountEnrollments(ctx context.Context, courseID string) (int, error)
}
