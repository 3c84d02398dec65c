// Package service enrolls callers into courses and lists what they are
// enrolled in.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/internal/platform/metrics"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/errx"
	"github.com/aussiebroadwan/campus/pkg/idx"
	"github.com/aussiebroadwan/campus/pkg/slogx"
)

// ServiceName labels the metrics this package records.
const ServiceName = "enrollment"

var (
	ErrCourseNotFound  = errx.NotFound("course not found")
	ErrAlreadyEnrolled = errx.Conflict("already enrolled in this course")
	ErrAccountNotFound = errx.Forbidden("account no longer exists")
)

type EnrollmentService struct {
	Store store.Store
	Now   func() time.Time // defaults to time.Now
}

// Enroll enrolls the caller in courseID. Enrolling twice is a conflict,
// not a no-op.
func (s *EnrollmentService) Enroll(ctx context.Context, id *authz.Identity, courseID string) (domain.Enrollment, error) {
	if err := authz.Authorize(id, authz.ActionCreateEnrollment, nil); err != nil {
		return domain.Enrollment{}, err
	}
	if !idx.Valid(courseID) {
		return domain.Enrollment{}, ErrCourseNotFound
	}

	e := domain.Enrollment{
		UserID:         id.Subject,
		CourseID:       courseID,
		EnrollmentDate: s.now(),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Locked so a concurrent delete waits for this insert to commit
		if _, err := tx.Courses().GetCourseForUpdate(ctx, courseID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		err := tx.Enrollments().CreateEnrollment(ctx, e)
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAlreadyEnrolled
		}
		return err
	})
	if errors.Is(err, store.ErrInvalidReference) {
		err = s.danglingReference(ctx, id.Subject)
	}
	if err != nil {
		if errx.KindOf(err) != errx.ErrInternal {
			return domain.Enrollment{}, err
		}
		return domain.Enrollment{}, errx.Internal(err, "create enrollment")
	}

	metrics.EnrollmentsCreatedTotal.Inc()
	slogx.FromContext(ctx).Info("enrolled",
		slog.String("user_id", e.UserID),
		slog.String("course_id", e.CourseID),
	)
	return e, nil
}

// ListMine returns the caller's courses, most recent enrollment first.
func (s *EnrollmentService) ListMine(ctx context.Context, id *authz.Identity) ([]domain.EnrolledCourse, error) {
	if err := authz.Authorize(id, authz.ActionListOwnEnrollments, nil); err != nil {
		return nil, err
	}

	var courses []domain.EnrolledCourse
	err := s.Store.View(ctx, func(tx store.Tx) error {
		var err error
		courses, err = tx.Enrollments().ListEnrolledCourses(ctx, id.Subject)
		return err
	})
	if err != nil {
		return nil, errx.Internal(err, "list enrollments")
	}
	return courses, nil
}

// danglingReference names the side of a failed enrollment foreign key.
// Either the caller's account or the course went away mid-transaction, and
// the failed transaction can't be queried further, so look again outside it.
func (s *EnrollmentService) danglingReference(ctx context.Context, userID string) error {
	err := s.Store.View(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByID(ctx, userID)
		return err
	})
	switch {
	case err == nil:
		return ErrCourseNotFound
	case errors.Is(err, store.ErrNotFound):
		return ErrAccountNotFound
	default:
		return err
	}
}

func (s *EnrollmentService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
