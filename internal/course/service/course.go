// Package service implements the course catalogue. Every mutation runs
// fetch, authorize and write in one store transaction, so an ownership
// decision can't go stale before the write lands.
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
	"github.com/aussiebroadwan/campus/pkg/errx"
	"github.com/aussiebroadwan/campus/pkg/idx"
	"github.com/aussiebroadwan/campus/pkg/slogx"
	"github.com/aussiebroadwan/campus/pkg/validx"
)

// ServiceName labels the metrics this package records.
const ServiceName = "course"

var (
	ErrCourseNotFound = errx.NotFound("course not found")

	// ErrOwnerGone is returned when the caller's account was deleted after
	// their token was issued.
	ErrOwnerGone = errx.Forbidden("account no longer exists")
)

type CreateInput struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

// UpdateInput is a partial update. Nil fields keep their current value.
type UpdateInput struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	Description *string `json:"description" validate:"omitnil,max=5000"`
}

type CourseService struct {
	Store store.Store
	Now   func() time.Time // defaults to time.Now
}

// Create adds a course owned by the caller.
func (s *CourseService) Create(ctx context.Context, id *authz.Identity, in CreateInput) (domain.Course, error) {
	if err := s.authorize(ctx, id, authz.ActionCreateCourse, nil); err != nil {
		return domain.Course{}, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := validx.Struct(in); err != nil {
		return domain.Course{}, err
	}

	now := s.now()
	course := domain.Course{
		ID:           idx.New().String(),
		Title:        in.Title,
		Description:  in.Description,
		InstructorID: id.Subject,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Courses().CreateCourse(ctx, course)
	})
	if errors.Is(err, store.ErrInvalidReference) {
		return domain.Course{}, ErrOwnerGone
	}
	if err != nil {
		return domain.Course{}, errx.Internal(err, "create course")
	}

	metrics.CourseMutationsTotal.WithLabelValues("create").Inc()
	slogx.FromContext(ctx).Info("course created",
		slog.String("course_id", course.ID),
		slog.String("instructor_id", course.InstructorID),
	)
	return course, nil
}

// List returns every course, newest first. Never nil.
func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	err := s.Store.View(ctx, func(tx store.Tx) error {
		var err error
		courses, err = tx.Courses().ListCourses(ctx)
		return err
	})
	if err != nil {
		return nil, errx.Internal(err, "list courses")
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, courseID string) (domain.Course, error) {
	if !idx.Valid(courseID) {
		return domain.Course{}, ErrCourseNotFound
	}

	var course domain.Course
	err := s.Store.View(ctx, func(tx store.Tx) error {
		var err error
		course, err = tx.Courses().GetCourse(ctx, courseID)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Course{}, ErrCourseNotFound
	}
	if err != nil {
		return domain.Course{}, errx.Internal(err, "get course")
	}
	return course, nil
}

// Update applies in to the course if the caller owns it or is an admin.
func (s *CourseService) Update(ctx context.Context, id *authz.Identity, courseID string, in UpdateInput) (domain.Course, error) {
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	if err := validx.Struct(in); err != nil {
		return domain.Course{}, err
	}

	var course domain.Course
	err := s.mutate(ctx, id, courseID, authz.ActionUpdateCourse, func(tx store.Tx, c domain.Course) error {
		if in.Title != nil {
			c.Title = *in.Title
		}
		if in.Description != nil {
			c.Description = in.Description
		}
		c.UpdatedAt = s.now()

		if err := tx.Courses().UpdateCourse(ctx, c); err != nil {
			return err
		}
		course = c
		return nil
	})
	if err != nil {
		return domain.Course{}, err
	}

	metrics.CourseMutationsTotal.WithLabelValues("update").Inc()
	slogx.FromContext(ctx).Info("course updated", slog.String("course_id", course.ID))
	return course, nil
}

// Delete removes the course and, through the schema, its enrollments.
func (s *CourseService) Delete(ctx context.Context, id *authz.Identity, courseID string) error {
	err := s.mutate(ctx, id, courseID, authz.ActionDeleteCourse, func(tx store.Tx, c domain.Course) error {
		return tx.Courses().DeleteCourse(ctx, c.ID)
	})
	if err != nil {
		return err
	}

	metrics.CourseMutationsTotal.WithLabelValues("delete").Inc()
	slogx.FromContext(ctx).Info("course deleted", slog.String("course_id", courseID))
	return nil
}

// mutate runs fetch, authorize and write for an ownership-checked action in
// a single transaction.
func (s *CourseService) mutate(
	ctx context.Context,
	id *authz.Identity,
	courseID string,
	action authz.Action,
	write func(tx store.Tx, c domain.Course) error,
) error {
	// An anonymous caller learns nothing about which ids exist
	if id == nil {
		return authz.ErrUnauthenticated
	}
	if !idx.Valid(courseID) {
		return ErrCourseNotFound
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Courses().GetCourseForUpdate(ctx, courseID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrCourseNotFound
		}
		if err != nil {
			return err
		}

		if err := s.authorize(ctx, id, action, &authz.Target{OwnerID: c.OwnerID()}); err != nil {
			return err
		}

		err = write(tx, c)
		if errors.Is(err, store.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	})
	if err == nil || errx.KindOf(err) != errx.ErrInternal {
		return err
	}
	return errx.Internal(err, action.String())
}

func (s *CourseService) authorize(ctx context.Context, id *authz.Identity, action authz.Action, target *authz.Target) error {
	err := authz.Authorize(id, action, target)
	if err != nil && errors.Is(err, errx.ErrForbidden) {
		metrics.AuthzDenialsTotal.WithLabelValues(ServiceName, action.String()).Inc()
		slogx.FromContext(ctx).Info("authorization denied",
			slog.String("action", action.String()),
			slog.String("sub", id.Subject),
		)
	}
	return err
}

func (s *CourseService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
