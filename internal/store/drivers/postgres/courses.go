package postgres

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/campus/internal/domain"
)

const courseColumns = `id, title, description, instructor_id, created_at, updated_at`

const (
	createCourseQuery       = `INSERT INTO courses (` + courseColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	getCourseQuery          = `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	getCourseForUpdateQuery = getCourseQuery + ` FOR UPDATE`
	listCoursesQuery        = `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC, id DESC`
	updateCourseQuery       = `UPDATE courses SET title = $1, description = $2, updated_at = $3 WHERE id = $4`
	deleteCourseQuery       = `DELETE FROM courses WHERE id = $1`
)

type coursesRepo struct {
	q querier
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *coursesRepo) CreateCourse(ctx context.Context, c domain.Course) error {
	_, err := r.q.ExecContext(ctx, createCourseQuery,
		c.ID,
		c.Title,
		nullString(c.Description),
		c.InstructorID,
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	)
	return mapError(err)
}

func (r *coursesRepo) GetCourse(ctx context.Context, id string) (domain.Course, error) {
	return r.get(ctx, getCourseQuery, id)
}

// GetCourseForUpdate locks the row until the transaction ends, so a
// concurrent update or delete waits for the ownership check to finish.
func (r *coursesRepo) GetCourseForUpdate(ctx context.Context, id string) (domain.Course, error) {
	return r.get(ctx, getCourseForUpdateQuery, id)
}

func (r *coursesRepo) get(ctx context.Context, query, id string) (domain.Course, error) {
	c, err := scanCourse(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return domain.Course{}, mapError(err)
	}
	return c, nil
}

func (r *coursesRepo) ListCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := r.q.QueryContext(ctx, listCoursesQuery)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, mapError(err)
		}
		courses = append(courses, c)
	}
	return courses, mapError(rows.Err())
}

func (r *coursesRepo) UpdateCourse(ctx context.Context, c domain.Course) error {
	return affectedOne(r.q.ExecContext(ctx, updateCourseQuery,
		c.Title,
		nullString(c.Description),
		c.UpdatedAt.UTC(),
		c.ID,
	))
}

func (r *coursesRepo) DeleteCourse(ctx context.Context, id string) error {
	return affectedOne(r.q.ExecContext(ctx, deleteCourseQuery, id))
}

func scanCourse(s scanner) (domain.Course, error) {
	var (
		c    domain.Course
		desc sql.NullString
	)
	if err := s.Scan(&c.ID, &c.Title, &desc, &c.InstructorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Course{}, err
	}
	if desc.Valid {
		c.Description = &desc.String
	}
	return c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
