package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/campus/internal/domain"
)

const courseColumns = `id, title, description, instructor_id, created_at, updated_at`

const (
	createCourseQuery = `INSERT INTO courses (` + courseColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	getCourseQuery    = `SELECT ` + courseColumns + ` FROM courses WHERE id = ?`
	listCoursesQuery  = `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC, id DESC`
	updateCourseQuery = `UPDATE courses SET title = ?, description = ?, updated_at = ? WHERE id = ?`
	deleteCourseQuery = `DELETE FROM courses WHERE id = ?`
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
	c, err := scanCourse(r.q.QueryRowContext(ctx, getCourseQuery, id))
	if err != nil {
		return domain.Course{}, mapError(err)
	}
	return c, nil
}

// GetCourseForUpdate needs no lock: the single connection already
// serializes transactions.
func (r *coursesRepo) GetCourseForUpdate(ctx context.Context, id string) (domain.Course, error) {
	return r.GetCourse(ctx, id)
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
	c.Description = stringPtr(desc)
	return c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
