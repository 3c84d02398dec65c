package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/campus/internal/domain"
)

const (
	createEnrollmentQuery = `INSERT INTO enrollments (user_id, course_id, enrollment_date) VALUES (?, ?, ?)`

	listEnrolledCoursesQuery = `
SELECT c.id, c.title, c.description, c.instructor_id, e.enrollment_date
FROM enrollments e
JOIN courses c ON c.id = e.course_id
WHERE e.user_id = ?
ORDER BY e.enrollment_date DESC, c.id DESC`

	countEnrollmentsQuery = `SELECT COUNT(*) FROM enrollments WHERE course_id = ?`
)

type enrollmentsRepo struct {
	q querier
}

func (r *enrollmentsRepo) CreateEnrollment(ctx context.Context, e domain.Enrollment) error {
	_, err := r.q.ExecContext(ctx, createEnrollmentQuery, e.UserID, e.CourseID, e.EnrollmentDate.UTC())
	return mapError(err)
}

func (r *enrollmentsRepo) ListEnrolledCourses(ctx context.Context, userID string) ([]domain.EnrolledCourse, error) {
	rows, err := r.q.QueryContext(ctx, listEnrolledCoursesQuery, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []domain.EnrolledCourse{}
	for rows.Next() {
		var (
			ec   domain.EnrolledCourse
			desc sql.NullString
		)
		if err := rows.Scan(&ec.CourseID, &ec.Title, &desc, &ec.InstructorID, &ec.EnrollmentDate); err != nil {
			return nil, mapError(err)
		}
		ec.Description = stringPtr(desc)
		out = append(out, ec)
	}
	return out, mapError(rows.Err())
}

func (r *enrollmentsRepo) CountEnrollments(ctx context.Context, courseID string) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, countEnrollmentsQuery, courseID).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}
