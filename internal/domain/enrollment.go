package domain

import "time"

type Enrollment struct {
	UserID         string
	CourseID       string
	EnrollmentDate time.Time
}

// EnrolledCourse is an enrollment joined with its course, as listed on
// "my courses".
type EnrolledCourse struct {
	CourseID       string
	Title          string
	Description    *string
	InstructorID   string
	EnrollmentDate time.Time
}
