package sdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session is a Client plus a bearer token.
type Session struct {
	client *Client
	token  string
}

func (s *Session) Token() string { return s.token }

// Me returns the identity the identity service reads from the token.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/me", s.token, nil)
	if err != nil {
		return nil, err
	}

	var me MeResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return nil, err
	}
	return &me, nil
}

// CreateCourse requires the instructor or admin role. The caller becomes
// the course owner.
func (s *Session) CreateCourse(ctx context.Context, req CreateCourseRequest) (*CourseResponse, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/courses", s.token, req)
	if err != nil {
		return nil, err
	}

	var course CourseResponse
	if err := decodeJSON(resp, &course, http.StatusCreated); err != nil {
		return nil, err
	}
	return &course, nil
}

// UpdateCourse requires ownership or the admin role.
func (s *Session) UpdateCourse(ctx context.Context, id string, req UpdateCourseRequest) (*CourseResponse, error) {
	resp, err := s.client.do(ctx, http.MethodPut, "/courses/"+url.PathEscape(id), s.token, req)
	if err != nil {
		return nil, err
	}

	var course CourseResponse
	if err := decodeJSON(resp, &course, http.StatusOK); err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse requires ownership or the admin role. Enrollments in the
// course are removed with it.
func (s *Session) DeleteCourse(ctx context.Context, id string) error {
	resp, err := s.client.do(ctx, http.MethodDelete, "/courses/"+url.PathEscape(id), s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Enroll enrolls the caller in a course. Enrolling twice is a conflict.
func (s *Session) Enroll(ctx context.Context, courseID string) (*EnrollmentResponse, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/enrollments", s.token, EnrollRequest{CourseID: courseID})
	if err != nil {
		return nil, err
	}

	var enrollment EnrollmentResponse
	if err := decodeJSON(resp, &enrollment, http.StatusCreated); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// MyCourses lists the caller's enrollments, most recent first.
func (s *Session) MyCourses(ctx context.Context) ([]EnrolledCourseResponse, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/enrollments/my-courses", s.token, nil)
	if err != nil {
		return nil, err
	}

	var courses []EnrolledCourseResponse
	if err := decodeJSON(resp, &courses, http.StatusOK); err != nil {
		return nil, err
	}
	return courses, nil
}
