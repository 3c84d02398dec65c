package sdk

import "time"

// ErrorResponse is the JSON body of every error returned by the services.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description"`
	Fields           map[string]string `json:"fields,omitempty"`
}

// ============================================================================
// Identity
// ============================================================================

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50,username"`
	Password  string `json:"password" validate:"required,max=128"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"required,notblank,max=100"`
}

// UserResponse is a registered user. The password digest is never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest carries no validation rules: any bad credential, empty or
// oversized included, is the same 401.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"` // always "Bearer"
	ExpiresIn int       `json:"expires_in"` // seconds
	ExpiresAt time.Time `json:"expires_at"`
}

// MeResponse is the identity carried by the presented token.
type MeResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ============================================================================
// Courses
// ============================================================================

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// UpdateCourseRequest is a partial update: nil fields keep their value.
type UpdateCourseRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitnil,notblank,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

type CourseResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	InstructorID string    `json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ============================================================================
// Enrollments
// ============================================================================

type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required,ulid"`
}

type EnrollmentResponse struct {
	UserID         string    `json:"user_id"`
	CourseID       string    `json:"course_id"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// EnrolledCourseResponse is one entry of "my courses".
type EnrolledCourseResponse struct {
	CourseID       string    `json:"course_id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	InstructorID   string    `json:"instructor_id"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database,omitempty"`
	Signer   string `json:"signer,omitempty"`
}
