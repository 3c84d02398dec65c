package domain

import "time"

type Course struct {
	ID           string
	Title        string
	Description  *string // nil when never set
	InstructorID string  // owner, fixed at creation
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerID is the subject allowed to modify c besides admins.
func (c Course) OwnerID() string { return c.InstructorID }
