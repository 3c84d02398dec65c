// Package authz is the role and ownership policy every service evaluates
// after a token has been verified. It is pure: callers fetch whatever target
// an action needs and pass it in.
package authz

import (
	"github.com/aussiebroadwan/campus/pkg/errx"
)

// Identity is the verified caller. It only ever comes from a verified token.
type Identity struct {
	Subject  string
	Role     Role
	Username string
}

// Action is a protected operation.
type Action uint8

const (
	ActionCreateCourse Action = iota + 1
	ActionReadCourse
	ActionUpdateCourse
	ActionDeleteCourse
	ActionCreateEnrollment
	ActionListOwnEnrollments
)

func (a Action) String() string {
	switch a {
	case ActionCreateCourse:
		return "create_course"
	case ActionReadCourse:
		return "read_course"
	case ActionUpdateCourse:
		return "update_course"
	case ActionDeleteCourse:
		return "delete_course"
	case ActionCreateEnrollment:
		return "create_enrollment"
	case ActionListOwnEnrollments:
		return "list_own_enrollments"
	default:
		return "unknown_action"
	}
}

// NeedsTarget reports whether the rule for a depends on the resource owner,
// in which case the target must be fetched, inside the same transaction as
// the mutation, before calling Authorize.
func (a Action) NeedsTarget() bool {
	switch a {
	case ActionUpdateCourse, ActionDeleteCourse:
		return true
	default:
		return false
	}
}

// Public reports whether a requires no identity at all.
func (a Action) Public() bool { return a == ActionReadCourse }

// Target is the resource an ownership rule is evaluated against.
type Target struct {
	OwnerID string
}

var (
	ErrUnauthenticated = errx.Unauthenticated("authentication failed")
	ErrForbidden       = errx.Forbidden("insufficient permissions")
)

// Authorize evaluates the rule for action. id is nil for anonymous callers.
// Any unexpected input (unknown role, unknown action, missing target) is
// denied.
func Authorize(id *Identity, action Action, target *Target) error {
	if action.Public() {
		return nil
	}

	if id == nil || id.Subject == "" {
		return ErrUnauthenticated
	}

	if action.NeedsTarget() && target == nil {
		return ErrForbidden
	}

	switch id.Role {
	case RoleAdmin:
		return allowAdmin(action)
	case RoleInstructor:
		return allowInstructor(id, action, target)
	case RoleStudent:
		return allowStudent(action)
	case RoleUnknown:
		return ErrForbidden
	default:
		return ErrForbidden
	}
}

func allowAdmin(action Action) error {
	switch action {
	case ActionCreateCourse,
		ActionUpdateCourse,
		ActionDeleteCourse,
		ActionCreateEnrollment,
		ActionListOwnEnrollments:
		return nil
	default:
		return ErrForbidden
	}
}

func allowInstructor(id *Identity, action Action, target *Target) error {
	switch action {
	case ActionCreateCourse, ActionCreateEnrollment, ActionListOwnEnrollments:
		return nil
	case ActionUpdateCourse, ActionDeleteCourse:
		if target.OwnerID != "" && target.OwnerID == id.Subject {
			return nil
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}

func allowStudent(action Action) error {
	switch action {
	case ActionCreateEnrollment, ActionListOwnEnrollments:
		return nil
	default:
		return ErrForbidden
	}
}
