package authz

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the closed set of platform roles. The zero value is not a role.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleStudent
	RoleInstructor
	RoleAdmin
)

// Roles lists every valid role, lowest privilege first.
var Roles = []Role{RoleStudent, RoleInstructor, RoleAdmin}

// ErrUnknownRole is returned by ParseRole for anything outside Roles.
var ErrUnknownRole = errors.New("authz: unknown role")

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleInstructor:
		return "instructor"
	case RoleAdmin:
		return "admin"
	case RoleUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	case RoleUnknown:
		return false
	default:
		return false
	}
}

// ParseRole maps the stored/claimed name of a role back to a Role.
func ParseRole(s string) (Role, error) {
	switch strings.TrimSpace(s) {
	case "student":
		return RoleStudent, nil
	case "instructor":
		return RoleInstructor, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
