package domain

import (
	"time"

	"github.com/aussiebroadwan/campus/pkg/authz"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id PHC string
	FirstName    string
	LastName     string
	Role         authz.Role
	CreatedAt    time.Time
}
