package models

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAttendee Role = "attendee"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole maps a raw role name to a Role. Empty input means RoleAttendee.
// Matching is exact: "Admin" is rejected rather than guessed.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleAttendee, nil
	case RoleAdmin, RoleAttendee:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAttendee
}

// CanManageEvents reports whether the role may create, update and delete events.
func (r Role) CanManageEvents() bool {
	return r == RoleAdmin
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
