package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles a user can hold. Anything outside the
// three constants below is treated as unknown and always denied.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleAuthor Role = "Author"
	RoleReader Role = "Reader"
)

// Roles lists every valid role, in declaration order.
var Roles = []Role{RoleAdmin, RoleAuthor, RoleReader}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAuthor, RoleReader:
		return true
	}
	return false
}

// ParseRole converts a raw string into a Role, or ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrInvalidRole = errors.New("invalid role")
var ErrNotAuthenticated = errors.New("authentication required")

// ErrRoleConflict is returned when a role change loses a compare-and-set
// race against a concurrent update. The caller may retry.
var ErrRoleConflict = errors.New("concurrent role change, retry")

// ErrTooManyAttempts is returned when login throttling kicks in.
var ErrTooManyAttempts = errors.New("too many login attempts")

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
