package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of permission levels
type Role int

const (
	RoleCustomer Role = 0
	RoleStaff    Role = 1
	RoleManager  Role = 2
)

// Role names as used on the wire
const (
	RoleNameCustomer = "customer"
	RoleNameStaff    = "staff"
	RoleNameManager  = "manager"
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return RoleNameCustomer
	case RoleStaff:
		return RoleNameStaff
	case RoleManager:
		return RoleNameManager
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid reports whether r is one of the three defined roles
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleStaff || r == RoleManager
}

// ParseRole converts a wire name to a Role
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case RoleNameCustomer:
		return RoleCustomer, nil
	case RoleNameStaff:
		return RoleStaff, nil
	case RoleNameManager:
		return RoleManager, nil
	default:
		return 0, fmt.Errorf("%w: %s %q", ErrValidation, ErrMsgInvalidRole, s)
	}
}

// User represents a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash []byte    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Caller is the resolved identity of whoever invokes an operation.
// The zero value is an unauthenticated caller.
type Caller struct {
	UserID        string
	Name          string
	Role          Role
	Authenticated bool
}

// Anonymous returns an unauthenticated caller
func Anonymous() Caller {
	return Caller{}
}

// CallerFor builds an authenticated caller for a user
func CallerFor(u *User) Caller {
	return Caller{UserID: u.ID, Name: u.Name, Role: u.Role, Authenticated: true}
}
