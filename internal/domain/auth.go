package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role enumerates the privilege levels a principal can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// ParseRole normalizes and validates a role name.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", value)
	}
	return role, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Token represents issued authentication token metadata.
type Token struct {
	ID        string
	Value     string
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
