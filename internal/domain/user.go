package domain

import "time"

// User is an account able to authenticate against the service.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
