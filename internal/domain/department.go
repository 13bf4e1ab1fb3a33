package domain

import "time"

// Department represents an organizational unit employees belong to.
type Department struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerIdentity is always empty: departments are not owned by any account.
func (d *Department) OwnerIdentity() string {
	return ""
}
