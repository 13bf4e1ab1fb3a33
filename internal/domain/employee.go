package domain

import "time"

// Employee is an HR record. Username links the record to the account that owns it;
// it is independent from Email.
type Employee struct {
	ID           int64
	Name         string
	Email        string
	Position     *string
	DateJoined   *time.Time
	DepartmentID *int64
	Username     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerIdentity returns the username of the owning account, or "" when unlinked.
func (e *Employee) OwnerIdentity() string {
	if e == nil || e.Username == nil {
		return ""
	}
	return *e.Username
}
