package auth

import "github.com/spec-kit/hr-service/internal/domain"

// Principal is an authenticated identity as asserted by a verified token.
type Principal struct {
	Username string
	Role     domain.Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

// Action names an operation on a protected resource.
type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource exposes the identity of the account owning a record.
type Resource interface {
	OwnerIdentity() string
}

// Authorize decides whether principal may perform action on target. Target may
// be nil for actions that do not address a single record.
//
// list, create, update and delete require the admin role. read is allowed for
// admins and for employees whose username equals the target's owner identity.
func Authorize(principal Principal, action Action, target Resource) bool {
	switch action {
	case ActionList, ActionCreate, ActionUpdate, ActionDelete:
		return principal.Role == domain.RoleAdmin
	case ActionRead:
		switch principal.Role {
		case domain.RoleAdmin:
			return true
		case domain.RoleEmployee:
			if target == nil || principal.Username == "" {
				return false
			}
			return target.OwnerIdentity() == principal.Username
		}
	}
	return false
}
