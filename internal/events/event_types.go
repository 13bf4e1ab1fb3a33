package events

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
	EventUserProvisioned   EventType = "user_provisioned"
	EventEmployeeCreated   EventType = "employee_created"
	EventEmployeeUpdated   EventType = "employee_updated"
	EventEmployeeDeleted   EventType = "employee_deleted"
	EventDepartmentCreated EventType = "department_created"
	EventDepartmentUpdated EventType = "department_updated"
	EventDepartmentDeleted EventType = "department_deleted"
)

// AllEventTypes lists every event the service emits.
var AllEventTypes = []EventType{
	EventLoginSucceeded,
	EventLoginFailed,
	EventUserProvisioned,
	EventEmployeeCreated,
	EventEmployeeUpdated,
	EventEmployeeDeleted,
	EventDepartmentCreated,
	EventDepartmentUpdated,
	EventDepartmentDeleted,
}

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Username string      `json:"username,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ResourceID int64     `json:"resource_id,omitempty"`
	Actor      Actor     `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// UserProvisionedPayload payload.
type UserProvisionedPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}
