package dto

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

const dateLayout = "2006-01-02"

// EmployeeRequest is the body of POST and PUT /employees.
type EmployeeRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Email        string  `json:"email" validate:"required,email,max=254"`
	Position     *string `json:"position" validate:"omitempty,max=200"`
	DateJoined   *string `json:"date_joined" validate:"omitempty,datetime=2006-01-02"`
	DepartmentID *int64  `json:"department_id" validate:"omitempty,gt=0"`
	Username     *string `json:"username" validate:"omitempty,max=150"`
}

// JoinedDate parses DateJoined; an absent or empty value yields nil.
func (r EmployeeRequest) JoinedDate() (*time.Time, error) {
	if r.DateJoined == nil || *r.DateJoined == "" {
		return nil, nil
	}
	joined, err := time.Parse(dateLayout, *r.DateJoined)
	if err != nil {
		return nil, err
	}
	return &joined, nil
}

// EmployeeResponse mirrors an employee record.
type EmployeeResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Position     *string   `json:"position"`
	DateJoined   *string   `json:"date_joined"`
	DepartmentID *int64    `json:"department_id"`
	Username     *string   `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewEmployeeResponse maps an employee.
func NewEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           emp.ID,
		Name:         emp.Name,
		Email:        emp.Email,
		Position:     emp.Position,
		DepartmentID: emp.DepartmentID,
		Username:     emp.Username,
		CreatedAt:    emp.CreatedAt,
		UpdatedAt:    emp.UpdatedAt,
	}
	if emp.DateJoined != nil {
		joined := emp.DateJoined.Format(dateLayout)
		resp.DateJoined = &joined
	}
	return resp
}

// NewEmployeeListResponse maps a page of employees.
func NewEmployeeListResponse(items []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(items))
	for i := range items {
		out = append(out, NewEmployeeResponse(&items[i]))
	}
	return out
}
