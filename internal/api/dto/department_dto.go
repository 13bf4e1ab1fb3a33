package dto

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// DepartmentRequest is the body of POST and PUT /departments.
type DepartmentRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// DepartmentResponse mirrors a department.
type DepartmentResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDepartmentResponse(dept *domain.Department) DepartmentResponse {
	return DepartmentResponse{ID: dept.ID, Name: dept.Name, CreatedAt: dept.CreatedAt, UpdatedAt: dept.UpdatedAt}
}

func NewDepartmentListResponse(items []domain.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(items))
	for i := range items {
		out = append(out, NewDepartmentResponse(&items[i]))
	}
	return out
}
