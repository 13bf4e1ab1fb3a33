package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/observability"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// DepartmentService manages departments and their employee listings.
type DepartmentService struct {
	metrics *observability.Metrics
	events  publisher
}

// NewDepartmentService constructs the service.
func NewDepartmentService(deps RecordDependencies) *DepartmentService {
	return &DepartmentService{
		metrics: deps.Metrics,
		events:  newPublisher(deps.Events, deps.Logger, deps.Clock),
	}
}

// List returns a page of departments.
func (s *DepartmentService) List(ctx context.Context, repo repository.DepartmentRepository, actor auth.Principal, page Page) ([]domain.Department, error) {
	if err := authorize(s.metrics, actor, auth.ActionList, nil); err != nil {
		return nil, err
	}
	items, err := repo.List(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}

// Get returns one department. Departments have no owner, so only admins pass the gate.
func (s *DepartmentService) Get(ctx context.Context, repo repository.DepartmentRepository, actor auth.Principal, id int64) (*domain.Department, error) {
	dept, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("department", id, err)
	}
	if err := authorize(s.metrics, actor, auth.ActionRead, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// ListEmployees lists employees whose department_id is id.
func (s *DepartmentService) ListEmployees(ctx context.Context, depts repository.DepartmentRepository, emps repository.EmployeeRepository, actor auth.Principal, id int64, page Page) ([]domain.Employee, error) {
	if err := authorize(s.metrics, actor, auth.ActionList, nil); err != nil {
		return nil, err
	}
	if _, err := depts.GetByID(ctx, id); err != nil {
		return nil, mapRepoError("department", id, err)
	}
	items, err := emps.List(ctx, repository.EmployeeFilter{DepartmentID: &id, Offset: page.Offset, Limit: page.Limit})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}

// Create inserts a department.
func (s *DepartmentService) Create(ctx context.Context, repo repository.DepartmentRepository, actor auth.Principal, name string) (*domain.Department, error) {
	if err := authorize(s.metrics, actor, auth.ActionCreate, nil); err != nil {
		return nil, err
	}
	dept := &domain.Department{Name: strings.TrimSpace(name)}
	if dept.Name == "" {
		return nil, apperrors.NewValidationError("name required", map[string]any{"field": "name"})
	}
	if err := repo.Create(ctx, dept); err != nil {
		return nil, mapRepoError("department", 0, err)
	}
	s.events.publish(ctx, events.EventDepartmentCreated, actor, dept.ID, nil)
	return dept, nil
}

// Update renames a department.
func (s *DepartmentService) Update(ctx context.Context, repo repository.DepartmentRepository, actor auth.Principal, id int64, name string) (*domain.Department, error) {
	if err := authorize(s.metrics, actor, auth.ActionUpdate, nil); err != nil {
		return nil, err
	}
	dept := &domain.Department{ID: id, Name: strings.TrimSpace(name)}
	if dept.Name == "" {
		return nil, apperrors.NewValidationError("name required", map[string]any{"field": "name"})
	}
	if err := repo.Update(ctx, dept); err != nil {
		return nil, mapRepoError("department", id, err)
	}
	s.events.publish(ctx, events.EventDepartmentUpdated, actor, id, nil)
	return dept, nil
}

// Delete removes a department that no employee references.
func (s *DepartmentService) Delete(ctx context.Context, repo repository.DepartmentRepository, actor auth.Principal, id int64) (*domain.Department, error) {
	if err := authorize(s.metrics, actor, auth.ActionDelete, nil); err != nil {
		return nil, err
	}
	dept, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("department", id, err)
	}
	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return nil, apperrors.NewConflict("department still has employees", map[string]any{"id": id})
		}
		return nil, mapRepoError("department", id, err)
	}
	s.events.publish(ctx, events.EventDepartmentDeleted, actor, id, nil)
	return dept, nil
}
