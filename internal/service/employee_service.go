package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/observability"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// EmployeeInput carries the writable fields of an employee record.
type EmployeeInput struct {
	Name         string
	Email        string
	Position     *string
	DateJoined   *time.Time
	DepartmentID *int64
	Username     *string
}

// EmployeeService manages employee records behind the authorization gate.
type EmployeeService struct {
	metrics *observability.Metrics
	events  publisher
}

// RecordDependencies encapsulates collaborators shared by record services.
type RecordDependencies struct {
	Events  events.Dispatcher
	Metrics *observability.Metrics
	Logger  *zap.Logger
	Clock   auth.Clock
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps RecordDependencies) *EmployeeService {
	return &EmployeeService{
		metrics: deps.Metrics,
		events:  newPublisher(deps.Events, deps.Logger, deps.Clock),
	}
}

func authorize(metrics *observability.Metrics, actor auth.Principal, action auth.Action, target auth.Resource) error {
	allowed := auth.Authorize(actor, action, target)
	if action == auth.ActionRead {
		metrics.RecordDecision(string(action), allowed)
	}
	if !allowed {
		return forbidden()
	}
	return nil
}

// List returns a page of employees, optionally filtered by department.
func (s *EmployeeService) List(ctx context.Context, repo repository.EmployeeRepository, actor auth.Principal, departmentID *int64, page Page) ([]domain.Employee, error) {
	if err := authorize(s.metrics, actor, auth.ActionList, nil); err != nil {
		return nil, err
	}
	items, err := repo.List(ctx, repository.EmployeeFilter{DepartmentID: departmentID, Offset: page.Offset, Limit: page.Limit})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}

// Get returns one employee. A missing record is reported before the ownership check.
func (s *EmployeeService) Get(ctx context.Context, repo repository.EmployeeRepository, actor auth.Principal, id int64) (*domain.Employee, error) {
	emp, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("employee", id, err)
	}
	if err := authorize(s.metrics, actor, auth.ActionRead, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Create inserts a new employee.
func (s *EmployeeService) Create(ctx context.Context, repo repository.EmployeeRepository, actor auth.Principal, input EmployeeInput) (*domain.Employee, error) {
	if err := authorize(s.metrics, actor, auth.ActionCreate, nil); err != nil {
		return nil, err
	}
	emp, err := input.toEmployee()
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, emp); err != nil {
		return nil, mapRepoError("employee", 0, err)
	}
	s.events.publish(ctx, events.EventEmployeeCreated, actor, emp.ID, nil)
	return emp, nil
}

// Update replaces every writable field of an employee.
func (s *EmployeeService) Update(ctx context.Context, repo repository.EmployeeRepository, actor auth.Principal, id int64, input EmployeeInput) (*domain.Employee, error) {
	if err := authorize(s.metrics, actor, auth.ActionUpdate, nil); err != nil {
		return nil, err
	}
	emp, err := input.toEmployee()
	if err != nil {
		return nil, err
	}
	emp.ID = id
	if err := repo.Update(ctx, emp); err != nil {
		return nil, mapRepoError("employee", id, err)
	}
	s.events.publish(ctx, events.EventEmployeeUpdated, actor, id, nil)
	return emp, nil
}

// Delete removes an employee and returns the deleted record.
func (s *EmployeeService) Delete(ctx context.Context, repo repository.EmployeeRepository, actor auth.Principal, id int64) (*domain.Employee, error) {
	if err := authorize(s.metrics, actor, auth.ActionDelete, nil); err != nil {
		return nil, err
	}
	emp, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("employee", id, err)
	}
	if err := repo.Delete(ctx, id); err != nil {
		return nil, mapRepoError("employee", id, err)
	}
	s.events.publish(ctx, events.EventEmployeeDeleted, actor, id, nil)
	return emp, nil
}

func (in EmployeeInput) toEmployee() (*domain.Employee, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", map[string]any{"field": "name"})
	}
	if email == "" {
		return nil, apperrors.NewValidationError("email required", map[string]any{"field": "email"})
	}
	emp := &domain.Employee{
		Name:         name,
		Email:        email,
		Position:     in.Position,
		DateJoined:   in.DateJoined,
		DepartmentID: in.DepartmentID,
	}
	if in.Username != nil {
		if u := strings.TrimSpace(*in.Username); u != "" {
			emp.Username = &u
		}
	}
	return emp, nil
}
