// Package memory implements the repository interfaces in process memory. It is
// used when no database is configured and by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
)

// Store is a goroutine-safe in-memory repository.Store.
type Store struct {
	mu          sync.RWMutex
	now         func() time.Time
	seq         int64
	users       map[int64]domain.User
	departments map[int64]domain.Department
	employees   map[int64]domain.Employee
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:         time.Now,
		users:       map[int64]domain.User{},
		departments: map[int64]domain.Department{},
		employees:   map[int64]domain.Employee{},
	}
}

// Acquire returns a session over the shared maps. Release is a no-op.
func (s *Store) Acquire(_ context.Context) (repository.Session, error) {
	return session{s}, nil
}

type session struct {
	s *Store
}

func (se session) Users() repository.UserRepository             { return users{se.s} }
func (se session) Departments() repository.DepartmentRepository { return departments{se.s} }
func (se session) Employees() repository.EmployeeRepository     { return employees{se.s} }
func (se session) Release()                                     {}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func conflict(constraint string) error {
	return &repository.ConstraintError{Sentinel: repository.ErrConflict, Constraint: constraint}
}

func referenced(constraint string) error {
	return &repository.ConstraintError{Sentinel: repository.ErrReferenced, Constraint: constraint}
}

type users struct{ s *Store }

func (r users) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return conflict("users_username_key")
		}
	}
	user.ID = r.s.nextID()
	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return nil
}

func (r users) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Username == username {
			clone := user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

type departments struct{ s *Store }

func (r departments) Create(ctx context.Context, dept *domain.Department) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(dept.Name, 0) {
		return conflict("departments_name_key")
	}
	now := r.s.now()
	dept.ID = r.s.nextID()
	dept.CreatedAt, dept.UpdatedAt = now, now
	r.s.departments[dept.ID] = *dept
	return nil
}

func (r departments) Update(ctx context.Context, dept *domain.Department) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.departments[dept.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(dept.Name, dept.ID) {
		return conflict("departments_name_key")
	}
	existing.Name = dept.Name
	existing.UpdatedAt = r.s.now()
	r.s.departments[dept.ID] = existing
	*dept = existing
	return nil
}

func (r departments) nameTaken(name string, exceptID int64) bool {
	for id, d := range r.s.departments {
		if id != exceptID && d.Name == name {
			return true
		}
	}
	return false
}

func (r departments) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.departments[id]; !ok {
		return repository.ErrNotFound
	}
	for _, emp := range r.s.employees {
		if emp.DepartmentID != nil && *emp.DepartmentID == id {
			return referenced("employees_department_id_fkey")
		}
	}
	delete(r.s.departments, id)
	return nil
}

func (r departments) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	dept, ok := r.s.departments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &dept, nil
}

func (r departments) List(ctx context.Context, offset, limit int) ([]domain.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	all := make([]domain.Department, 0, len(r.s.departments))
	for _, d := range r.s.departments {
		all = append(all, d)
	}
	r.s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, offset, limit), nil
}

type employees struct{ s *Store }

func (r employees) check(emp *domain.Employee) error {
	for id, other := range r.s.employees {
		if id == emp.ID {
			continue
		}
		if strings.EqualFold(other.Email, emp.Email) {
			return conflict("employees_email_key")
		}
		if emp.Username != nil && other.Username != nil && *other.Username == *emp.Username {
			return conflict("employees_username_key")
		}
	}
	if emp.DepartmentID != nil {
		if _, ok := r.s.departments[*emp.DepartmentID]; !ok {
			return referenced("employees_department_id_fkey")
		}
	}
	if emp.Username != nil {
		found := false
		for _, u := range r.s.users {
			if u.Username == *emp.Username {
				found = true
				break
			}
		}
		if !found {
			return referenced("employees_username_fkey")
		}
	}
	return nil
}

func (r employees) Create(ctx context.Context, emp *domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	emp.ID = 0
	if err := r.check(emp); err != nil {
		return err
	}
	now := r.s.now()
	emp.ID = r.s.nextID()
	emp.CreatedAt, emp.UpdatedAt = now, now
	r.s.employees[emp.ID] = *emp
	return nil
}

func (r employees) Update(ctx context.Context, emp *domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.employees[emp.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.check(emp); err != nil {
		return err
	}
	emp.CreatedAt = existing.CreatedAt
	emp.UpdatedAt = r.s.now()
	r.s.employees[emp.ID] = *emp
	return nil
}

func (r employees) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.employees, id)
	return nil
}

func (r employees) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	emp, ok := r.s.employees[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &emp, nil
}

func (r employees) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	all := make([]domain.Employee, 0, len(r.s.employees))
	for _, emp := range r.s.employees {
		if filter.DepartmentID != nil && (emp.DepartmentID == nil || *emp.DepartmentID != *filter.DepartmentID) {
			continue
		}
		all = append(all, emp)
	}
	r.s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	return page(all, filter.Offset, limit), nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
