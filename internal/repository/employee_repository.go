package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-service/internal/domain"
)

// EmployeeRepository manages employee persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
}

// EmployeeFilter defines query params for employee listing.
type EmployeeFilter struct {
	DepartmentID *int64
	Offset       int
	Limit        int
}

type employeeRepository struct {
	db DBTX
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(db DBTX) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, name, email, position, date_joined, department_id, username, created_at, updated_at`

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var emp domain.Employee
	if err := row.Scan(
		&emp.ID,
		&emp.Name,
		&emp.Email,
		&emp.Position,
		&emp.DateJoined,
		&emp.DepartmentID,
		&emp.Username,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, email, position, date_joined, department_id, username)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		emp.Name,
		emp.Email,
		emp.Position,
		emp.DateJoined,
		emp.DepartmentID,
		emp.Username,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	return mapPgError(err)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees
        SET name=$1, email=$2, position=$3, date_joined=$4, department_id=$5, username=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		emp.Name,
		emp.Email,
		emp.Position,
		emp.DateJoined,
		emp.DepartmentID,
		emp.Username,
		emp.ID,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	return mapPgError(err)
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	emp, err := scanEmployee(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return emp, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	args := []any{}
	clauses := []string{}

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY id"
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	result := []domain.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}
