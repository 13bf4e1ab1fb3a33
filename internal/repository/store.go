package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the query surface shared by pools, pooled connections and transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Session is a request-scoped handle to the persistence layer. Callers must
// call Release exactly once when the request ends.
type Session interface {
	Users() UserRepository
	Departments() DepartmentRepository
	Employees() EmployeeRepository
	Release()
}

// Store hands out sessions.
type Store interface {
	Acquire(ctx context.Context) (Session, error)
}

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a Store whose sessions each pin one pooled connection.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

func (s *postgresStore) Acquire(ctx context.Context) (Session, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &postgresSession{conn: conn}, nil
}

type postgresSession struct {
	conn *pgxpool.Conn
}

func (s *postgresSession) Users() UserRepository {
	return NewUserRepository(s.conn)
}

func (s *postgresSession) Departments() DepartmentRepository {
	return NewDepartmentRepository(s.conn)
}

func (s *postgresSession) Employees() EmployeeRepository {
	return NewEmployeeRepository(s.conn)
}

func (s *postgresSession) Release() {
	s.conn.Release()
}
