package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors returned by every repository implementation.
var (
	ErrNotFound   = errors.New("repository: not found")
	ErrConflict   = errors.New("repository: unique constraint violated")
	ErrReferenced = errors.New("repository: foreign key constraint violated")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPgError translates pgx errors into repository sentinels.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConstraintError{Sentinel: ErrConflict, Constraint: pgErr.ConstraintName, Err: err}
		case pgForeignKeyViolation:
			return &ConstraintError{Sentinel: ErrReferenced, Constraint: pgErr.ConstraintName, Err: err}
		}
	}
	return err
}

// ConstraintError names the violated constraint; errors.Is matches its sentinel.
type ConstraintError struct {
	Sentinel   error
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return e.Sentinel.Error() + " (" + e.Constraint + ")"
}

func (e *ConstraintError) Is(target error) bool {
	return target == e.Sentinel
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
