package shared

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ConstraintError is a constraint violation translated to one of the shared
// sentinels. Constraint names the violated constraint.
type ConstraintError struct {
	Kind       error
	Constraint string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Constraint)
}

func (e *ConstraintError) Unwrap() error { return e.Kind }

// ViolatedConstraint returns the constraint name carried by err, or "".
func ViolatedConstraint(err error) string {
	var cErr *ConstraintError
	if errors.As(err, &cErr) {
		return cErr.Constraint
	}
	return ""
}

// TranslatePgError maps driver errors onto the shared sentinels so callers
// never branch on SQLSTATE codes.
func TranslatePgError(err error) error {
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
			return &ConstraintError{Kind: ErrDuplicate, Constraint: pgErr.ConstraintName}
		case pgForeignKeyViolation:
			return &ConstraintError{Kind: ErrNotFound, Constraint: pgErr.ConstraintName}
		}
	}
	return err
}
