package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// ErrNotFound is returned when a row addressed by primary key does not exist.
var ErrNotFound = pgx.ErrNoRows

// ErrDuplicate is returned when a write violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate key")

// Constraint names declared in migrations/001_create_ems_tables.sql.
const (
	ConstraintEmployeeContactNo = "employees_contact_no_key"
	ConstraintEmployeeEmail     = "employees_email_key"
)

func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsUniqueViolation(err, "") {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return err
}
