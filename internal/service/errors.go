package service

import (
	"errors"

	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

const msgDuplicateEmployee = "Contact number or Email already exists"

// mapRepoError turns repository sentinels into domain errors for the named resource.
func mapRepoError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewValidationError(msgDuplicateEmployee, nil)
	default:
		return apperrors.NewInternalError(err)
	}
}
