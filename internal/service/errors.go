package service

import (
	"context"
	"errors"

	"github.com/bespokesol/catalog/internal/apperrors"
	"github.com/bespokesol/catalog/internal/repository"
)

// storeError maps an unexpected repository failure. Deadlines become
// TimeoutError; anything else is passed through for a plain 500.
func storeError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(op)
	}
	return err
}

// dependencyError is storeError for callers that must report which backing
// store failed.
func dependencyError(dependency string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(dependency)
	}
	return apperrors.NewDependencyError(dependency, err)
}

func notFoundOr(err error, resource, id, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFoundError(resource, id)
	}
	return storeError(op, err)
}
