package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bespokesol/catalog/internal/apperrors"
)

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		BadRequest(w, r, err, err.Error(), validationErr.Field)
		return
	}

	var unauthorizedErr *apperrors.UnauthorizedError
	if errors.As(err, &unauthorizedErr) {
		Unauthorized(w, r, err, err.Error())
		return
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		NotFound(w, r, err, err.Error())
		return
	}

	var conflictErr *apperrors.ConflictError
	if errors.As(err, &conflictErr) {
		ConflictError(w, r, err, err.Error())
		return
	}

	var expiredErr *apperrors.ExpiredError
	if errors.As(err, &expiredErr) {
		Gone(w, r, err, err.Error(), map[string]any{
			"expires_at": expiredErr.ExpiresAt.UTC().Format(time.RFC3339),
			"created_at": expiredErr.CreatedAt.UTC().Format(time.RFC3339),
		})
		return
	}

	var timeoutErr *apperrors.TimeoutError
	if errors.As(err, &timeoutErr) || errors.Is(err, context.DeadlineExceeded) {
		GatewayTimeout(w, r, err)
		return
	}

	var dependencyErr *apperrors.DependencyError
	if errors.As(err, &dependencyErr) {
		DependencyFailure(w, r, err)
		return
	}

	InternalError(w, r, err, "internal server error")
}
