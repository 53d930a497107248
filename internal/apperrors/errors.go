package apperrors

import (
	"fmt"
	"time"
)

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Reason)
	}
	return fmt.Sprintf("%s conflict", e.Resource)
}

func NewConflictError(resource, reason string) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason}
}

type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unauthorized: %s", e.Reason)
	}
	return "unauthorized"
}

func NewUnauthorizedError(reason string) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason}
}

// ExpiredError is returned for a resource that exists but whose expiry has passed.
// It keeps the timestamps so callers can tell the client when it stopped being valid.
type ExpiredError struct {
	Resource  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("%s has expired", e.Resource)
}

func NewExpiredError(resource string, expiresAt, createdAt time.Time) *ExpiredError {
	return &ExpiredError{Resource: resource, ExpiresAt: expiresAt, CreatedAt: createdAt}
}

// DependencyError wraps an unexpected failure of a backing store.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

func NewDependencyError(dependency string, err error) *DependencyError {
	return &DependencyError{Dependency: dependency, Err: err}
}

type TimeoutError struct {
	Operation string
}

func (e *TimeoutError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("operation timed out: %s", e.Operation)
	}
	return "operation timed out"
}

func NewTimeoutError(operation string) *TimeoutError {
	return &TimeoutError{Operation: operation}
}
