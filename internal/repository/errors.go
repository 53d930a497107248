package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested resource doesn't exist.
// This abstracts pgx.ErrNoRows so the service layer doesn't
// depend on driver internals.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is matched by DuplicateError through errors.Is.
var ErrDuplicate = errors.New("duplicate key")

// ErrCorruptRecord means a stored value could not be decoded.
var ErrCorruptRecord = errors.New("corrupt record")

// DuplicateError reports which unique constraint an insert or update violated.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate key violates %s", e.Constraint)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}
