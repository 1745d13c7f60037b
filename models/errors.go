package models

import "fmt"

// ValidationError reports a rejected write: a blank required field, a
// non-positive batch yield, a negative cost or quantity, or a recipe with no
// usable ingredient rows. It is raised before anything is persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReferentialIntegrityError reports a delete that was refused because other
// records still reference the target.
type ReferentialIntegrityError struct {
	Entity     string
	ID         uint
	References string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %d is still referenced by %s", e.Entity, e.ID, e.References)
}

// StorageError wraps an underlying persistence failure. The cause is
// preserved for errors.Is/errors.As; the core never retries.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
