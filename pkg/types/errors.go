package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Typed errors below match them through errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrConstraint    = errors.New("constraint violation")
	ErrHasDependents = errors.New("entity has dependents")
	ErrNotFound      = errors.New("entity not found")
	ErrStorage       = errors.New("storage failure")
	ErrUnknownEntity = errors.New("unknown entity")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
)

// Store lifecycle errors.
var (
	ErrDetached            = errors.New("store is detached")
	ErrAlreadyAttached     = errors.New("store is already attached")
	ErrForeignKeysDisabled = errors.New("foreign key enforcement is disabled")
)

// ValidationError reports a raw field value that failed a field-level rule.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConstraintKind identifies the schema constraint a write violated.
type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintNotNull    ConstraintKind = "not null"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintForeignKey ConstraintKind = "foreign key"
)

// ConstraintViolation reports a write rejected by a schema constraint.
// Field is empty when the engine does not name the column.
type ConstraintViolation struct {
	Entity Entity
	Field  string
	Kind   ConstraintKind
	Detail string
	Err    error
}

func (e *ConstraintViolation) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Entity))
	if e.Field != "" {
		b.WriteString(".")
		b.WriteString(e.Field)
	}
	fmt.Fprintf(&b, ": %s constraint violated", e.Kind)
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

func (e *ConstraintViolation) Is(target error) bool {
	return target == ErrConstraint
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// DependentsError reports a deletion blocked by rows that still reference
// the target.
type DependentsError struct {
	Entity     Entity
	ID         int64
	Dependents Dependents
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("cannot delete %s %d: referenced by %s", e.Entity, e.ID, e.Dependents)
}

func (e *DependentsError) Is(target error) bool {
	return target == ErrHasDependents
}

// StorageError wraps an engine fault (disk, corruption, lost connection).
// It is terminal for the operation that produced it and never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
