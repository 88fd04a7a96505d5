package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input. Field names the offending
	// payload field when the failure is attributable to a single one.
	ValidationError struct {
		Message string
		Field   string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// MissingParentError indicates a foreign key in a create/update payload does
// not resolve to an existing row. The write is rejected before anything is
// persisted; the store itself carries no referential constraints.
type MissingParentError struct {
	Field string // payload field carrying the reference, e.g. "course_id"
	Kind  string // referenced entity kind, e.g. "course"
	Value int64
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("referenced %s %d does not exist", e.Kind, e.Value)
}

func (e *MissingParentError) StatusCode() int { return http.StatusBadRequest }

func (e *MissingParentError) Is(target error) bool { return target == ErrValidation }

// DuplicateKeyError indicates a uniqueness rule (slug, name) would be
// violated by the write.
type DuplicateKeyError struct {
	Resource string // e.g. "category"
	Field    string // e.g. "slug"
	Value    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s with this %s already exists", e.Resource, e.Field)
}

func (e *DuplicateKeyError) StatusCode() int { return http.StatusConflict }

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrConflict }

// ConflictError represents a logically-duplicate create (favoriting the same
// item twice, double progress for a lesson). ExistingID lets the caller
// de-duplicate client-side.
type ConflictError struct {
	Message      string
	ResourceType string // favorite, progress
	ExistingID   int64
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) StatusCode() int { return http.StatusConflict }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// BlockedError indicates a delete was refused because dependents exist and
// the caller did not authorize a cascade/orphan. Count is the exact number of
// direct dependents at decision time.
type BlockedError struct {
	Resource  string // entity being deleted, e.g. "course"
	Dependent string // dependent kind, e.g. "module"
	Count     int
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("cannot delete %s with %d associated %ss", e.Resource, e.Count, e.Dependent)
}

func (e *BlockedError) StatusCode() int { return http.StatusConflict }

func (e *BlockedError) Is(target error) bool { return target == ErrConflict }

// CascadeError reports a force-delete sequence that aborted mid-way because a
// store call failed. Steps before the failing one have already committed;
// every step is idempotent, so retrying the same delete request converges to
// the fully-deleted state.
type CascadeError struct {
	Entity string
	ID     int64
	Step   string
	Err    error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade delete of %s %d failed at %s: %v", e.Entity, e.ID, e.Step, e.Err)
}

func (e *CascadeError) StatusCode() int { return http.StatusInternalServerError }

func (e *CascadeError) Unwrap() error { return e.Err }
