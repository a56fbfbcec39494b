package domain

import (
	"errors"
	"net/http"
)

// Sentinels. Match with errors.Is; the typed errors below match them too.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrCorruptTree means parent links do not reach the root: a cycle or a
	// dangling parent in loaded data.
	ErrCorruptTree = errors.New("folder tree is corrupt")
)

// HTTPError is an error that knows its response status.
type HTTPError interface {
	error
	StatusCode() int
}

// NotFoundError names the folder, document or category that was not found
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string        { return e.Message }
func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError describes invalid input
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) StatusCode() int      { return http.StatusBadRequest }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ForbiddenError is returned when the session mode or a system flag
// does not allow the action
type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string        { return e.Message }
func (e *ForbiddenError) StatusCode() int      { return http.StatusForbidden }
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// ConflictError reports an id that is already taken, so the caller can
// fetch the existing resource
type ConflictError struct {
	Message      string
	ResourceType string // folder or document
	ResourceID   string
}

func (e *ConflictError) Error() string        { return e.Message }
func (e *ConflictError) StatusCode() int      { return http.StatusConflict }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
