package errors

import (
	"fmt"
	"strings"

	"github.com/jafarshop/sellingplans/internal/domain"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict is returned when there's a conflict (e.g., idempotency)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrTransport is returned when a request never produced an HTTP response
type ErrTransport struct {
	Op  string
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// ErrStatus is returned when the server answered with a non-2xx status
type ErrStatus struct {
	Code int
	Body string
}

func (e *ErrStatus) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// ErrUserErrors is returned when a mutation reported userErrors
type ErrUserErrors struct {
	Errors []domain.UserError
}

func (e *ErrUserErrors) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ue := range e.Errors {
		if len(ue.Field) > 0 {
			msgs = append(msgs, fmt.Sprintf("%s: %s", strings.Join(ue.Field, "."), ue.Message))
			continue
		}
		msgs = append(msgs, ue.Message)
	}
	return "user errors: " + strings.Join(msgs, "; ")
}

// UserErrors returns nil when errs is empty so callers can return it directly
func UserErrors(errs []domain.UserError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ErrUserErrors{Errors: errs}
}
