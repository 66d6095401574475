package provider

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownResource is returned for a resource missing from the catalog.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrUnknownField is returned when a query or write names a column the
	// resource does not expose.
	ErrUnknownField = errors.New("unknown field")

	// ErrNotFound is returned when an update matches no record.
	ErrNotFound = errors.New("record not found")
)

// BackendError carries the message reported by the backend for a failed
// call so it can be shown to the operator unchanged.
type BackendError struct {
	Resource string
	Op       string
	Message  string
	Err      error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Resource, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func backendError(resource, op string, err error) error {
	return &BackendError{Resource: resource, Op: op, Message: err.Error(), Err: err}
}

// Message returns the backend-provided message of err when one is present,
// otherwise err's own text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return err.Error()
}

// IsDuplicate reports whether err signals a uniqueness conflict. Both the
// PostgreSQL ("duplicate key value violates unique constraint") and SQLite
// ("UNIQUE constraint failed") wordings are recognized.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(Message(err))
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
