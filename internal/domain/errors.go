package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the caller lacks the admin role.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports per-field problems with user input. Fields maps the
// input field name to a human readable message.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns nil when fields is empty.
func NewValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid input: " + strings.Join(names, ", ")
}
