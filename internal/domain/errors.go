package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrHouseNotFound      = errors.New("house not found")
	ErrUnauthorized       = errors.New("not allowed for this user")
	ErrInvalidState       = errors.New("transition not allowed from current status")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// ValidationError carries per-field messages so the UI layer can resubmit.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
