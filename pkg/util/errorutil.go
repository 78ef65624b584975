package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DomainError standardizes application errors. Details hold the ordered
// human-readable messages rendered in the error body.
type DomainError struct {
	StatusCode int
	Details    []string
	Err        error
}

func (e *DomainError) Error() string {
	msg := strings.Join(e.Details, "; ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// StatusName renders the HTTP status as its constant name, e.g. "UNAUTHORIZED".
func (e *DomainError) StatusName() string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(e.StatusCode), " ", "_"))
}

// NewDomainError constructs a DomainError.
func NewDomainError(status int, details ...string) *DomainError {
	return &DomainError{StatusCode: status, Details: details}
}

// NewValidationFailed reports malformed or missing request fields. The messages
// keep their submission order.
func NewValidationFailed(messages ...string) error {
	return NewDomainError(http.StatusBadRequest, messages...)
}

// NewUnauthenticated reports a failed credential or token check.
func NewUnauthenticated(message string) error {
	return NewDomainError(http.StatusUnauthorized, TruncateDetail(message))
}

// NewForbidden reports an authorization (not authentication) denial.
func NewForbidden(message string) error {
	return NewDomainError(http.StatusForbidden, message)
}

// NewNotFound reports a missing resource.
func NewNotFound(message string) error {
	return NewDomainError(http.StatusNotFound, TruncateDetail(message))
}

// NewAlreadyExists reports a uniqueness conflict.
func NewAlreadyExists(message string) error {
	return NewDomainError(http.StatusConflict, message)
}

// NewInternalError wraps an unexpected failure without leaking its message.
func NewInternalError(err error) error {
	return &DomainError{
		StatusCode: http.StatusInternalServerError,
		Details:    []string{"An unexpected error occurred"},
		Err:        err,
	}
}

// TruncateDetail cuts a message at the first colon so wrapped internal error
// chains never reach response bodies.
func TruncateDetail(message string) string {
	if idx := strings.Index(message, ":"); idx >= 0 {
		return message[:idx]
	}
	return message
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return NewDomainError(fiberErr.Code, TruncateDetail(fiberErr.Message))
	}
	return &DomainError{
		StatusCode: http.StatusInternalServerError,
		Details:    []string{"An unexpected error occurred"},
		Err:        err,
	}
}
