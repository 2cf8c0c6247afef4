package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a pipeline failure. Every caller-facing error carries exactly one kind.
type Kind string

const (
	KindValidation  Kind = "VALIDATION_ERROR"
	KindGeneration  Kind = "GENERATION_FAILED"
	KindParse       Kind = "PARSE_FAILED"
	KindNotFound    Kind = "NOT_FOUND"
	KindPersistence Kind = "PERSISTENCE_UNAVAILABLE"
)

// Error is a taxonomy error. Message is caller-facing; Err keeps the underlying
// cause for logs only and is never rendered into responses.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Generation(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindGeneration, Message: fmt.Sprintf(format, args...), Err: err}
}

func Parse(format string, args ...interface{}) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Persistence(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindPersistence, Message: fmt.Sprintf(format, args...), Err: err}
}

// As extracts a taxonomy error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// HTTPStatus maps a taxonomy kind to its HTTP status code. Unknown errors map to 500.
func HTTPStatus(err error) int {
	e, ok := As(err)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindGeneration, KindParse:
		return fiber.StatusBadGateway
	case KindPersistence:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// Code returns the wire code for an error. Unknown errors get INTERNAL_ERROR.
func Code(err error) string {
	if e, ok := As(err); ok {
		return string(e.Kind)
	}
	return "INTERNAL_ERROR"
}

// PublicMessage returns the caller-facing message, hiding raw causes of unknown errors.
func PublicMessage(err error) string {
	if e, ok := As(err); ok {
		return e.Message
	}
	return "internal server error"
}
