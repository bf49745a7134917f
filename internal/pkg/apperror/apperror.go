package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Code string

const (
	CodeValidation Code = "VALIDATION"
	CodeAuth       Code = "AUTH"
	CodeNotFound   Code = "NOT_FOUND"
	CodeConflict   Code = "CONFLICT"
	CodeUpstream   Code = "UPSTREAM"
)

// AppError is the single error type handlers translate into HTTP responses.
// Everything below the controller layer wraps failures into one of these.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// HTTPStatus maps the taxonomy onto status codes:
// VALIDATION 400, AUTH 401, NOT_FOUND 404, CONFLICT 409, UPSTREAM 500.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeAuth:
		return fiber.StatusUnauthorized
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func Validation(msg string) error {
	return New(CodeValidation, msg)
}

func Auth(msg string) error {
	return New(CodeAuth, msg)
}

func NotFound(msg string) error {
	return New(CodeNotFound, msg)
}

func Conflict(msg string) error {
	return New(CodeConflict, msg)
}

// Upstream wraps completion-service and database failures. The message is the
// user-safe part; the cause stays in logs only.
func Upstream(msg string, cause error) error {
	return Wrap(CodeUpstream, msg, cause)
}

// From extracts an *AppError if err is (or wraps) one.
func From(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
