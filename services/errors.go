package services

import "github.com/gofiber/fiber/v2"

// Error is a service-level failure carrying the HTTP status the boundary
// layer should answer with.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func internalError(message string, err error) *Error {
	return &Error{Code: fiber.StatusInternalServerError, Message: message, Err: err}
}
