package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError carries an HTTP status and a user-facing message through the
// service layer up to ErrorHandlerMiddleware.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequest(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

// NewBadGateway reports a failing upstream (the language model) as retryable.
func NewBadGateway(message string, err error) *AppError {
	return &AppError{Code: fiber.StatusBadGateway, Message: message, Err: err}
}

func NewInternal(message string, err error) *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: message, Err: err}
}

// AsAppError unwraps err into an *AppError when one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
