package apperror

import (
	"errors"
	"fmt"
)

// AppError is what services return for anything a client can act on.
// Handlers answer with Code, Message and HTTPStatus.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Error leaves out the cause when it is the error this one was derived from,
// its message is already part of Message.
func (e *AppError) Error() string {
	if e.Err == nil || isAppError(e.Err) {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Detailf derives an error with the same code and status whose message
// names what exactly went wrong. errors.Is still matches e.
func (e *AppError) Detailf(format string, args ...any) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message + ". " + fmt.Sprintf(format, args...),
		HTTPStatus: e.HTTPStatus,
		Err:        e,
	}
}

func isAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
