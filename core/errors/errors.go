package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"

	ErrCreateFailed ErrorCode = "CREATE_FAILED"
	ErrGetFailed    ErrorCode = "GET_FAILED"
	ErrUpdateFailed ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed ErrorCode = "DELETE_FAILED"

	ErrEnqueueFailed        ErrorCode = "ENQUEUE_FAILED"
	ErrSchedulingInProgress ErrorCode = "SCHEDULING_IN_PROGRESS"
	ErrSchedulingFailed     ErrorCode = "SCHEDULING_FAILED"
)

// AppError is the error type returned by services to controllers.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// As reports whether err is (or wraps) an *AppError and returns it.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is is errors.Is re-exported so callers do not need two errors imports.
func Is(err, target error) bool { return stderrors.Is(err, target) }
