package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrBadRequest       = errors.New("malformed request")
	ErrConflict         = errors.New("resource conflict")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInternal         = errors.New("internal server error")
)

// Unauthorized is returned whenever a protected operation has no resolved user.
var Unauthorized = &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrUnauthorized, message: "Unauthorized"}

// ApiErr carries the HTTP status alongside the caller-facing message.
type ApiErr struct {
	StatusCode int
	err        error
	message    string
	Cause      error // never shown to the caller
}

func newApiErr(statusCode int, sentinel error, message string) *ApiErr {
	return &ApiErr{StatusCode: statusCode, err: sentinel, message: message}
}

func (e *ApiErr) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.err.Error()
}

// Unwrap lets errors.Is match the sentinel the error was built from.
func (e *ApiErr) Unwrap() error {
	return e.err
}

// GetFullError returns the message followed by its cause chain, for logs.
func (e *ApiErr) GetFullError() string {
	if e.Cause == nil {
		return e.Error()
	}
	return fmt.Sprintf("%s -> %s", e.Error(), e.Cause.Error())
}

// NewNotFound builds "<Entity> not found".
func NewNotFound(entity string) *ApiErr {
	return newApiErr(http.StatusNotFound, ErrNotFound, entity+" not found")
}

func NewForbidden(message string) *ApiErr {
	return newApiErr(http.StatusForbidden, ErrForbidden, message)
}

func NewConflict(message string) *ApiErr {
	return newApiErr(http.StatusConflict, ErrConflict, message)
}

func NewValidation(message string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrBadRequest, message)
}

// NewInvalidOperation is a well-formed request the domain refuses, such as following yourself.
func NewInvalidOperation(message string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrInvalidOperation, message)
}

func NewUnauthorized(message string) *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrUnauthorized, message)
}

func NewInternalWithCause(cause error) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, err: ErrInternal, message: "Internal server error", Cause: cause}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// StatusCode maps any error to the status it should be answered with.
func StatusCode(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
