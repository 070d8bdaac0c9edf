// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInvalidInput      = errors.New("invalid input")
	ErrTransactionFailed = errors.New("transaction failed")
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeConflict          = "CONFLICT"
	CodeTransactionFailed = "TRANSACTION_FAILED"
	CodeInternal          = "INTERNAL_ERROR"
)

// AppError is an error that already knows how it should be presented.
type AppError struct {
	Status  int
	Code    string
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

func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		http.StatusNotFound,
		CodeNotFound,
		resource+" not found",
		ErrNotFound,
	)
}

func ValidationError(message string) *AppError {
	return NewAppError(
		http.StatusBadRequest,
		CodeValidation,
		message,
		ErrInvalidInput,
	)
}

func ConflictError(message string) *AppError {
	return NewAppError(
		http.StatusConflict,
		CodeConflict,
		message,
		ErrDuplicateKey,
	)
}

func TransactionError(err error) *AppError {
	return NewAppError(
		http.StatusInternalServerError,
		CodeTransactionFailed,
		"the operation was rolled back",
		err,
	)
}

func InternalError(err error) *AppError {
	return NewAppError(
		http.StatusInternalServerError,
		CodeInternal,
		"internal server error",
		err,
	)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// Classify maps a service error onto the error taxonomy exposed to clients.
// The invalid-input message is the wrapped error text so callers see which
// field was rejected.
func Classify(err error, resource string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NotFoundError(resource)
	case errors.Is(err, ErrInvalidInput):
		return ValidationError(err.Error())
	case errors.Is(err, ErrDuplicateKey):
		return ConflictError(resource + " already exists")
	case errors.Is(err, ErrTransactionFailed):
		return TransactionError(err)
	default:
		return InternalError(err)
	}
}

// ParseID validates a record id taken from a path or body.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ValidationError("invalid id")
	}
	return id.String(), nil
}
