package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller lacks the capability required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState indicates an operation was attempted outside the entity's allowed
// state transitions (e.g. settling an already-settled payment).
var ErrInvalidState = errors.New("invalid state")

// ErrInsufficientFunds indicates an operating box does not hold enough balance to
// cover a settlement. Wrapping messages carry the current and required amounts.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrPersistence indicates an atomic write failed and was rolled back.
var ErrPersistence = errors.New("persistence error")

// AppError wraps a lower-level error with a code and a message.
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

// NewAppError creates an AppError with an explicit code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewPersistenceError creates an AppError that matches errors.Is(err, ErrPersistence)
// while keeping the underlying cause in the chain.
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{Code: 500, Message: message, Err: fmt.Errorf("%w: %w", ErrPersistence, err)}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
