package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Ladle error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrNotFound          ErrorCode = "NOT_FOUND"
	ErrNameAlreadyExists ErrorCode = "NAME_ALREADY_EXISTS"
	ErrFileNotFound      ErrorCode = "FILE_NOT_FOUND"
	ErrCancelled         ErrorCode = "CANCELLED"
	ErrInternal          ErrorCode = "INTERNAL"
)

// LadleError represents a structured error with a code and optional details.
type LadleError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *LadleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates an error for invalid request parameters.
func NewInvalidRequest(msg string) *LadleError {
	return &LadleError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewNotFound creates an error for when a recipe cannot be found.
func NewNotFound(name string) *LadleError {
	return &LadleError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("recipe not found: %s", name),
		Details: map[string]any{"name": name},
	}
}

// NewNameAlreadyExists creates an error for recipe name collisions.
func NewNameAlreadyExists(name string) *LadleError {
	return &LadleError{
		Code:    ErrNameAlreadyExists,
		Message: fmt.Sprintf("recipe with name %q already exists", name),
		Details: map[string]any{"name": name},
	}
}

// NewFileNotFound creates an error for missing import/export files.
func NewFileNotFound(path string) *LadleError {
	return &LadleError{
		Code:    ErrFileNotFound,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewCancelled creates an error for operations interrupted by context cancellation.
func NewCancelled(operation string) *LadleError {
	return &LadleError{
		Code:    ErrCancelled,
		Message: fmt.Sprintf("operation cancelled: %s", operation),
		Details: map[string]any{"operation": operation},
	}
}

// NewInternal creates an error for unexpected internal failures.
// The message stays generic; the underlying error is kept in Details for logging.
func NewInternal(err error) *LadleError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &LadleError{
		Code:    ErrInternal,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error is a LadleError with the given code.
// Wrapped errors are unwrapped before comparison.
func Is(err error, code ErrorCode) bool {
	var lErr *LadleError
	if stderrors.As(err, &lErr) {
		return lErr.Code == code
	}
	return false
}
