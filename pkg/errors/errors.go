package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the engine.
var (
	// ErrNotFound indicates a record that does not exist (e.g. a wishlist
	// item the caller tried to remove).
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput indicates a caller-side configuration or argument error.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable indicates a transport-level failure talking to the
	// remote wishlist service.
	ErrUnavailable = errors.New("remote service unavailable")
	// ErrDeclined indicates the remote service answered but did not confirm
	// the mutation (success != true). Never retried by this layer.
	ErrDeclined = errors.New("remote service declined")
)

// AppError is a structured error carrying a stable machine code.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates an error for a missing resource.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Err:     ErrNotFound,
	}
}

// InvalidInput creates an error for bad caller input or configuration.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// Unavailable creates an error for a failed remote call.
func Unavailable(err error) *AppError {
	return &AppError{
		Code:    "REMOTE_UNAVAILABLE",
		Message: "remote wishlist service unreachable",
		Err:     errors.Join(ErrUnavailable, err),
	}
}

// Declined creates an error for a remote response without success: true.
// The remote message, when present, is preserved for the UI error line.
func Declined(remoteMessage string) *AppError {
	if remoteMessage == "" {
		remoteMessage = "request was not accepted"
	}
	return &AppError{
		Code:    "REMOTE_DECLINED",
		Message: remoteMessage,
		Err:     ErrDeclined,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}
