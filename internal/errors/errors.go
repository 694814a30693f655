package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a sum mismatch between strategies.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrInvalidArgument is the sentinel matched by every ValidationError.
// Callers that only care about the error class can test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError records which strategy failed on which array size. Its
// message is the cause's message; the strategy is already shown next to it
// wherever results are printed.
type CalculationError struct {
	Strategy string
	Size     int
	Cause    error
}

// Error returns the message of the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the cause so that errors.Is and errors.As see through it.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports that a benchmark run hit its -timeout limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap exposes context.DeadlineExceeded so that timeouts are classified
// the same way whether they come from a context or from this type.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidArgument.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewValidationError creates a ValidationError for the given field with a
// formatted message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// WrapError prefixes err with a formatted message, keeping it in the chain.
// It returns nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err comes from a cancelled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
