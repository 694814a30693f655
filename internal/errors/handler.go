package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used when rendering errors.
// A nil ColorProvider renders plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code without printing anything.
func ExitCodeFor(err error) int {
	var configErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, ErrInvalidArgument), errors.As(err, &configErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleCalculationError prints a user-facing description of err and returns
// the matching exit code.
//
// Parameters:
//   - err: The error returned by a strategy (nil yields ExitSuccess).
//   - duration: How long the run lasted before failing; zero omits it.
//   - out: The writer for the message.
//   - colors: Escape sequences for highlighting, or nil.
//
// Returns:
//   - int: The exit code to report to the OS.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}
	code := ExitCodeFor(err)
	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration)
	}
	switch code {
	case ExitErrorTimeout:
		limit := ""
		var timeoutErr TimeoutError
		if errors.As(err, &timeoutErr) {
			limit = " of " + timeoutErr.Limit.String()
		}
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit%s was reached%s.%s\n", colors.Red(), limit, suffix, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled by user%s.%s\n", colors.Yellow(), suffix, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sStatus: Invalid input. %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure. Unexpected error%s: %v%s\n", colors.Red(), suffix, err, colors.Reset())
	}
	return code
}
