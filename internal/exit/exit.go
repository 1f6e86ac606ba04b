package exit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Process exit codes.
const (
	CodeSuccess     = 0
	CodeFailure     = 1
	CodeUsage       = 2
	CodeInterrupted = 130
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a successful exit result that outputs to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeSuccess,
		Message:  message,
	}
}

// Errorf creates an error exit result that outputs to stderr with exit code 1.
func Errorf(format string, a ...any) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeFailure,
		Message:  fmt.Sprintf(format, a...),
	}
}

// Usagef creates an exit result for invalid command-line usage.
func Usagef(format string, a ...any) *Result {
	r := Errorf(format, a...)
	r.ExitCode = CodeUsage
	return r
}

// FromError maps a runtime error to an exit result. Cancellation maps to
// CodeInterrupted; everything else is a failure.
func FromError(err error) *Result {
	if errors.Is(err, context.Canceled) {
		r := Errorf("Interrupted\n")
		r.ExitCode = CodeInterrupted
		return r
	}
	return Errorf("Error: %v\n", err)
}
