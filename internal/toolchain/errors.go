package toolchain

import (
	"fmt"
	"strings"
)

// InvocationError reports a toolchain run that did not succeed. Output holds
// the last lines the process wrote to stderr, verbatim.
type InvocationError struct {
	Action   Action
	Scheme   string
	ExitCode int
	Output   []string
	Err      error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s of scheme %s failed", e.Action, e.Scheme)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if e.Err != nil && e.ExitCode <= 0 {
		msg += ": " + e.Err.Error()
	}
	if len(e.Output) > 0 {
		msg += "\n" + strings.Join(e.Output, "\n")
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
