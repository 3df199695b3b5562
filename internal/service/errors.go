package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/forge/internal/toolchain"
)

// ErrNoSchemes is returned when the graph has no scheme for the action.
var ErrNoSchemes = errors.New("no schemes found")

// SchemeNotFoundError is returned when a requested scheme does not exist.
// Existing lists the schemes that do, in selection order.
type SchemeNotFoundError struct {
	Scheme   string
	Existing []string
}

func (e *SchemeNotFoundError) Error() string {
	return fmt.Sprintf("Couldn't find scheme %s. The available schemes are: %s", e.Scheme, strings.Join(e.Existing, ", "))
}

// ToolchainInvocationError is returned when a toolchain run fails. Completed
// lists the schemes that succeeded before it.
type ToolchainInvocationError struct {
	Action    toolchain.Action
	Scheme    string
	Completed []string
	Err       error
}

func (e *ToolchainInvocationError) Error() string {
	return fmt.Sprintf("failed to %s scheme %s: %v", e.Action, e.Scheme, e.Err)
}

func (e *ToolchainInvocationError) Unwrap() error {
	return e.Err
}

// AsSchemeNotFoundError reports whether err is a *SchemeNotFoundError.
func AsSchemeNotFoundError(err error) (*SchemeNotFoundError, bool) {
	var e *SchemeNotFoundError
	ok := errors.As(err, &e)
	return e, ok
}

// AsToolchainInvocationError reports whether err is a *ToolchainInvocationError.
func AsToolchainInvocationError(err error) (*ToolchainInvocationError, bool) {
	var e *ToolchainInvocationError
	ok := errors.As(err, &e)
	return e, ok
}
