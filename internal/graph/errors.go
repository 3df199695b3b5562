package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIdentityCollision is returned when two nodes claim the same identity
	// with different definitions.
	ErrIdentityCollision = errors.New("identity collision")

	// ErrUnresolvedDependency is returned when a target depends on a target
	// that no loaded project declares.
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrCycleDetected is returned when the dependency edges form a cycle.
	ErrCycleDetected = errors.New("dependency cycle detected")
)

// ConstructionError reports why a graph could not be built. It is fatal and
// always raised before any toolchain process starts.
type ConstructionError struct {
	// Reason is one of the sentinel errors of this package.
	Reason error
	Detail string
	// Cycle holds the full cycle path, first node repeated at the end, when
	// Reason is ErrCycleDetected.
	Cycle []ID
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("graph construction failed: %v: %s", e.Reason, e.Detail)
}

func (e *ConstructionError) Unwrap() error { return e.Reason }

// AsConstructionError returns the *ConstructionError in err's chain, or nil.
func AsConstructionError(err error) *ConstructionError {
	var ce *ConstructionError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}

func collision(format string, a ...any) error {
	return &ConstructionError{Reason: ErrIdentityCollision, Detail: fmt.Sprintf(format, a...)}
}

func unresolved(format string, a ...any) error {
	return &ConstructionError{Reason: ErrUnresolvedDependency, Detail: fmt.Sprintf(format, a...)}
}

func cycleError(path []ID) error {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = id.String()
	}
	return &ConstructionError{
		Reason: ErrCycleDetected,
		Detail: strings.Join(parts, " -> "),
		Cycle:  path,
	}
}
