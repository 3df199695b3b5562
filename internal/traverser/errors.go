package traverser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/forge/internal/graph"
)

// ErrTargetNotFound is returned when a query names a target the graph does not hold.
var ErrTargetNotFound = errors.New("target not found")

func notFound(path, name string) error {
	return fmt.Errorf("%w: %s", ErrTargetNotFound, graph.TargetID(path, name))
}

func cycle(path []graph.ID) error {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = id.String()
	}
	return fmt.Errorf("%w: %s", graph.ErrCycleDetected, strings.Join(parts, " -> "))
}
