package targetref

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex matches a target name: letters, digits, underscores, dots and dashes.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// isValidName rejects names that are path-like rather than target-like.
func isValidName(name string) bool {
	if name == "." || name == ".." || name == "-" {
		return false
	}
	return nameRegex.MatchString(name)
}

// Parse creates a Reference from its canonical string form. The last colon
// separates the project path from the target name.
func Parse(raw string) (Reference, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Reference{}, fmt.Errorf("target reference cannot be empty")
	}

	path, name := "", raw
	if i := strings.LastIndex(raw, ":"); i >= 0 {
		path, name = raw[:i], raw[i+1:]
		if path == "" {
			return Reference{}, fmt.Errorf("target reference %q has an empty project path", raw)
		}
	}

	if name == "" {
		return Reference{}, fmt.Errorf("target reference %q has an empty target name", raw)
	}
	if !isValidName(name) {
		return Reference{}, fmt.Errorf("invalid target name: %q", name)
	}

	return Reference{ProjectPath: path, Name: name}, nil
}
