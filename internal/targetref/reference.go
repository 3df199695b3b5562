package targetref

import (
	"path/filepath"
)

// String serializes the Reference into its canonical `path:Name` form.
func (r Reference) String() string {
	if r.IsLocal() {
		return r.Name
	}
	return r.ProjectPath + ":" + r.Name
}

// Resolve anchors a local or relative reference to base. Absolute project
// paths are only cleaned.
func (r Reference) Resolve(base string) Reference {
	switch {
	case r.IsLocal():
		return Reference{ProjectPath: filepath.Clean(base), Name: r.Name}
	case filepath.IsAbs(r.ProjectPath):
		return Reference{ProjectPath: filepath.Clean(r.ProjectPath), Name: r.Name}
	default:
		return Reference{ProjectPath: filepath.Join(base, r.ProjectPath), Name: r.Name}
	}
}
