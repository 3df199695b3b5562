package fsutil

import (
	"os"
	"path/filepath"
	"sort"
)

// Locator finds files on disk. It is injected wherever forge looks for
// descriptors so tests can point it at a temporary tree.
type Locator interface {
	// Glob returns the entries of dir matching pattern, in lexical order.
	Glob(dir, pattern string) ([]string, error)
	// Exists reports whether path exists.
	Exists(path string) bool
}

// OS is the Locator backed by the real file system.
type OS struct{}

var _ Locator = OS{}

// Glob returns the entries of dir matching pattern, in lexical order.
func (OS) Glob(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// Exists reports whether path exists.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FindUp walks from start towards the file system root and returns the first
// directory for which match returns true.
func FindUp(start string, match func(dir string) bool) (string, bool) {
	dir := filepath.Clean(start)
	for {
		if match(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
