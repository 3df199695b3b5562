package manifest

import (
	"errors"
	"fmt"
)

// ErrManifestNotFound is returned when a directory has no manifest of the requested kind.
var ErrManifestNotFound = errors.New("manifest not found")

// ManifestError reports an invalid manifest. File is the manifest path.
type ManifestError struct {
	File   string
	Reason string
	Err    error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid manifest %s: %s: %v", e.File, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid manifest %s: %s", e.File, e.Reason)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

func invalid(file string, err error, format string, args ...any) error {
	return &ManifestError{File: file, Reason: fmt.Sprintf(format, args...), Err: err}
}
