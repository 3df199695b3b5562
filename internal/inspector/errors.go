package inspector

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/forge/internal/model"
	"github.com/specialistvlad/forge/internal/targetref"
)

// TargetResolutionError is returned when a scheme has no target the graph
// can resolve for the requested action.
type TargetResolutionError struct {
	Scheme    string
	Action    string
	Reference *targetref.Reference
}

func (e *TargetResolutionError) Error() string {
	if e.Reference == nil {
		return fmt.Sprintf("scheme %s has no %s target", e.Scheme, e.Action)
	}
	return fmt.Sprintf("couldn't resolve %s target %s of scheme %s", e.Action, e.Reference, e.Scheme)
}

// UnknownPlatformMappingError is returned when no SDK is known for a platform.
type UnknownPlatformMappingError struct {
	Target   string
	Platform model.Platform
}

func (e *UnknownPlatformMappingError) Error() string {
	return fmt.Sprintf("couldn't find an SDK for platform %q of target %s", e.Platform, e.Target)
}

// AsTargetResolutionError reports whether err is a *TargetResolutionError.
func AsTargetResolutionError(err error) (*TargetResolutionError, bool) {
	var e *TargetResolutionError
	ok := errors.As(err, &e)
	return e, ok
}

// AsUnknownPlatformMappingError reports whether err is an *UnknownPlatformMappingError.
func AsUnknownPlatformMappingError(err error) (*UnknownPlatformMappingError, bool) {
	var e *UnknownPlatformMappingError
	ok := errors.As(err, &e)
	return e, ok
}
