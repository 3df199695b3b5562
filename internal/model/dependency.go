package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DependencyKind discriminates what a Dependency points at.
type DependencyKind string

const (
	// DependencyTarget points at a target of the same project.
	DependencyTarget DependencyKind = "target"
	// DependencyProject points at a target of another project.
	DependencyProject DependencyKind = "project"
	// DependencyFramework points at a precompiled framework.
	DependencyFramework DependencyKind = "framework"
	// DependencyLibrary points at a precompiled library.
	DependencyLibrary DependencyKind = "library"
	// DependencySDK points at a system framework or library.
	DependencySDK DependencyKind = "sdk"
)

// ParseDependencyKind converts a manifest label into a DependencyKind.
func ParseDependencyKind(raw string) (DependencyKind, error) {
	k := DependencyKind(strings.ToLower(strings.TrimSpace(raw)))
	switch k {
	case DependencyTarget, DependencyProject, DependencyFramework, DependencyLibrary, DependencySDK:
		return k, nil
	default:
		return "", fmt.Errorf("unknown dependency kind %q", raw)
	}
}

// SDKStatus tells the linker whether a system dependency may be missing at runtime.
type SDKStatus string

const (
	SDKRequired SDKStatus = "required"
	SDKOptional SDKStatus = "optional"
)

// Linking is how a precompiled binary is linked.
type Linking string

const (
	LinkingStatic  Linking = "static"
	LinkingDynamic Linking = "dynamic"
)

// Dependency is a single declared edge of a target.
type Dependency struct {
	Kind DependencyKind
	// Name is the target name for target/project dependencies, the binary
	// path for precompiled dependencies and the file name for SDKs.
	Name string
	// Path is the project path of a project dependency.
	Path string
	// Status only applies to SDK dependencies.
	Status SDKStatus
	// Linking only applies to precompiled dependencies. Empty means it is
	// inferred from the file extension.
	Linking Linking
}

// ResolvedLinking returns how a precompiled dependency is linked. Libraries
// ending in .a and frameworks declared static link statically.
func (d Dependency) ResolvedLinking() Linking {
	if d.Linking != "" {
		return d.Linking
	}
	switch filepath.Ext(d.Name) {
	case ".a":
		return LinkingStatic
	default:
		return LinkingDynamic
	}
}

// String renders the dependency the way it is written in a manifest.
func (d Dependency) String() string {
	switch d.Kind {
	case DependencyProject:
		return fmt.Sprintf("project %s:%s", d.Path, d.Name)
	case DependencySDK:
		status := d.Status
		if status == "" {
			status = SDKRequired
		}
		return fmt.Sprintf("sdk %s (%s)", d.Name, status)
	default:
		return fmt.Sprintf("%s %s", d.Kind, d.Name)
	}
}
