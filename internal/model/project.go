package model

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/forge/internal/targetref"
)

// Target is the leaf compilation unit.
type Target struct {
	Name             string
	Platform         Platform
	Product          Product
	ProductName      string
	BundleID         string
	DeploymentTarget string
	InfoPlist        string
	Entitlements     string
	Sources          []string
	Resources        []string
	Dependencies     []Dependency
}

// BuildAction lists the targets a scheme builds, in order.
type BuildAction struct {
	Targets []targetref.Reference
}

// TestAction lists the targets a scheme tests, in order.
type TestAction struct {
	Targets []targetref.Reference
}

// Scheme is a named pairing of a build action and an optional test action.
type Scheme struct {
	Name        string
	Shared      bool
	BuildAction *BuildAction
	TestAction  *TestAction
}

// IsBuildable reports whether the build action lists at least one target.
func (s *Scheme) IsBuildable() bool {
	return s.BuildAction != nil && len(s.BuildAction.Targets) > 0
}

// IsTestable reports whether the test action lists at least one target.
func (s *Scheme) IsTestable() bool {
	return s.TestAction != nil && len(s.TestAction.Targets) > 0
}

// Project is a set of targets and schemes declared by one manifest.
type Project struct {
	// Path is the absolute directory containing the manifest.
	Path             string
	Name             string
	OrganizationName string
	// XcodeProjPath is where the IDE project for this manifest lives.
	XcodeProjPath string
	Targets       []*Target
	Schemes       []*Scheme
}

// Target returns the target with the given name.
func (p *Project) Target(name string) (*Target, bool) {
	for _, t := range p.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Workspace aggregates projects sharing a build scope.
type Workspace struct {
	Path string
	Name string
	// Projects holds absolute project directories, in declaration order.
	Projects []string
}

// Config holds repository-wide generation settings.
type Config struct {
	GenerationOptions GenerationOptions
}

// GenerationOptions tune how projects are generated.
type GenerationOptions struct {
	// XcodeProjectName is a template evaluated with the `project_name`
	// variable. Nil keeps the project name.
	XcodeProjectName            hcl.Expression
	OrganizationName            string
	DisableAutogeneratedSchemes bool
}
