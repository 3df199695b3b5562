package service

import (
	"context"

	"github.com/specialistvlad/forge/internal/inspector"
	"github.com/specialistvlad/forge/internal/toolchain"
)

// BuildOptions are the inputs of the build command.
type BuildOptions struct {
	Path string
	// Scheme restricts the run to one scheme. Empty builds every buildable scheme.
	Scheme string
	// Generate regenerates the workspace even when one exists.
	Generate      bool
	Device          bool
	Configuration   string
	Destination     string
	DerivedDataPath string
}

// BuildService builds the buildable schemes of a project.
type BuildService struct {
	runner runner
}

// NewBuildService creates a BuildService.
func NewBuildService(deps Deps) *BuildService {
	return &BuildService{runner: runner{deps: deps}}
}

// Run builds the selected schemes.
func (s *BuildService) Run(ctx context.Context, opts BuildOptions) (*Report, error) {
	in := s.runner.deps.Inspector
	return s.runner.run(ctx, action{
		name:      toolchain.ActionBuild,
		kind:      "buildable",
		verb:      "Building",
		success:   "The project built successfully",
		schemes:   in.BuildableSchemes,
		target:    in.BuildableTarget,
		arguments: in.BuildArguments,
		invoke:    s.runner.deps.Controller.Build,
	}, request{
		path:     opts.Path,
		scheme:   opts.Scheme,
		generate: opts.Generate,
		options:  inspector.ArgumentOptions{
			Device:          opts.Device,
			Configuration:   opts.Configuration,
			Destination:     opts.Destination,
			DerivedDataPath: opts.DerivedDataPath,
		},
	})
}
