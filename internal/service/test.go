package service

import (
	"context"

	"github.com/specialistvlad/forge/internal/inspector"
	"github.com/specialistvlad/forge/internal/toolchain"
)

// TestOptions are the inputs of the test command.
type TestOptions struct {
	Path string
	// Scheme restricts the run to one scheme. Empty tests every testable scheme.
	Scheme          string
	Configuration   string
	Destination     string
	DerivedDataPath string
}

// TestService runs the testable schemes of a project.
type TestService struct {
	runner runner
}

// NewTestService creates a TestService.
func NewTestService(deps Deps) *TestService {
	return &TestService{runner: runner{deps: deps}}
}

// Run tests the selected schemes. The workspace is generated only when it
// does not exist yet.
func (s *TestService) Run(ctx context.Context, opts TestOptions) (*Report, error) {
	in := s.runner.deps.Inspector
	return s.runner.run(ctx, action{
		name:      toolchain.ActionTest,
		kind:      "testable",
		verb:      "Testing",
		success:   "The project tests ran successfully",
		schemes:   in.TestableSchemes,
		target:    in.TestableTarget,
		arguments: in.TestArguments,
		invoke:    s.runner.deps.Controller.Test,
	}, request{
		path:    opts.Path,
		scheme:  opts.Scheme,
		options: inspector.ArgumentOptions{
			Configuration:   opts.Configuration,
			Destination:     opts.Destination,
			DerivedDataPath: opts.DerivedDataPath,
		},
	})
}
