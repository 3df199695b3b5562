package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/specialistvlad/forge/internal/lint"
	"github.com/specialistvlad/forge/internal/service"
	"github.com/specialistvlad/forge/internal/targetref"
	"github.com/specialistvlad/forge/internal/traverser"
)

// BuildRequest are the build command inputs that are not App configuration.
type BuildRequest struct {
	Scheme          string
	Generate        bool
	Device          bool
	Configuration   string
	Destination     string
	DerivedDataPath string
}

// Build builds the buildable schemes of the configured path.
func (a *App) Build(ctx context.Context, req BuildRequest) (*service.Report, error) {
	return service.NewBuildService(a.deps()).Run(a.context(ctx), service.BuildOptions{
		Path:            a.config.Path,
		Scheme:          req.Scheme,
		Generate:        req.Generate,
		Device:          req.Device,
		Configuration:   req.Configuration,
		Destination:     req.Destination,
		DerivedDataPath: req.DerivedDataPath,
	})
}

// TestRequest are the test command inputs that are not App configuration.
type TestRequest struct {
	Scheme          string
	Configuration   string
	Destination     string
	DerivedDataPath string
}

// Test runs the testable schemes of the configured path.
func (a *App) Test(ctx context.Context, req TestRequest) (*service.Report, error) {
	return service.NewTestService(a.deps()).Run(a.context(ctx), service.TestOptions{
		Path:            a.config.Path,
		Scheme:          req.Scheme,
		Configuration:   req.Configuration,
		Destination:     req.Destination,
		DerivedDataPath: req.DerivedDataPath,
	})
}

// Lint loads the manifests of the configured path, logs their issues and
// fails when any of them is an error.
func (a *App) Lint(ctx context.Context) (lint.Issues, error) {
	ctx = a.context(ctx)
	issues, err := a.generator.Lint(ctx, a.config.Path)
	if err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		a.logger.Info("No linting issues found", "success", true)
		return issues, nil
	}
	return issues, issues.Report(ctx)
}

// Dependencies is the linkage report of one target.
type Dependencies struct {
	Target     targetref.Reference
	Static     []traverser.DependencyReference
	Linkable   []traverser.DependencyReference
	Embeddable []traverser.DependencyReference
}

// Dependencies loads the graph of the configured path and reports the
// linkage of the target raw refers to. A reference without a project path
// names a target of the configured path.
func (a *App) Dependencies(ctx context.Context, raw string) (*Dependencies, error) {
	ref, err := targetref.Parse(raw)
	if err != nil {
		return nil, err
	}
	ref = ref.Resolve(a.config.Path)

	g, err := a.generator.Load(a.context(ctx), a.config.Path)
	if err != nil {
		return nil, err
	}
	tr := traverser.New(g)

	out := &Dependencies{Target: ref}
	if out.Static, err = tr.StaticDependencies(ref.ProjectPath, ref.Name); err != nil {
		return nil, err
	}
	if out.Linkable, err = tr.LinkableDependencies(ref.ProjectPath, ref.Name); err != nil {
		return nil, err
	}
	if out.Embeddable, err = tr.EmbeddableFrameworks(ref.ProjectPath, ref.Name); err != nil {
		return nil, err
	}
	return out, nil
}

// Print writes the report in a human-readable form, with paths relative to base.
func (d *Dependencies) Print(w io.Writer, base string) {
	name := d.Target.Name
	if rel, err := filepath.Rel(base, d.Target.ProjectPath); err == nil && rel != "." {
		name = rel + ":" + name
	}

	section := func(title string, refs []traverser.DependencyReference) {
		fmt.Fprintf(w, "%s of %s:\n", title, name)
		if len(refs) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for _, r := range refs {
			fmt.Fprintf(w, "  %s\n", r)
		}
	}
	section("Static dependencies", d.Static)
	section("Linkable dependencies", d.Linkable)
	section("Embeddable frameworks", d.Embeddable)
}
