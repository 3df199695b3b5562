package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/specialistvlad/forge/internal/ctxlog"
	"github.com/specialistvlad/forge/internal/graph"
	"github.com/specialistvlad/forge/internal/inspector"
	"github.com/specialistvlad/forge/internal/model"
	"github.com/specialistvlad/forge/internal/toolchain"
)

// GraphProvider loads or generates the graph of a directory.
type GraphProvider interface {
	Load(ctx context.Context, path string) (*graph.Graph, error)
	Generate(ctx context.Context, path string) (string, *graph.Graph, error)
}

// Deps are the collaborators shared by the services. Metrics may be nil.
type Deps struct {
	Graphs     GraphProvider
	Inspector  *inspector.Inspector
	Controller toolchain.Controller
	Metrics    *Metrics
	Logger     *slog.Logger
	// Output receives the toolchain output.
	Output io.Writer
}

// action describes what differs between building and testing.
type action struct {
	name      toolchain.Action
	kind      string
	verb      string
	success   string
	schemes   func(*graph.Graph) []*model.Scheme
	target    func(*model.Scheme, *graph.Graph) (*graph.TargetNode, error)
	arguments func(*graph.TargetNode, inspector.ArgumentOptions) ([]toolchain.Argument, error)
	invoke    func(context.Context, toolchain.Invocation, io.Writer) error
}

type request struct {
	path     string
	scheme   string
	generate bool
	options  inspector.ArgumentOptions
}

type plannedScheme struct {
	name      string
	arguments []toolchain.Argument
}

type runner struct {
	deps Deps
}

func (r *runner) run(ctx context.Context, a action, req request) (*Report, error) {
	logger := r.deps.Logger
	ctx = ctxlog.WithLogger(ctx, logger)

	s := &session{}
	report := &Report{}
	fail := func(err error) (*Report, error) {
		s.phase = PhaseFailed
		report.Phase = s.phase
		report.Completed = s.completed
		return report, err
	}

	path, err := filepath.Abs(req.path)
	if err != nil {
		return fail(err)
	}

	g, workspace, err := r.graph(ctx, s, path, req.generate)
	if err != nil {
		return fail(err)
	}
	report.Workspace = workspace

	s.phase = PhaseSchemeSelection
	available := a.schemes(g)
	logger.Info("Found the following schemes.", "action", a.kind, "schemes", schemeNames(available))

	selected, err := selectSchemes(available, req.scheme)
	if err != nil {
		return fail(err)
	}
	plan, err := r.plan(a, g, selected, req.options)
	if err != nil {
		return fail(err)
	}
	report.Selected = schemeNames(selected)

	s.phase = PhaseInvoking
	for _, p := range plan {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		logger.Info(a.verb+" scheme.", "scheme", p.name, "section", true)
		inv := toolchain.Invocation{
			Workspace: workspace,
			Scheme:    p.name,
			Clean:     s.clean(),
			Arguments: p.arguments,
		}

		start := time.Now()
		err := a.invoke(ctx, inv, r.deps.Output)
		r.deps.Metrics.observe(a.name, err, time.Since(start))
		if err != nil {
			report.Failed = p.name
			if len(s.completed) > 0 {
				logger.Info("Schemes completed before the failure.", "schemes", s.completed)
			}
			return fail(&ToolchainInvocationError{
				Action:    a.name,
				Scheme:    p.name,
				Completed: append([]string(nil), s.completed...),
				Err:       err,
			})
		}
		s.completed = append(s.completed, p.name)
	}

	s.phase = PhaseDone
	report.Phase = s.phase
	report.Completed = s.completed
	logger.Info(a.success, "success", true)
	return report, nil
}

// graph generates the workspace when forced or when none exists yet, and
// loads it otherwise.
func (r *runner) graph(ctx context.Context, s *session, path string, generate bool) (*graph.Graph, string, error) {
	workspace, exists := r.deps.Inspector.WorkspacePath(path)
	if generate || !exists {
		s.phase = PhaseGenerating
		r.deps.Logger.Info("Generating workspace.", "path", path)
		workspace, g, err := r.deps.Graphs.Generate(ctx, path)
		if err != nil {
			return nil, "", err
		}
		return g, workspace, nil
	}

	s.phase = PhaseLoading
	r.deps.Logger.Debug("Loading graph.", "path", path, "workspace", workspace)
	g, err := r.deps.Graphs.Load(ctx, path)
	if err != nil {
		return nil, "", err
	}
	return g, workspace, nil
}

// plan resolves the target and arguments of every selected scheme so that
// nothing graph-related can fail once the toolchain starts.
func (r *runner) plan(a action, g *graph.Graph, schemes []*model.Scheme, opts inspector.ArgumentOptions) ([]plannedScheme, error) {
	plan := make([]plannedScheme, 0, len(schemes))
	for _, s := range schemes {
		target, err := a.target(s, g)
		if err != nil {
			return nil, err
		}
		args, err := a.arguments(target, opts)
		if err != nil {
			return nil, err
		}
		plan = append(plan, plannedScheme{name: s.Name, arguments: args})
	}
	return plan, nil
}

// selectSchemes returns the scheme called name, or every scheme when name is empty.
func selectSchemes(available []*model.Scheme, name string) ([]*model.Scheme, error) {
	if name == "" {
		if len(available) == 0 {
			return nil, ErrNoSchemes
		}
		return available, nil
	}
	for _, s := range available {
		if s.Name == name {
			return []*model.Scheme{s}, nil
		}
	}
	return nil, &SchemeNotFoundError{Scheme: name, Existing: schemeNames(available)}
}

func schemeNames(schemes []*model.Scheme) []string {
	names := make([]string, len(schemes))
	for i, s := range schemes {
		names[i] = s.Name
	}
	return names
}
