package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/forge/internal/fsutil"
	"github.com/specialistvlad/forge/internal/graph"
	"github.com/specialistvlad/forge/internal/inspector"
	"github.com/specialistvlad/forge/internal/model"
	"github.com/specialistvlad/forge/internal/targetref"
	"github.com/specialistvlad/forge/internal/testutil"
	"github.com/specialistvlad/forge/internal/toolchain"
)

type fakeGraphs struct {
	graph     *graph.Graph
	workspace string
	err       error
	loads     int
	generates int
}

func (f *fakeGraphs) Load(context.Context, string) (*graph.Graph, error) {
	f.loads++
	return f.graph, f.err
}

func (f *fakeGraphs) Generate(context.Context, string) (string, *graph.Graph, error) {
	f.generates++
	return f.workspace, f.graph, f.err
}

type fixture struct {
	dir        string
	graphs     *fakeGraphs
	controller *testutil.RecordingController
	logs       *testutil.SafeBuffer
	registry   *prometheus.Registry
	deps       Deps
}

// newFixture builds a single-project graph rooted at a temporary directory
// holding files. Scheme references are anchored to that directory.
func newFixture(t *testing.T, files map[string]string, schemes ...*model.Scheme) *fixture {
	t.Helper()

	if files == nil {
		files = map[string]string{}
	}
	files["Project.hcl"] = ""
	dir := testutil.WriteFiles(t, files)

	p := &model.Project{
		Path: dir,
		Name: "App",
		Targets: []*model.Target{
			{Name: "App", Platform: model.PlatformIOS, Product: model.ProductApp},
			{Name: "AppTests", Platform: model.PlatformIOS, Product: model.ProductUnitTests,
				Dependencies: []model.Dependency{{Kind: model.DependencyTarget, Name: "App"}}},
			{Name: "Lib", Platform: model.PlatformMacOS, Product: model.ProductFramework},
			{Name: "Odd", Platform: model.Platform("dos"), Product: model.ProductApp},
		},
		Schemes: schemes,
	}
	for _, s := range schemes {
		for i := range s.BuildAction.Targets {
			s.BuildAction.Targets[i] = s.BuildAction.Targets[i].Resolve(dir)
		}
		for i := range s.TestAction.Targets {
			s.TestAction.Targets[i] = s.TestAction.Targets[i].Resolve(dir)
		}
	}
	g, err := graph.New(graph.Input{Path: dir, Projects: []*model.Project{p}})
	require.NoError(t, err)

	f := &fixture{
		dir:        dir,
		graphs:     &fakeGraphs{graph: g, workspace: filepath.Join(dir, "App.xcworkspace")},
		controller: testutil.NewRecordingController(),
		logs:       &testutil.SafeBuffer{},
		registry:   prometheus.NewRegistry(),
	}
	logger := slog.New(slog.NewTextHandler(f.logs, nil))
	f.deps = Deps{
		Graphs:     f.graphs,
		Inspector:  inspector.New(fsutil.OS{}, logger),
		Controller: f.controller,
		Metrics:    NewMetrics(f.registry),
		Logger:     logger,
		Output:     io.Discard,
	}
	return f
}

func scheme(name, build, test string) *model.Scheme {
	s := &model.Scheme{Name: name, BuildAction: &model.BuildAction{}, TestAction: &model.TestAction{}}
	if build != "" {
		s.BuildAction.Targets = []targetref.Reference{{Name: build}}
	}
	if test != "" {
		s.TestAction.Targets = []targetref.Reference{{Name: test}}
	}
	return s
}

func cleans(calls []testutil.Call) []bool {
	out := make([]bool, len(calls))
	for i, c := range calls {
		out[i] = c.Invocation.Clean
	}
	return out
}

func TestBuildService_BuildsEverySchemeInNameOrder(t *testing.T) {
	f := newFixture(t, nil,
		scheme("Lib", "Lib", ""),
		scheme("App", "App", ""),
		scheme("AppTests", "App", "AppTests"),
	)

	report, err := NewBuildService(f.deps).Run(context.Background(), BuildOptions{Path: f.dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"App", "AppTests", "Lib"}, f.controller.Schemes())
	assert.Equal(t, []bool{true, false, false}, cleans(f.controller.Calls()))
	assert.Equal(t, PhaseDone, report.Phase)
	assert.Equal(t, []string{"App", "AppTests", "Lib"}, report.Completed)

	calls := f.controller.Calls()
	assert.Equal(t, toolchain.ActionBuild, calls[0].Action)
	assert.Equal(t, []toolchain.Argument{toolchain.SDK("iphonesimulator")}, calls[0].Invocation.Arguments)
	assert.Equal(t, []toolchain.Argument{toolchain.SDK("macosx")}, calls[2].Invocation.Arguments)
	assert.Equal(t, filepath.Join(f.dir, "App.xcworkspace"), calls[0].Invocation.Workspace)

	logs := f.logs.String()
	assert.Contains(t, logs, `msg="Found the following schemes." action=buildable schemes="[App AppTests Lib]"`)
	assert.Contains(t, logs, `msg="Building scheme." scheme=App section=true`)
	assert.Contains(t, logs, `msg="The project built successfully" success=true`)
}

func TestBuildService_GenerateOrLoad(t *testing.T) {
	t.Run("generates when no workspace exists", func(t *testing.T) {
		f := newFixture(t, nil, scheme("App", "App", ""))
		_, err := NewBuildService(f.deps).Run(context.Background(), BuildOptions{Path: f.dir})
		require.NoError(t, err)
		assert.Equal(t, 1, f.graphs.generates)
		assert.Equal(t, 0, f.graphs.loads)
	})

	t.Run("loads when a workspace exists", func(t *testing.T) {
		f := newFixture(t, map[string]string{"Existing.xcworkspace/": ""}, scheme("App", "App", ""))
		_, err := NewBuildService(f.deps).Run(context.Background(), BuildOptions{Path: f.dir})
		require.NoError(t, err)
		assert.Equal(t, 0, f.graphs.generates)
		assert.Equal(t, 1, f.graphs.loads)
		assert.Equal(t, filepath.Join(f.dir, "Existing.xcworkspace"), f.controller.Calls()[0].Invocation.Workspace)
	})

	t.Run("generates when forced", func(t *testing.T) {
		f := newFixture(t, map[string]string{"Existing.xcworkspace/": ""}, scheme("App", "App", ""))
		_, err := NewBuildService(f.deps).Run(context.Background(), BuildOptions{Path: f.dir, Generate: true})
		require.NoError(t, err)
		assert.Equal(t, 1, f.graphs.generates)
		assert.Equal(t, 0, f.graphs.loads)
	})

	t.Run("loading errors stop before any invocation", func(t *testing.T) {
		f := newFixture(t, nil, scheme("App", "App", ""))
		f.graphs.err = errors.New("broken manifest")
		report, err := NewBuildService(f.deps).Run(context.Background(), BuildOptions{Path: f.dir})
		assert.EqualError(t, err, "broken manifest")
		assert.Equal(t, PhaseFailed, report.Phase)
		assert.Empty(t, f.controller.Calls())
	})
}

func TestBuildService_SchemeSelection(t *testing.T) {
	t.Run("named scheme", func(t *testing.T) {
		f := newFixture(t, nil, scheme("App", "App", ""), scheme("Lib", "Lib", ""))
		_, err := NewBuildService(f.deps).Run(context.Background(), BuildOptions{Path: f.dir, Scheme: "Lib"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Lib"}, f.controller.Schemes())
		assert.Equal(t, []bool{true}, cleans(f.controller.Calls()))
	})

	t.Run("unknown scheme", func(t *testing.T) {
		f := newFixture(t, nil, scheme("Lib", "Lib", ""), scheme("App", "App", ""))
		_, err := NewBuildService(f.deps).Run(context.Background(), BuildOptions{Path: f.dir, Scheme: "Missing"})

		notFound, ok := AsSchemeNotFoundError(err)
		require.True(t, ok)
		assert.Equal(t, "Missing", notFound.Scheme)
		assert.Equal(t, []string{"App", "Lib"}, notFound.Existing)
		assert.EqualError(t, err, "Couldn't find scheme Missing. The available schemes are: App, Lib")
		assert.Empty(t, f.controller.Calls())
	})

	t.Run("no buildable schemes", func(t *testing.T) {
		f := newFixture(t, nil, scheme("Empty", "", ""))
		_, err := NewBuildService(f.deps).Run(context.Background(), BuildOptions{Path: f.dir})
		assert.ErrorIs(t, err, ErrNoSchemes)
	})
}

func TestBuildService_AbortsOnFirstFailure(t *testing.T) {
	f := newFixture(t, nil,
		scheme("App", "App", ""),
		scheme("AppTests", "App", "AppTests"),
		scheme("Lib", "Lib", ""),
	)
	boom := &toolchain.InvocationError{Action: toolchain.ActionBuild, Scheme: "AppTests", ExitCode: 65}
	f.controller.FailScheme("AppTests", boom)

	report, err := NewBuildService(f.deps).Run(context.Background(), BuildOptions{Path: f.dir})
	require.Error(t, err)

	invErr, ok := AsToolchainInvocationError(err)
	require.True(t, ok)
	assert.Equal(t, "AppTests", invErr.Scheme)
	assert.Equal(t, []string{"App"}, invErr.Completed)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"App", "AppTests"}, f.controller.Schemes())
	assert.Equal(t, PhaseFailed, report.Phase)
	assert.Equal(t, "AppTests", report.Failed)
	assert.Equal(t, []string{"App"}, report.Completed)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.deps.Metrics.invocations.WithLabelValues("build", "success")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.deps.Metrics.invocations.WithLabelValues("build", "failure")))
}

func TestBuildService_ResolvesEverythingBeforeInvoking(t *testing.T) {
	f := newFixture(t, nil, scheme("App", "App", ""), scheme("Odd", "Odd", ""))

	_, err := NewBuildService(f.deps).Run(context.Background(), BuildOptions{Path: f.dir})
	_, ok := inspector.AsUnknownPlatformMappingError(err)
	require.True(t, ok, "got %v", err)
	assert.Empty(t, f.controller.Calls())
}

func TestBuildService_Cancelled(t *testing.T) {
	f := newFixture(t, nil, scheme("App", "App", ""))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewBuildService(f.deps).Run(ctx, BuildOptions{Path: f.dir})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, PhaseFailed, report.Phase)
	assert.Empty(t, f.controller.Calls())
}

func TestTestService(t *testing.T) {
	f := newFixture(t, nil,
		scheme("App", "App", ""),
		scheme("AppTests", "App", "AppTests"),
	)

	report, err := NewTestService(f.deps).Run(context.Background(), TestOptions{Path: f.dir, Configuration: "Debug"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AppTests"}, report.Selected)

	calls := f.controller.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, toolchain.ActionTest, calls[0].Action)
	assert.True(t, calls[0].Invocation.Clean)
	assert.Equal(t, []toolchain.Argument{toolchain.SDK("iphonesimulator"), toolchain.Configuration("Debug")}, calls[0].Invocation.Arguments)
	assert.Contains(t, f.logs.String(), `msg="The project tests ran successfully" success=true`)

	_, err = NewTestService(f.deps).Run(context.Background(), TestOptions{Path: f.dir, Scheme: "App"})
	notFound, ok := AsSchemeNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"AppTests"}, notFound.Existing)
}

func TestSession_CleanLatch(t *testing.T) {
	s := &session{}
	assert.True(t, s.clean())
	assert.False(t, s.clean())
	assert.False(t, s.clean())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "scheme_selection", PhaseSchemeSelection.String())
	assert.Equal(t, "Phase(42)", Phase(42).String())
}
