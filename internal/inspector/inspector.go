package inspector

import (
	"log/slog"
	"sort"

	"github.com/specialistvlad/forge/internal/fsutil"
	"github.com/specialistvlad/forge/internal/graph"
	"github.com/specialistvlad/forge/internal/model"
	"github.com/specialistvlad/forge/internal/targetref"
	"github.com/specialistvlad/forge/internal/toolchain"
)

// WorkspacePattern matches workspace descriptors.
const WorkspacePattern = "*.xcworkspace"

// Inspector is the query façade over a graph used by orchestration.
type Inspector struct {
	locator fsutil.Locator
	logger  *slog.Logger
}

// New creates an Inspector.
func New(locator fsutil.Locator, logger *slog.Logger) *Inspector {
	return &Inspector{locator: locator, logger: logger}
}

// WorkspacePath returns the workspace descriptor in dir. When several exist
// the first in lexical order wins and a warning is logged.
func (i *Inspector) WorkspacePath(dir string) (string, bool) {
	matches, err := i.locator.Glob(dir, WorkspacePattern)
	if err != nil {
		i.logger.Warn("Failed to look up workspace.", "path", dir, "error", err)
		return "", false
	}
	if len(matches) == 0 {
		return "", false
	}
	if len(matches) > 1 {
		i.logger.Warn("Found more than one workspace, using the first one.", "path", dir, "workspaces", matches, "selected", matches[0])
	}
	return matches[0], true
}

// BuildableSchemes returns the schemes of the entry projects whose build
// action lists at least one target, sorted by name.
func (i *Inspector) BuildableSchemes(g *graph.Graph) []*model.Scheme {
	return schemes(g, (*model.Scheme).IsBuildable)
}

// TestableSchemes returns the schemes of the entry projects whose test
// action lists at least one target, sorted by name.
func (i *Inspector) TestableSchemes(g *graph.Graph) []*model.Scheme {
	return schemes(g, (*model.Scheme).IsTestable)
}

type projectScheme struct {
	project string
	scheme  *model.Scheme
}

func schemes(g *graph.Graph, keep func(*model.Scheme) bool) []*model.Scheme {
	var found []projectScheme
	for _, p := range entryProjects(g) {
		for _, s := range p.Schemes {
			if keep(s) {
				found = append(found, projectScheme{project: p.Path, scheme: s})
			}
		}
	}

	sort.SliceStable(found, func(a, b int) bool {
		if found[a].scheme.Name != found[b].scheme.Name {
			return found[a].scheme.Name < found[b].scheme.Name
		}
		return found[a].project < found[b].project
	})

	out := make([]*model.Scheme, len(found))
	for idx, f := range found {
		out[idx] = f.scheme
	}
	return out
}

// entryProjects returns the projects owning an entry node, once each.
func entryProjects(g *graph.Graph) []*model.Project {
	seen := make(map[string]struct{})
	var out []*model.Project

	add := func(p *model.Project) {
		if _, ok := seen[p.Path]; ok {
			return
		}
		seen[p.Path] = struct{}{}
		out = append(out, p)
	}

	for _, n := range g.EntryNodes() {
		switch n.Kind {
		case graph.NodeProject:
			add(n.Project.Project)
		case graph.NodeTarget:
			add(n.Target.Project)
		case graph.NodeExternal:
		}
	}
	return out
}

// BuildableTarget returns the first target of the scheme's build action.
func (i *Inspector) BuildableTarget(s *model.Scheme, g *graph.Graph) (*graph.TargetNode, error) {
	if !s.IsBuildable() {
		return nil, &TargetResolutionError{Scheme: s.Name, Action: "build"}
	}
	return resolve(g, s.Name, "build", s.BuildAction.Targets[0])
}

// TestableTarget returns the first target of the scheme's test action.
func (i *Inspector) TestableTarget(s *model.Scheme, g *graph.Graph) (*graph.TargetNode, error) {
	if !s.IsTestable() {
		return nil, &TargetResolutionError{Scheme: s.Name, Action: "test"}
	}
	return resolve(g, s.Name, "test", s.TestAction.Targets[0])
}

func resolve(g *graph.Graph, scheme, action string, ref targetref.Reference) (*graph.TargetNode, error) {
	t, ok := g.Target(ref.ProjectPath, ref.Name)
	if !ok {
		return nil, &TargetResolutionError{Scheme: scheme, Action: action, Reference: &ref}
	}
	return t, nil
}

// ArgumentOptions tune the toolchain arguments of a target.
type ArgumentOptions struct {
	// Device builds for physical devices instead of the simulator.
	Device        bool
	Configuration string
	// Destination is passed verbatim, e.g. "platform=iOS Simulator,name=iPhone 15".
	Destination     string
	DerivedDataPath string
}

// BuildArguments returns the toolchain arguments to build target.
func (i *Inspector) BuildArguments(target *graph.TargetNode, opts ArgumentOptions) ([]toolchain.Argument, error) {
	platform := target.Target.Platform

	sdk, ok := platform.SimulatorSDK()
	if opts.Device {
		sdk, ok = platform.DeviceSDK()
	}
	if !ok {
		return nil, &UnknownPlatformMappingError{Target: target.Target.Name, Platform: platform}
	}

	args := []toolchain.Argument{toolchain.SDK(sdk)}
	if opts.Configuration != "" {
		args = append(args, toolchain.Configuration(opts.Configuration))
	}
	if opts.Destination != "" {
		args = append(args, toolchain.Destination(opts.Destination))
	}
	if opts.DerivedDataPath != "" {
		args = append(args, toolchain.DerivedDataPath(opts.DerivedDataPath))
	}
	return args, nil
}

// TestArguments returns the toolchain arguments to test target. Tests always
// run against the simulator SDK.
func (i *Inspector) TestArguments(target *graph.TargetNode, opts ArgumentOptions) ([]toolchain.Argument, error) {
	opts.Device = false
	return i.BuildArguments(target, opts)
}
