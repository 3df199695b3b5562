package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/forge/internal/ctxlog"
	"github.com/specialistvlad/forge/internal/manifest"
	"github.com/specialistvlad/forge/internal/mapper"
	"github.com/specialistvlad/forge/internal/model"
)

// Loaded is everything GraphLoader read for one path.
type Loaded struct {
	Path      string
	Config    *model.Config
	Workspace *model.Workspace
	// Projects holds every loaded project, entry projects first, in
	// discovery order.
	Projects    []*model.Project
	SideEffects []mapper.SideEffect
}

// GraphLoader loads the manifests reachable from a path.
type GraphLoader struct {
	manifests *manifest.Loader
}

// NewGraphLoader creates a GraphLoader reading through manifests.
func NewGraphLoader(manifests *manifest.Loader) *GraphLoader {
	return &GraphLoader{manifests: manifests}
}

// Load reads the workspace at path, or the project at path when there is no
// workspace, then every project they depend on.
func (l *GraphLoader) Load(ctx context.Context, path string) (*Loaded, error) {
	logger := ctxlog.FromContext(ctx)

	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	cfg, err := l.manifests.LoadConfig(ctx, path)
	if err != nil {
		return nil, err
	}
	out := &Loaded{Path: path, Config: cfg}

	var queue []string
	switch {
	case l.manifests.HasWorkspace(path):
		ws, err := l.manifests.LoadWorkspace(ctx, path)
		if err != nil {
			return nil, err
		}
		out.Workspace = ws
		queue = append(queue, ws.Projects...)
	case l.manifests.HasProject(path):
		queue = append(queue, path)
	default:
		return nil, fmt.Errorf("%w: no %s or %s in %s", manifest.ErrManifestNotFound, manifest.WorkspaceFile, manifest.ProjectFile, path)
	}

	projectMapper := mapper.ForConfig(cfg)
	seen := make(map[string]struct{})
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}

		p, err := l.manifests.LoadProject(ctx, dir)
		if err != nil {
			return nil, err
		}
		if p, err = applyConfig(p, cfg); err != nil {
			return nil, err
		}
		p, effects, err := projectMapper.Map(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to map project %s: %w", dir, err)
		}

		out.Projects = append(out.Projects, p)
		out.SideEffects = append(out.SideEffects, effects...)
		queue = append(queue, projectDependencies(p)...)
	}

	logger.Debug("Manifests loaded.", "path", path, "projects", len(out.Projects))
	return out, nil
}

// applyConfig returns a copy of p with the generation options applied.
func applyConfig(p *model.Project, cfg *model.Config) (*model.Project, error) {
	name, err := manifest.XcodeProjectName(cfg, p.Name)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", p.Name, err)
	}

	c := *p
	c.XcodeProjPath = filepath.Join(p.Path, name+".xcodeproj")
	if c.OrganizationName == "" {
		c.OrganizationName = cfg.GenerationOptions.OrganizationName
	}
	return &c, nil
}

func projectDependencies(p *model.Project) []string {
	var dirs []string
	for _, t := range p.Targets {
		for _, d := range t.Dependencies {
			if d.Kind == model.DependencyProject {
				dirs = append(dirs, d.Path)
			}
		}
	}
	return dirs
}
