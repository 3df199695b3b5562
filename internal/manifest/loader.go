package manifest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/forge/internal/ctxlog"
	"github.com/specialistvlad/forge/internal/fsutil"
	"github.com/specialistvlad/forge/internal/model"
)

// Loader reads manifests from disk.
type Loader struct {
	locator fsutil.Locator
}

// NewLoader creates a Loader that looks files up through locator.
func NewLoader(locator fsutil.Locator) *Loader {
	return &Loader{locator: locator}
}

// HasProject reports whether dir holds a project manifest.
func (l *Loader) HasProject(dir string) bool {
	return l.locator.Exists(filepath.Join(dir, ProjectFile))
}

// HasWorkspace reports whether dir holds a workspace manifest.
func (l *Loader) HasWorkspace(dir string) bool {
	return l.locator.Exists(filepath.Join(dir, WorkspaceFile))
}

// LoadProject reads <dir>/Project.hcl.
func (l *Loader) LoadProject(ctx context.Context, dir string) (*model.Project, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	file := filepath.Join(dir, ProjectFile)

	var root projectRoot
	if err := l.decode(ctx, file, &root); err != nil {
		return nil, err
	}
	if root.Project == nil {
		return nil, invalid(file, nil, "missing project block")
	}
	return translateProject(file, dir, root.Project)
}

// LoadWorkspace reads <dir>/Workspace.hcl.
func (l *Loader) LoadWorkspace(ctx context.Context, dir string) (*model.Workspace, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	file := filepath.Join(dir, WorkspaceFile)

	var root workspaceRoot
	if err := l.decode(ctx, file, &root); err != nil {
		return nil, err
	}
	if root.Workspace == nil {
		return nil, invalid(file, nil, "missing workspace block")
	}
	return translateWorkspace(dir, root.Workspace), nil
}

// LoadConfig reads the Config.hcl that applies to dir. A directory without
// one gets the default configuration.
func (l *Loader) LoadConfig(ctx context.Context, dir string) (*model.Config, error) {
	logger := ctxlog.FromContext(ctx)

	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	file, ok := LocateConfig(l.locator, dir)
	if !ok {
		logger.Debug("No configuration found, using defaults.", "path", dir)
		return &model.Config{}, nil
	}

	var root configRoot
	if err := l.decode(ctx, file, &root); err != nil {
		return nil, err
	}
	return translateConfig(root.GenerationOptions), nil
}

// decode parses file and decodes its body into target.
func (l *Loader) decode(ctx context.Context, file string, target any) error {
	logger := ctxlog.FromContext(ctx)

	if !l.locator.Exists(file) {
		return fmt.Errorf("%w: %s", ErrManifestNotFound, file)
	}
	logger.Debug("Loading manifest.", "file", file)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
	}
	if diags := gohcl.DecodeBody(hclFile.Body, nil, target); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}
	return nil
}

// LocateConfig finds the Config.hcl that applies to dir: <root>/Forge/Config.hcl
// where root is the closest ancestor holding a Forge directory or a .git
// entry, otherwise the closest Config.hcl found walking up.
func LocateConfig(locator fsutil.Locator, dir string) (string, bool) {
	root, ok := fsutil.FindUp(dir, func(d string) bool {
		return locator.Exists(filepath.Join(d, "Forge")) || locator.Exists(filepath.Join(d, ".git"))
	})
	if ok {
		candidate := filepath.Join(root, "Forge", ConfigFile)
		if locator.Exists(candidate) {
			return candidate, true
		}
	}

	found, ok := fsutil.FindUp(dir, func(d string) bool {
		return locator.Exists(filepath.Join(d, ConfigFile))
	})
	if !ok {
		return "", false
	}
	return filepath.Join(found, ConfigFile), true
}
