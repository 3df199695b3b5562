package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/forge/internal/model"
	"github.com/specialistvlad/forge/internal/targetref"
)

func translateProject(file, dir string, b *projectBlock) (*model.Project, error) {
	if strings.TrimSpace(b.Name) == "" {
		return nil, invalid(file, nil, "project name must not be empty")
	}

	p := &model.Project{
		Path:             dir,
		Name:             b.Name,
		OrganizationName: b.OrganizationName,
		XcodeProjPath:    filepath.Join(dir, b.Name+".xcodeproj"),
	}

	seen := make(map[string]struct{}, len(b.Targets))
	for _, tb := range b.Targets {
		if _, dup := seen[tb.Name]; dup {
			return nil, invalid(file, nil, "target %q is declared twice", tb.Name)
		}
		seen[tb.Name] = struct{}{}

		t, err := translateTarget(file, dir, tb)
		if err != nil {
			return nil, err
		}
		p.Targets = append(p.Targets, t)
	}

	for _, sb := range b.Schemes {
		s, err := translateScheme(file, dir, sb)
		if err != nil {
			return nil, err
		}
		p.Schemes = append(p.Schemes, s)
	}
	return p, nil
}

func translateTarget(file, dir string, b *targetBlock) (*model.Target, error) {
	platform, err := model.ParsePlatform(b.Platform)
	if err != nil {
		return nil, invalid(file, err, "target %q", b.Name)
	}
	product, err := model.ParseProduct(b.Product)
	if err != nil {
		return nil, invalid(file, err, "target %q", b.Name)
	}

	t := &model.Target{
		Name:             b.Name,
		Platform:         platform,
		Product:          product,
		ProductName:      b.ProductName,
		BundleID:         b.BundleID,
		DeploymentTarget: b.DeploymentTarget,
		InfoPlist:        anchor(dir, b.InfoPlist),
		Entitlements:     anchor(dir, b.Entitlements),
		Sources:          b.Sources,
		Resources:        b.Resources,
	}
	if t.ProductName == "" {
		t.ProductName = t.Name
	}

	for _, db := range b.Dependencies {
		dep, err := translateDependency(dir, db)
		if err != nil {
			return nil, invalid(file, err, "target %q", b.Name)
		}
		t.Dependencies = append(t.Dependencies, dep)
	}
	return t, nil
}

func translateDependency(dir string, b *dependencyBlock) (model.Dependency, error) {
	kind, err := model.ParseDependencyKind(b.Kind)
	if err != nil {
		return model.Dependency{}, err
	}
	dep := model.Dependency{Kind: kind, Name: b.Name}

	switch kind {
	case model.DependencyProject:
		if b.Path == "" {
			return model.Dependency{}, fmt.Errorf("project dependency %q needs a path", b.Name)
		}
		dep.Path = anchor(dir, b.Path)
	case model.DependencyFramework, model.DependencyLibrary:
		dep.Name = anchor(dir, b.Name)
		switch model.Linking(b.Linking) {
		case "", model.LinkingStatic, model.LinkingDynamic:
			dep.Linking = model.Linking(b.Linking)
		default:
			return model.Dependency{}, fmt.Errorf("unknown linking %q for %s", b.Linking, b.Name)
		}
	case model.DependencySDK:
		switch model.SDKStatus(b.Status) {
		case "":
			dep.Status = model.SDKRequired
		case model.SDKRequired, model.SDKOptional:
			dep.Status = model.SDKStatus(b.Status)
		default:
			return model.Dependency{}, fmt.Errorf("unknown sdk status %q for %s", b.Status, b.Name)
		}
	case model.DependencyTarget:
	}
	return dep, nil
}

func translateScheme(file, dir string, b *schemeBlock) (*model.Scheme, error) {
	build, err := references(dir, b.BuildTargets)
	if err != nil {
		return nil, invalid(file, err, "scheme %q", b.Name)
	}
	test, err := references(dir, b.TestTargets)
	if err != nil {
		return nil, invalid(file, err, "scheme %q", b.Name)
	}

	shared := true
	if b.Shared != nil {
		shared = *b.Shared
	}
	return &model.Scheme{
		Name:        b.Name,
		Shared:      shared,
		BuildAction: &model.BuildAction{Targets: build},
		TestAction:  &model.TestAction{Targets: test},
	}, nil
}

func references(dir string, raw []string) ([]targetref.Reference, error) {
	refs := make([]targetref.Reference, 0, len(raw))
	for _, r := range raw {
		ref, err := targetref.Parse(r)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref.Resolve(dir))
	}
	return refs, nil
}

func translateWorkspace(dir string, b *workspaceBlock) *model.Workspace {
	w := &model.Workspace{Path: dir, Name: b.Name}
	for _, p := range b.Projects {
		w.Projects = append(w.Projects, anchor(dir, p))
	}
	return w
}

func translateConfig(b *generationOptionsBlock) *model.Config {
	if b == nil {
		return &model.Config{}
	}
	return &model.Config{GenerationOptions: model.GenerationOptions{
		XcodeProjectName:            b.XcodeProjectName,
		OrganizationName:            b.OrganizationName,
		DisableAutogeneratedSchemes: b.DisableAutogeneratedSchemes,
	}}
}

// anchor makes a manifest-relative path absolute. Empty stays empty.
func anchor(dir, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}
