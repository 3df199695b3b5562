package mapper

import (
	"context"

	"github.com/specialistvlad/forge/internal/ctxlog"
	"github.com/specialistvlad/forge/internal/model"
	"github.com/specialistvlad/forge/internal/targetref"
)

// AutogeneratedSchemes gives a project that declares no scheme one scheme per
// non-test target. The scheme builds the target and tests every test target
// of the project that depends on it.
type AutogeneratedSchemes struct{}

// Map implements ProjectMapper.
func (AutogeneratedSchemes) Map(ctx context.Context, p *model.Project) (*model.Project, []SideEffect, error) {
	if len(p.Schemes) > 0 {
		return p, nil, nil
	}

	out := clone(p)
	for _, t := range p.Targets {
		if t.Product.IsTests() {
			continue
		}

		scheme := &model.Scheme{
			Name:        t.Name,
			Shared:      true,
			BuildAction: &model.BuildAction{Targets: []targetref.Reference{targetref.New(p.Path, t.Name)}},
			TestAction:  &model.TestAction{},
		}
		for _, candidate := range p.Targets {
			if candidate.Product.IsTests() && dependsOn(candidate, t.Name) {
				scheme.TestAction.Targets = append(scheme.TestAction.Targets, targetref.New(p.Path, candidate.Name))
			}
		}
		out.Schemes = append(out.Schemes, scheme)
	}

	ctxlog.FromContext(ctx).Debug("Generated schemes.", "project", p.Name, "count", len(out.Schemes))
	return out, nil, nil
}

func dependsOn(t *model.Target, name string) bool {
	for _, d := range t.Dependencies {
		if d.Kind == model.DependencyTarget && d.Name == name {
			return true
		}
	}
	return false
}
