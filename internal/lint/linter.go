package lint

import (
	"github.com/specialistvlad/forge/internal/fsutil"
	"github.com/specialistvlad/forge/internal/model"
	"github.com/specialistvlad/forge/internal/targetref"
)

// Linter checks a set of loaded projects.
type Linter struct {
	targets *TargetLinter
}

// New creates a Linter.
func New(locator fsutil.Locator) *Linter {
	return &Linter{targets: NewTargetLinter(locator)}
}

// Lint returns the issues of every target and scheme of projects, in
// declaration order.
func (l *Linter) Lint(projects []*model.Project) Issues {
	byPath := make(map[string]*model.Project, len(projects))
	for _, p := range projects {
		byPath[p.Path] = p
	}

	var issues Issues
	for _, p := range projects {
		for _, t := range p.Targets {
			issues = append(issues, l.targets.Lint(t)...)
		}
		issues = append(issues, lintSchemes(p, byPath)...)
	}
	return issues
}

func lintSchemes(p *model.Project, projects map[string]*model.Project) Issues {
	var issues Issues
	names := make(map[string]struct{}, len(p.Schemes))

	for _, s := range p.Schemes {
		if _, dup := names[s.Name]; dup {
			issues = append(issues, failure("The scheme '%s' is declared more than once in the project %s", s.Name, p.Name))
		}
		names[s.Name] = struct{}{}

		var refs []targetref.Reference
		if s.BuildAction != nil {
			refs = append(refs, s.BuildAction.Targets...)
		}
		if s.TestAction != nil {
			refs = append(refs, s.TestAction.Targets...)
		}
		for _, ref := range refs {
			owner, ok := projects[ref.ProjectPath]
			if ok {
				_, ok = owner.Target(ref.Name)
			}
			if !ok {
				issues = append(issues, failure("The target '%s' specified in the scheme '%s' isn't defined in the project at %s", ref.Name, s.Name, ref.ProjectPath))
			}
		}
	}
	return issues
}
