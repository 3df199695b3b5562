package mapper

import (
	"context"
	"fmt"

	"github.com/specialistvlad/forge/internal/model"
)

// SideEffectKind discriminates a SideEffect.
type SideEffectKind int

const (
	// SideEffectDelete removes Path recursively.
	SideEffectDelete SideEffectKind = iota + 1
)

// SideEffect is a file system change requested by a mapper.
type SideEffect struct {
	Kind SideEffectKind
	Path string
}

func (s SideEffect) String() string {
	switch s.Kind {
	case SideEffectDelete:
		return "delete " + s.Path
	default:
		return fmt.Sprintf("SideEffectKind(%d) %s", int(s.Kind), s.Path)
	}
}

// ProjectMapper transforms a single project.
type ProjectMapper interface {
	Map(ctx context.Context, p *model.Project) (*model.Project, []SideEffect, error)
}

// Sequential applies its mappers in order, feeding each the output of the
// previous one, and concatenates their side effects.
type Sequential []ProjectMapper

var _ ProjectMapper = Sequential(nil)

// Map implements ProjectMapper.
func (s Sequential) Map(ctx context.Context, p *model.Project) (*model.Project, []SideEffect, error) {
	var effects []SideEffect
	for _, m := range s {
		mapped, se, err := m.Map(ctx, p)
		if err != nil {
			return nil, nil, err
		}
		p = mapped
		effects = append(effects, se...)
	}
	return p, effects, nil
}

// ForConfig returns the mappers that apply under cfg.
func ForConfig(cfg *model.Config) ProjectMapper {
	var mappers Sequential
	if cfg == nil || !cfg.GenerationOptions.DisableAutogeneratedSchemes {
		mappers = append(mappers, AutogeneratedSchemes{})
	}
	mappers = append(mappers, DeleteDerivedDirectory{})
	return mappers
}

// clone returns a shallow copy of p with its own Schemes slice.
func clone(p *model.Project) *model.Project {
	c := *p
	c.Schemes = append([]*model.Scheme(nil), p.Schemes...)
	return &c
}
