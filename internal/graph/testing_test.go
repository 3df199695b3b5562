package graph

import (
	"github.com/specialistvlad/forge/internal/model"
)

func target(name string, product model.Product, deps ...model.Dependency) *model.Target {
	return &model.Target{
		Name:         name,
		Platform:     model.PlatformIOS,
		Product:      product,
		Sources:      []string{"Sources/" + name + "/**"},
		Dependencies: deps,
	}
}

func onTarget(name string) model.Dependency {
	return model.Dependency{Kind: model.DependencyTarget, Name: name}
}

func project(path, name string, targets ...*model.Target) *model.Project {
	return &model.Project{Path: path, Name: name, Targets: targets}
}
