package generator

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/forge/internal/ctxlog"
	"github.com/specialistvlad/forge/internal/graph"
	"github.com/specialistvlad/forge/internal/lint"
	"github.com/specialistvlad/forge/internal/mapper"
)

// Generator loads graphs and writes the files the toolchain needs.
type Generator struct {
	loader *GraphLoader
	linter *lint.Linter
}

// New creates a Generator.
func New(loader *GraphLoader, linter *lint.Linter) *Generator {
	return &Generator{loader: loader, linter: linter}
}

// Load builds the graph for path without writing anything.
func (g *Generator) Load(ctx context.Context, path string) (*graph.Graph, error) {
	_, gr, err := g.load(ctx, path)
	return gr, err
}

// Generate builds the graph for path, applies mapper side effects and
// writes the workspace descriptor. It returns the descriptor path.
func (g *Generator) Generate(ctx context.Context, path string) (string, *graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	loaded, gr, err := g.load(ctx, path)
	if err != nil {
		return "", nil, err
	}

	for _, se := range loaded.SideEffects {
		if err := apply(se); err != nil {
			return "", nil, err
		}
		logger.Debug("Applied side effect.", "effect", se.String())
	}

	workspace, err := writeDescriptor(loaded.Path, gr.Name(), loaded.Projects)
	if err != nil {
		return "", nil, err
	}
	logger.Info("Project generated.", "success", true, "workspace", workspace)
	return workspace, gr, nil
}

// Lint loads the manifests at path and returns their issues without
// building a graph.
func (g *Generator) Lint(ctx context.Context, path string) (lint.Issues, error) {
	loaded, err := g.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return g.linter.Lint(loaded.Projects), nil
}

func (g *Generator) load(ctx context.Context, path string) (*Loaded, *graph.Graph, error) {
	loaded, err := g.loader.Load(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	if err := g.linter.Lint(loaded.Projects).Report(ctx); err != nil {
		return nil, nil, err
	}

	gr, err := graph.New(graph.Input{
		Path:      loaded.Path,
		Workspace: loaded.Workspace,
		Projects:  loaded.Projects,
	})
	if err != nil {
		return nil, nil, err
	}
	return loaded, gr, nil
}

func apply(se mapper.SideEffect) error {
	switch se.Kind {
	case mapper.SideEffectDelete:
		if err := os.RemoveAll(se.Path); err != nil {
			return fmt.Errorf("failed to %s: %w", se, err)
		}
	default:
		return fmt.Errorf("unknown side effect %s", se)
	}
	return nil
}
