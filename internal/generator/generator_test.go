package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/forge/internal/fsutil"
	"github.com/specialistvlad/forge/internal/graph"
	"github.com/specialistvlad/forge/internal/lint"
	"github.com/specialistvlad/forge/internal/manifest"
	"github.com/specialistvlad/forge/internal/testutil"
)

const appManifest = `
project "App" {
  target "App" {
    platform  = "ios"
    product   = "app"
    bundle_id = "io.forge.App"
    sources   = ["Sources/**"]

    dependency "project" "Core" { path = "../Core" }
  }

  target "AppTests" {
    platform = "ios"
    product  = "unit_tests"
    sources  = ["Tests/**"]

    dependency "target" "App" {}
  }
}
`

const coreManifest = `
project "Core" {
  target "Core" {
    platform = "ios"
    product  = "framework"
    sources  = ["Sources/**"]
  }
}
`

func newGenerator() *Generator {
	return New(NewGraphLoader(manifest.NewLoader(fsutil.OS{})), lint.New(fsutil.OS{}))
}

func TestGraphLoader_FollowsProjectDependencies(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"App/Project.hcl":  appManifest,
		"Core/Project.hcl": coreManifest,
		"Config.hcl":       `generation_options { xcode_project_name = "${project_name}-Gen" }`,
	})

	loaded, err := NewGraphLoader(manifest.NewLoader(fsutil.OS{})).Load(context.Background(), filepath.Join(root, "App"))
	require.NoError(t, err)

	require.Len(t, loaded.Projects, 2)
	assert.Equal(t, "App", loaded.Projects[0].Name)
	assert.Equal(t, "Core", loaded.Projects[1].Name)
	assert.Equal(t, filepath.Join(root, "App", "App-Gen.xcodeproj"), loaded.Projects[0].XcodeProjPath)
	assert.Nil(t, loaded.Workspace)

	require.Len(t, loaded.Projects[0].Schemes, 1, "AppTests gets no scheme of its own")
	assert.Equal(t, "App", loaded.Projects[0].Schemes[0].Name)
	assert.Len(t, loaded.SideEffects, 2)
}

func TestGenerator_Load(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"App/Project.hcl":  appManifest,
		"Core/Project.hcl": coreManifest,
	})
	dir := filepath.Join(root, "App")

	g, err := newGenerator().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "App", g.Name())

	_, ok := g.Target(filepath.Join(root, "Core"), "Core")
	assert.True(t, ok)

	matches, err := filepath.Glob(filepath.Join(dir, "*"+WorkspaceExtension))
	require.NoError(t, err)
	assert.Empty(t, matches, "loading writes nothing")
}

func TestGenerator_Generate(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"Workspace.hcl":            `workspace "Acme" { projects = ["App"] }`,
		"App/Project.hcl":          appManifest,
		"App/Derived/InfoPlists/x": "stale",
		"Core/Project.hcl":         coreManifest,
	})

	path, g, err := newGenerator().Generate(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Acme.xcworkspace"), path)
	assert.Equal(t, "Acme", g.Name())

	contents, err := os.ReadFile(filepath.Join(path, "contents.xcworkspacedata"))
	require.NoError(t, err)
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>
<Workspace version="1.0">
   <FileRef location="group:App/App.xcodeproj"></FileRef>
   <FileRef location="group:Core/Core.xcodeproj"></FileRef>
</Workspace>
`, string(contents))

	_, err = os.Stat(filepath.Join(root, "App", "Derived"))
	assert.True(t, os.IsNotExist(err), "derived directory is cleaned")
}

func TestGenerator_Errors(t *testing.T) {
	t.Run("no manifest", func(t *testing.T) {
		_, err := newGenerator().Load(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, manifest.ErrManifestNotFound)
	})

	t.Run("lint errors abort", func(t *testing.T) {
		root := testutil.WriteFiles(t, map[string]string{
			"Project.hcl": `
project "App" {
  target "My-App" {
    platform = "ios"
    product  = "app"
    sources  = ["Sources/**"]
  }
}`,
		})
		_, err := newGenerator().Load(context.Background(), root)
		var lintErr *lint.Error
		require.True(t, errors.As(err, &lintErr))
		assert.Contains(t, err.Error(), "Invalid product name 'My-App'")
	})

	t.Run("cycles abort", func(t *testing.T) {
		root := testutil.WriteFiles(t, map[string]string{
			"Project.hcl": `
project "App" {
  target "A" {
    platform = "ios"
    product  = "framework"
    sources  = ["A/**"]
    dependency "target" "B" {}
  }
  target "B" {
    platform = "ios"
    product  = "framework"
    sources  = ["B/**"]
    dependency "target" "A" {}
  }
}`,
		})
		_, err := newGenerator().Load(context.Background(), root)
		assert.ErrorIs(t, err, graph.ErrCycleDetected)
	})
}

func TestGenerator_Lint(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"Project.hcl": `
project "App" {
  target "App" {
    platform = "ios"
    product  = "app"
  }
}`,
	})

	issues, err := newGenerator().Lint(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, lint.Issues{{Reason: "The target App doesn't contain source files.", Severity: lint.SeverityWarning}}, issues)
}
