package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/forge/internal/app"
	"github.com/specialistvlad/forge/internal/testutil"
	"github.com/specialistvlad/forge/internal/toolchain"
)

const project = `
project "App" {
  target "App" {
    platform = "ios"
    product  = "app"
    sources  = ["Sources/**"]

    dependency "target" "Kit" {}
  }

  target "Kit" {
    platform = "ios"
    product  = "framework"
    sources  = ["Kit/**"]
  }
}
`

func execute(t *testing.T, args ...string) (*testutil.RecordingController, *testutil.SafeBuffer, error) {
	t.Helper()
	controller := testutil.NewRecordingController()
	var out testutil.SafeBuffer
	err := Execute(context.Background(), &out, args, app.WithController(controller))
	return controller, &out, err
}

func TestExecute_Build(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"Project.hcl": project})

	controller, out, err := execute(t, "build", "Kit", "--path", dir, "--log-format", "logfmt",
		"--configuration", "Release", "--destination", "generic/platform=iOS", "--derived-data-path", "/tmp/dd")
	require.NoError(t, err, out.String())

	calls := controller.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Kit", calls[0].Invocation.Scheme)
	assert.True(t, calls[0].Invocation.Clean)
	assert.Equal(t, []string{
		"-workspace", filepath.Join(dir, "App.xcworkspace"), "-scheme", "Kit", "clean", "build",
		"-sdk", "iphonesimulator",
		"-configuration", "Release",
		"-destination", "generic/platform=iOS",
		"-derivedDataPath", "/tmp/dd",
	}, calls[0].Invocation.Args(toolchain.ActionBuild))
}

func TestExecute_Test(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"Project.hcl": project})

	_, out, err := execute(t, "test", "Missing", "--path", dir, "--log-format", "logfmt")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, "Couldn't find scheme Missing", out.String())
}

func TestExecute_Deps(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"Project.hcl": project})

	_, out, err := execute(t, "deps", "App", "--path", dir, "--log-format", "logfmt")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Static dependencies of App:")
	assert.Contains(t, out.String(), "Embeddable frameworks of App:")
}

func TestExecute_DepsRelativePath(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"App/Project.hcl": `
project "App" {
  target "App" {
    platform = "ios"
    product  = "app"
    sources  = ["Sources/**"]

    dependency "project" "Core" { path = "../Core" }
  }
}
`,
		"Core/Project.hcl": `
project "Core" {
  target "Core" {
    platform = "ios"
    product  = "framework"
    sources  = ["Sources/**"]
  }
}
`,
	})
	cwd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(cwd, filepath.Join(root, "App"))
	require.NoError(t, err)

	_, out, err := execute(t, "deps", "../Core:Core", "--path", rel, "--log-format", "logfmt")
	require.NoError(t, err, out.String())
	assert.Contains(t, out.String(), "Static dependencies of ../Core:Core:\n")
}

func TestExecute_Lint(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"Project.hcl": project})

	_, out, err := execute(t, "lint", "--path", dir, "--log-format", "logfmt")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No linting issues found")
}

func TestExecute_UsageErrors(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"build", "--nope"}},
		{name: "too many args", args: []string{"build", "A", "B", "--path", dir}},
		{name: "missing deps target", args: []string{"deps", "--path", dir}},
		{name: "unknown command", args: []string{"deploy"}},
		{name: "invalid log level", args: []string{"lint", "--path", dir, "--log-level", "loud"}},
		{name: "invalid port", args: []string{"lint", "--path", dir, "--healthcheck-port", "70000"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestExecute_Help(t *testing.T) {
	_, out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "build")
	assert.Contains(t, out.String(), "deps")
}
