package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/forge/internal/service"
	"github.com/specialistvlad/forge/internal/testutil"
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
    product  = "static_library"
    sources  = ["Kit/**"]

    dependency "sdk" "libz.tbd" {}
  }

  target "AppTests" {
    platform = "ios"
    product  = "unit_tests"
    sources  = ["Tests/**"]

    dependency "target" "App" {}
  }
}
`

func setupApp(t *testing.T, files map[string]string) (*App, *testutil.RecordingController, *testutil.SafeBuffer) {
	t.Helper()
	dir := testutil.WriteFiles(t, files)

	cfg, err := NewConfig(Config{Path: dir, LogLevel: "debug", LogFormat: "logfmt"})
	require.NoError(t, err)

	controller := testutil.NewRecordingController()
	var buf testutil.SafeBuffer
	return NewApp(&buf, cfg, WithController(controller)), controller, &buf
}

func TestApp_Build(t *testing.T) {
	a, controller, logs := setupApp(t, map[string]string{"Project.hcl": project})

	report, err := a.Build(context.Background(), BuildRequest{})
	require.NoError(t, err, logs.String())

	assert.Equal(t, []string{"App", "Kit"}, controller.Schemes())
	assert.Equal(t, service.PhaseDone, report.Phase)
	assert.Equal(t, filepath.Join(a.config.Path, "App.xcworkspace"), report.Workspace)
	assert.Contains(t, logs.String(), "The project built successfully")

	_, err = a.Build(context.Background(), BuildRequest{Scheme: "Missing"})
	assert.EqualError(t, err, "Couldn't find scheme Missing. The available schemes are: App, Kit")
}

func TestApp_Test(t *testing.T) {
	a, controller, _ := setupApp(t, map[string]string{"Project.hcl": project})

	_, err := a.Test(context.Background(), TestRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"App"}, controller.Schemes(), "only the App scheme has tests")
}

func TestApp_Dependencies(t *testing.T) {
	a, _, _ := setupApp(t, map[string]string{"Project.hcl": project})

	deps, err := a.Dependencies(context.Background(), "App")
	require.NoError(t, err)
	require.Len(t, deps.Static, 2)
	assert.Equal(t, "Kit", deps.Static[0].Name)
	assert.Equal(t, "libz.tbd", deps.Static[1].Name)

	var out strings.Builder
	deps.Print(&out, a.config.Path)
	assert.Contains(t, out.String(), "Static dependencies of App:\n")
	assert.Contains(t, out.String(), "Embeddable frameworks of App:\n  (none)\n")

	_, err = a.Dependencies(context.Background(), "Nope")
	assert.ErrorContains(t, err, "target not found")
}

func TestApp_Lint(t *testing.T) {
	a, _, logs := setupApp(t, map[string]string{"Project.hcl": `
project "App" {
  target "App" {
    platform = "ios"
    product  = "app"
  }
}`})

	issues, err := a.Lint(context.Background())
	require.NoError(t, err)
	assert.Len(t, issues, 1)
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestApp_HealthMux(t *testing.T) {
	a, _, _ := setupApp(t, map[string]string{"Project.hcl": project})
	_, err := a.Build(context.Background(), BuildRequest{})
	require.NoError(t, err)

	srv := httptest.NewServer(a.healthMux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `forge_scheme_invocations_total{action="build",result="success"} 2`)
}

func TestApp_StartWithoutPort(t *testing.T) {
	a, _, _ := setupApp(t, map[string]string{"Project.hcl": project})
	require.NoError(t, a.Start())
	assert.Nil(t, a.httpServer)
	require.NoError(t, a.Close(context.Background()))
}
