package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestOS_Glob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b.xcworkspace"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a.xcworkspace"), 0o755))
	touch(t, filepath.Join(dir, "Project.hcl"))

	matches, err := OS{}.Glob(dir, "*.xcworkspace")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.xcworkspace"),
		filepath.Join(dir, "b.xcworkspace"),
	}, matches)

	matches, err = OS{}.Glob(dir, "*.xcodeproj")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindUp(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "marker"))
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, ok := FindUp(nested, func(d string) bool {
		return OS{}.Exists(filepath.Join(d, "marker"))
	})
	require.True(t, ok)
	assert.Equal(t, dir, found)

	_, ok = FindUp(nested, func(string) bool { return false })
	assert.False(t, ok)
}
