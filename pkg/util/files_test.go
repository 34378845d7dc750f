package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "report.yaml")

	require.NoError(t, CreateOutputFile([]byte("a: 1\n"), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(content))
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	got, err := ExpandPath("~/projects/app/")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "projects", "app"), got)

	got, err = ExpandPath("./dist/../build")
	require.NoError(t, err)
	assert.Equal(t, "build", got)

	all, err := ExpandPaths([]string{"~", "/tmp/x/"})
	require.NoError(t, err)
	assert.Equal(t, []string{home, "/tmp/x"}, all)
}

func TestEnsureDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	dir, err := EnsureDirectory("~/reports/nested/")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "reports", "nested"), dir)
	assert.DirExists(t, dir)

	// existing directories are left alone
	again, err := EnsureDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, again)

	blocker := filepath.Join(home, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	_, err = EnsureDirectory(filepath.Join(blocker, "sub"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create directory")
}

func TestReportName(t *testing.T) {
	assert.Equal(t, "app-webpack.config.yaml", ReportName("/ws/app/webpack.config.js", ".yaml"))
	assert.Equal(t, "rollup.config.yaml", ReportName("rollup.config.mjs", ".yaml"))
	assert.Equal(t, "webpack.config.yaml", ReportName("/webpack.config.js", ".yaml"))
}
