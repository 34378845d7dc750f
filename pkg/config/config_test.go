package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolateHome(t)

	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "table", s.Output.Format)
	assert.Equal(t, "bundle-analysis", s.Output.Dir)
	assert.False(t, s.Output.Write)
	assert.Equal(t, uint64(500*1024), s.Bundle.JSThreshold)
	assert.Equal(t, uint64(100*1024), s.Bundle.CSSThreshold)
	assert.Equal(t, uint64(1024*1024), s.Bundle.ImageThreshold)
	assert.Equal(t, uint64(250*1024), s.Bundle.VendorThreshold)
	assert.False(t, s.Bundle.Probe)
	assert.Empty(t, s.Detect.ExtraPatterns)
	assert.GreaterOrEqual(t, s.Concurrency, 1)
}

func TestLoadDefaultFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".bundle-advisor")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
output:
  format: yaml
bundle:
  jsThreshold: 1024
  probe: true
detect:
  extraPatterns:
    - vite.config.*
concurrency: 3
`), 0o644))

	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "yaml", s.Output.Format)
	assert.Equal(t, uint64(1024), s.Bundle.JSThreshold)
	assert.Equal(t, uint64(100*1024), s.Bundle.CSSThreshold)
	assert.True(t, s.Bundle.Probe)
	assert.Equal(t, []string{"vite.config.*"}, s.Detect.ExtraPatterns)
	assert.Equal(t, 3, s.Concurrency)
}

func TestLoadExplicitFile(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "advisor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  dir: reports/\n  write: true\n"), 0o644))

	s, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "reports", s.Output.Dir)
	assert.True(t, s.Output.Write)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	isolateHome(t)

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("BUNDLE_ADVISOR_OUTPUT_FORMAT", "json")
	t.Setenv("BUNDLE_ADVISOR_BUNDLE_CSSTHRESHOLD", "2048")
	t.Setenv("BUNDLE_ADVISOR_CONCURRENCY", "0")

	s, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "json", s.Output.Format)
	assert.Equal(t, uint64(2048), s.Bundle.CSSThreshold)
	assert.Equal(t, 1, s.Concurrency)
}
