package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	var buf bytes.Buffer
	cmd := NewRootCmd(&buf, args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "bundle-advisor dev\n", out)
}

func TestDetectJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app", "webpack.config.js"), "module.exports = {}")
	writeFile(t, filepath.Join(dir, "node_modules", "x", "webpack.config.js"), "")
	writeFile(t, filepath.Join(dir, "site", "vite.config.ts"), "")

	out, err := run(t, "detect", dir, "--pattern", "vite.config.*", "-o", "json")
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{
		filepath.Join(dir, "app", "webpack.config.js"),
		filepath.Join(dir, "site", "vite.config.ts"),
	}, got)
}

func TestDetectListPatterns(t *testing.T) {
	out, err := run(t, "detect", "--pattern", "vite.config.*", "--list-patterns", "-o", "json")
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got, "webpack.config.js")
	assert.Equal(t, "vite.config.*", got[len(got)-1])
}

func TestAnalyzeJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rollup.config.js")
	writeFile(t, path, `export default { input: 'src/main.js', output: { file: 'dist/out.js', format: 'es' } }`)

	out, err := run(t, "analyze", path, "--output", "json")
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "rollup", got[0]["kind"])
	assert.NotEmpty(t, got[0]["suggestions"])
}

func TestValidateFailsOnInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rollup.config.js")
	writeFile(t, path, `export default { output: { format: 'es' } }`)

	out, err := run(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "input is missing or empty")
}

func TestValidateMissingConfig(t *testing.T) {
	_, err := run(t, "validate", filepath.Join(t.TempDir(), "webpack.config.js"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestBundleWritesReport(t *testing.T) {
	dist := t.TempDir()
	writeFile(t, filepath.Join(dist, "main.js"), "console.log(1)")
	reports := filepath.Join(t.TempDir(), "reports")

	out, err := run(t, "bundle", dist, "--write", "--outdir", reports)
	require.NoError(t, err)
	assert.Contains(t, out, "Enable Compression")
	assert.FileExists(t, filepath.Join(reports, "bundle-analysis.yaml"))
}

func TestBundleOutdirIsAFile(t *testing.T) {
	dist := t.TempDir()
	writeFile(t, filepath.Join(dist, "main.js"), "console.log(1)")
	blocker := filepath.Join(t.TempDir(), "reports")
	writeFile(t, blocker, "")

	_, err := run(t, "bundle", dist, "--write", "--outdir", blocker)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prepare output directory")
}

func TestScripts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	writeFile(t, path, `{"scripts": {"clean": "rm -rf dist"}}`)

	out, err := run(t, "scripts", path)
	require.NoError(t, err)
	assert.Contains(t, out, "rimraf dist")
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := run(t, "detect", t.TempDir(), "-o", "xml")
	require.Error(t, err)
}
