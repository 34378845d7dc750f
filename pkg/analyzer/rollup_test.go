package analyzer

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

func TestParseRollup(t *testing.T) {
	got := ParseRollup("rollup.config.js", rollupFixture)

	assert.Equal(t, model.KindRollup, got.Kind)
	assert.Equal(t, []model.EntryPoint{{Name: "main", Path: "src/main.js"}}, got.Entries)
	assert.Equal(t, []model.OutputTarget{
		{File: "dist/bundle.cjs.js", Format: "cjs", Sourcemap: true},
		{File: "dist/bundle.esm.js", Format: "es", Name: "MyLib"},
		{Dir: "dist/chunks", Format: "esm", Sourcemap: true},
	}, got.Outputs)
	assert.Equal(t, []string{"react", "react-dom"}, got.Externals)

	require.Len(t, got.LoadersOrPlugins, 4)
	assert.Equal(t, "resolve", got.LoadersOrPlugins[0].Name)
	assert.Equal(t, DescribeRollupPlugin("resolve"), got.LoadersOrPlugins[0].Description)
	assert.Equal(t, "commonjs", got.LoadersOrPlugins[1].Name)
	assert.Equal(t, "terser", got.LoadersOrPlugins[2].Name)
	assert.Equal(t, "myCustomPlugin", got.LoadersOrPlugins[3].Name)
	assert.Empty(t, got.LoadersOrPlugins[3].Description)
	for _, p := range got.LoadersOrPlugins {
		assert.Equal(t, model.StepPlugin, p.Kind)
	}
}

func TestParseRollupInputForms(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []model.EntryPoint
	}{
		{
			name:    "array",
			content: `export default { input: ['src/a.js', 'src/b.js'] }`,
			want: []model.EntryPoint{
				{Name: "entry1", Path: "src/a.js"},
				{Name: "entry2", Path: "src/b.js"},
			},
		},
		{
			name:    "object",
			content: `export default { input: { index: 'src/index.js', cli: 'src/cli.js' } }`,
			want: []model.EntryPoint{
				{Name: "index", Path: "src/index.js"},
				{Name: "cli", Path: "src/cli.js"},
			},
		},
		{
			name:    "empty array",
			content: `export default { input: [] }`,
			want:    []model.EntryPoint{},
		},
		{
			name:    "omitted",
			content: `export default { output: { file: 'out.js' } }`,
			want:    []model.EntryPoint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRollup("rollup.config.js", tt.content).Entries)
		})
	}
}

func TestParseRollupSingleOutput(t *testing.T) {
	got := ParseRollup("rollup.config.js", `export default {
  input: 'index.js',
  output: { file: 'bundle.js', format: 'iife', name: 'app', sourcemap: false },
}`)
	assert.Equal(t, []model.OutputTarget{{File: "bundle.js", Format: "iife", Name: "app"}}, got.Outputs)
	assert.Empty(t, got.Externals)
	assert.Empty(t, got.LoadersOrPlugins)
}

func TestParseRollupQuotedKeys(t *testing.T) {
	got := ParseRollup("rollup.config.js", `export default { "input": "src/main.js", 'output': { "file": "dist/out.js", 'format': 'es' } }`)
	assert.Equal(t, []model.EntryPoint{{Name: "main", Path: "src/main.js"}}, got.Entries)
	assert.Equal(t, []model.OutputTarget{{File: "dist/out.js", Format: "es"}}, got.Outputs)
}

func TestParseRollupNestedFields(t *testing.T) {
	got := ParseRollup("rollup.config.js", `export default {
  input: 'src/main.js',
  watch: { include: 'src/**', plugins: [] },
  output: { file: 'dist/out.js', format: 'es', plugins: [terser()] },
  plugins: [resolve(), visualizer({ output: 'stats.html' })],
}`)
	assert.Equal(t, []model.OutputTarget{{File: "dist/out.js", Format: "es"}}, got.Outputs)
	require.Len(t, got.LoadersOrPlugins, 2)
	assert.Equal(t, "resolve", got.LoadersOrPlugins[0].Name)
	assert.Equal(t, "visualizer", got.LoadersOrPlugins[1].Name)
}

func TestRollupAnalyzeIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ws/rollup.config.js", []byte(rollupFixture), 0o644))

	a := NewRollupAnalyzer(fs)
	first, err := a.Analyze("/ws/rollup.config.js")
	require.NoError(t, err)
	second, err := a.Analyze("/ws/rollup.config.js")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, rollupFixture, first.RawContent)
}
