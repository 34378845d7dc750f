package optimizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xunholy/bundle-advisor/pkg/analyzer"
	"github.com/xunholy/bundle-advisor/pkg/errdefs"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

func titles(opts []model.Optimization) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Title)
	}
	return out
}

func TestWebpackBareConfig(t *testing.T) {
	raw := `module.exports = { entry: './src/index.js' }`
	a := analyzer.ParseWebpack("webpack.config.js", raw)

	got, err := New().Webpack(a.RawContent, a.Entries, a.Outputs, a.LoadersOrPlugins)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Enable Code Splitting",
		"Add JavaScript Minification",
		"Enable Persistent Caching",
		"Enable Tree Shaking",
		"Use Content Hashes in Filenames",
		"Configure Source Maps",
		"Analyze Bundle Composition",
		"Set Build Mode",
	}, titles(got))
	assert.Equal(t, model.PriorityHigh, got[0].Priority)
	assert.Equal(t, model.PriorityHigh, got[1].Priority)
	assert.Equal(t, model.PriorityMedium, got[2].Priority)
	for _, o := range got {
		assert.NotEmpty(t, o.Description, o.Title)
		assert.NotEmpty(t, o.CodeSnippet, o.Title)
	}
}

func TestWebpackCSSRules(t *testing.T) {
	raw := `module.exports = {
  module: { rules: [{ test: /\.css$/, use: ['style-loader', 'css-loader'] }] },
}`
	a := analyzer.ParseWebpack("webpack.config.js", raw)

	got, err := New().Webpack(a.RawContent, a.Entries, a.Outputs, a.LoadersOrPlugins)
	require.NoError(t, err)

	names := titles(got)
	assert.Contains(t, names, "Extract CSS into Separate Files")
	assert.Contains(t, names, "Minify CSS")
	assert.Len(t, names, 10)
	assert.Equal(t, "Extract CSS into Separate Files", names[3])
	assert.Equal(t, "Minify CSS", names[4])
}

func TestWebpackOptimizedConfig(t *testing.T) {
	raw := `const TerserPlugin = require('terser-webpack-plugin');
const MiniCssExtractPlugin = require('mini-css-extract-plugin');
const CssMinimizerPlugin = require('css-minimizer-webpack-plugin');
const { BundleAnalyzerPlugin } = require('webpack-bundle-analyzer');

module.exports = {
  mode: 'production',
  devtool: 'source-map',
  cache: { type: 'filesystem' },
  entry: './src/index.js',
  output: { path: path.resolve(__dirname, 'dist'), filename: '[name].[contenthash].js' },
  module: { rules: [{ test: /\.css$/, use: [MiniCssExtractPlugin.loader, 'css-loader'] }] },
  optimization: {
    usedExports: true,
    splitChunks: { chunks: 'all' },
    minimizer: [new TerserPlugin(), new CssMinimizerPlugin()],
  },
  plugins: [new MiniCssExtractPlugin(), new BundleAnalyzerPlugin()],
};`
	a := analyzer.ParseWebpack("webpack.config.js", raw)

	got, err := New().Webpack(a.RawContent, a.Entries, a.Outputs, a.LoadersOrPlugins)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestWebpackTerserFromPluginList(t *testing.T) {
	steps := []model.LoaderOrPlugin{{Name: "TerserPlugin", Kind: model.StepPlugin}}

	got, err := New().Webpack("", nil, nil, steps)
	require.NoError(t, err)
	assert.NotContains(t, titles(got), "Add JavaScript Minification")
}

func TestWebpackCacheDirectoryIsNotCache(t *testing.T) {
	raw := `module.exports = { module: { rules: [{ use: { loader: 'babel-loader', options: { cacheDirectory: true } } }] } }`

	got, err := New().Webpack(raw, nil, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, titles(got), "Enable Persistent Caching")
}

func TestWebpackQuotedKeys(t *testing.T) {
	raw := `module.exports = { "mode": "production", 'cache': { type: 'filesystem' }, "devtool": false }`

	got, err := New().Webpack(raw, nil, nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, titles(got), "Enable Persistent Caching")
	assert.NotContains(t, titles(got), "Configure Source Maps")
	assert.NotContains(t, titles(got), "Set Build Mode")
}

func TestRollupSuggestions(t *testing.T) {
	raw := `export default {
  input: { a: 'src/a.js', b: 'src/b.js' },
  treeshake: false,
  output: { dir: 'dist', format: 'cjs' },
  plugins: [resolve()],
};`
	a := analyzer.ParseRollup("rollup.config.js", raw)

	got, err := New().Rollup(a.RawContent, a.Entries, a.Outputs, a.LoadersOrPlugins, a.Externals)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Add Minification with Terser",
		"Re-enable Tree Shaking",
		"Mark Dependencies as External",
		"Add CommonJS Plugin",
		"Generate Source Maps",
		"Emit ES Module Output",
		"Visualize the Bundle",
		"Split Shared Chunks",
	}, titles(got))
}

func TestRollupOptimizedConfig(t *testing.T) {
	raw := `export default {
  input: 'src/main.js',
  external: ['react'],
  output: { file: 'dist/index.mjs', format: 'es', sourcemap: true },
  plugins: [nodeResolve(), commonjs(), terser(), visualizer()],
};`
	a := analyzer.ParseRollup("rollup.config.js", raw)

	got, err := New().Rollup(a.RawContent, a.Entries, a.Outputs, a.LoadersOrPlugins, a.Externals)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuggestDispatchesOnKind(t *testing.T) {
	s := New()
	rollup := analyzer.ParseRollup("rollup.config.js", `export default { input: 'a.js' }`)
	webpack := analyzer.ParseWebpack("webpack.config.js", `module.exports = { entry: './a.js' }`)

	got, err := s.Suggest(rollup)
	require.NoError(t, err)
	assert.Equal(t, "Add Minification with Terser", got[0].Title)

	got, err = s.Suggest(webpack)
	require.NoError(t, err)
	assert.Equal(t, "Enable Code Splitting", got[0].Title)
	assert.Empty(t, webpack.Suggestions)
}

func TestRulePanicIsRecovered(t *testing.T) {
	s := New()
	s.webpack = []Rule{func(*Input) *model.Optimization { panic("boom") }}

	got, err := s.Webpack("", nil, nil, nil)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, errdefs.ErrOptimization))
	assert.Contains(t, err.Error(), "boom")
}

func TestWebpackIsDeterministic(t *testing.T) {
	a := analyzer.ParseWebpack("webpack.config.js", `module.exports = {
  module: { rules: [{ test: /\.css$/, use: ['css-loader'] }] },
  plugins: [new HtmlWebpackPlugin()],
}`)
	s := New()

	first, err := s.Suggest(a)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := s.Suggest(a)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
