package analyzer

import "strings"

// DefaultWebpackPluginDescription is used for plugins missing from the table
const DefaultWebpackPluginDescription = "A webpack plugin"

var webpackPluginDescriptions = map[string]string{
	"HtmlWebpackPlugin":          "Generates an HTML file that includes all webpack bundles",
	"MiniCssExtractPlugin":       "Extracts CSS into separate files",
	"TerserPlugin":               "Minifies JavaScript using terser",
	"CleanWebpackPlugin":         "Removes the build folder before each build",
	"CopyWebpackPlugin":          "Copies individual files or directories to the build directory",
	"DefinePlugin":               "Replaces identifiers in the code with compile-time constants",
	"BundleAnalyzerPlugin":       "Visualizes the size of bundle contents as an interactive treemap",
	"CompressionPlugin":          "Prepares compressed versions of assets",
	"HotModuleReplacementPlugin": "Exchanges modules while the application is running",
	"CssMinimizerPlugin":         "Optimizes and minifies CSS",
}

var rollupPluginDescriptions = map[string]string{
	"resolve":     "Locates modules using the Node resolution algorithm",
	"noderesolve": "Locates modules using the Node resolution algorithm",
	"commonjs":    "Converts CommonJS modules to ES modules",
	"terser":      "Minifies the generated bundle with terser",
	"babel":       "Transpiles code with Babel",
	"typescript":  "Compiles TypeScript sources",
	"json":        "Imports JSON files as ES modules",
	"replace":     "Replaces strings in files while bundling",
	"postcss":     "Processes imported CSS with PostCSS",
	"visualizer":  "Visualizes and analyzes the bundle",
	"alias":       "Defines aliases for module paths",
	"copy":        "Copies files and folders to the output",
}

// DescribeWebpackPlugin returns the known description of a webpack plugin
// constructor, or DefaultWebpackPluginDescription
func DescribeWebpackPlugin(name string) string {
	if d, ok := webpackPluginDescriptions[name]; ok {
		return d
	}
	return DefaultWebpackPluginDescription
}

// DescribeRollupPlugin returns the known description of a rollup plugin
// factory, or an empty string
func DescribeRollupPlugin(name string) string {
	return rollupPluginDescriptions[strings.ToLower(name)]
}
