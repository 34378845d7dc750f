package optimizer

import (
	"strings"

	"github.com/xunholy/bundle-advisor/pkg/model"
)

var (
	cacheField   = fieldRe("cache")
	devtoolField = fieldRe("devtool")
	modeField    = fieldRe("mode")
)

// WebpackRules returns the webpack battery in evaluation order
func WebpackRules() []Rule {
	return []Rule{
		codeSplittingRule,
		minificationRule,
		cachingRule,
		cssExtractionRule,
		cssMinificationRule,
		treeShakingRule,
		contentHashRule,
		sourceMapRule,
		bundleAnalyzerRule,
		buildModeRule,
	}
}

func codeSplittingRule(in *Input) *model.Optimization {
	if mentions(in.Raw, "splitChunks") {
		return nil
	}
	return &model.Optimization{
		Title:       "Enable Code Splitting",
		Description: "Split vendor and shared modules into separate chunks so browsers cache them independently and load less code up front.",
		Priority:    model.PriorityHigh,
		CodeSnippet: `optimization: {
  splitChunks: {
    chunks: 'all',
    cacheGroups: {
      vendor: {
        test: /[\\/]node_modules[\\/]/,
        name: 'vendors',
        chunks: 'all',
      },
    },
  },
},`,
	}
}

func minificationRule(in *Input) *model.Optimization {
	if hasStep(in.Steps, model.StepPlugin, "TerserPlugin") || mentions(in.Raw, "TerserPlugin") {
		return nil
	}
	return &model.Optimization{
		Title:       "Add JavaScript Minification",
		Description: "Add TerserPlugin to the minimizer list to strip whitespace, comments and dead code from production bundles.",
		Priority:    model.PriorityHigh,
		CodeSnippet: `const TerserPlugin = require('terser-webpack-plugin');

optimization: {
  minimize: true,
  minimizer: [new TerserPlugin({ parallel: true })],
},`,
	}
}

func cachingRule(in *Input) *model.Optimization {
	if cacheField.MatchString(in.Raw) {
		return nil
	}
	return &model.Optimization{
		Title:       "Enable Persistent Caching",
		Description: "Cache the module graph on disk so rebuilds only process changed files.",
		Priority:    model.PriorityMedium,
		CodeSnippet: `cache: {
  type: 'filesystem',
  buildDependencies: {
    config: [__filename],
  },
},`,
	}
}

// handlesCSS reports whether any loader processes stylesheets
func handlesCSS(steps []model.LoaderOrPlugin) bool {
	for _, s := range steps {
		if s.Kind != model.StepLoader {
			continue
		}
		if strings.Contains(s.Test, "css") || s.Name == "css-loader" || s.Name == "style-loader" {
			return true
		}
	}
	return false
}

func cssExtractionRule(in *Input) *model.Optimization {
	if !handlesCSS(in.Steps) || hasStep(in.Steps, model.StepPlugin, "MiniCssExtractPlugin") || mentions(in.Raw, "MiniCssExtractPlugin") {
		return nil
	}
	return &model.Optimization{
		Title:       "Extract CSS into Separate Files",
		Description: "Styles are injected at runtime by JavaScript. Extracting them lets the browser download and cache CSS in parallel.",
		Priority:    model.PriorityMedium,
		CodeSnippet: `const MiniCssExtractPlugin = require('mini-css-extract-plugin');

module: {
  rules: [
    { test: /\.css$/, use: [MiniCssExtractPlugin.loader, 'css-loader'] },
  ],
},
plugins: [new MiniCssExtractPlugin({ filename: '[name].[contenthash].css' })],`,
	}
}

func cssMinificationRule(in *Input) *model.Optimization {
	if !handlesCSS(in.Steps) || hasStep(in.Steps, model.StepPlugin, "CssMinimizerPlugin") || mentions(in.Raw, "CssMinimizerPlugin") {
		return nil
	}
	return &model.Optimization{
		Title:       "Minify CSS",
		Description: "Add CssMinimizerPlugin so extracted stylesheets are minified in production builds.",
		Priority:    model.PriorityMedium,
		CodeSnippet: `const CssMinimizerPlugin = require('css-minimizer-webpack-plugin');

optimization: {
  minimizer: ['...', new CssMinimizerPlugin()],
},`,
	}
}

func treeShakingRule(in *Input) *model.Optimization {
	if mentions(in.Raw, "usedExports", "sideEffects") {
		return nil
	}
	return &model.Optimization{
		Title:       "Enable Tree Shaking",
		Description: "Mark unused exports so the minimizer can drop them, and declare side-effect free packages.",
		Priority:    model.PriorityMedium,
		CodeSnippet: `optimization: {
  usedExports: true,
  sideEffects: true,
},`,
	}
}

func contentHashRule(in *Input) *model.Optimization {
	for _, out := range in.Outputs {
		if strings.Contains(out.Filename, "[contenthash") {
			return nil
		}
	}
	return &model.Optimization{
		Title:       "Use Content Hashes in Filenames",
		Description: "Content hashes change only when a file changes, which allows long-term browser caching.",
		Priority:    model.PriorityMedium,
		CodeSnippet: `output: {
  filename: '[name].[contenthash].js',
  chunkFilename: '[name].[contenthash].chunk.js',
},`,
	}
}

func sourceMapRule(in *Input) *model.Optimization {
	if devtoolField.MatchString(in.Raw) {
		return nil
	}
	return &model.Optimization{
		Title:       "Configure Source Maps",
		Description: "Choose a devtool explicitly: fast maps for development and separate, non-inlined maps for production.",
		Priority:    model.PriorityLow,
		CodeSnippet: `devtool: process.env.NODE_ENV === 'production' ? 'source-map' : 'eval-cheap-module-source-map',`,
	}
}

func bundleAnalyzerRule(in *Input) *model.Optimization {
	if hasStep(in.Steps, model.StepPlugin, "BundleAnalyzerPlugin") || mentions(in.Raw, "BundleAnalyzerPlugin") {
		return nil
	}
	return &model.Optimization{
		Title:       "Analyze Bundle Composition",
		Description: "Visualize which modules make up each bundle to find heavy or duplicated dependencies.",
		Priority:    model.PriorityLow,
		CodeSnippet: `const { BundleAnalyzerPlugin } = require('webpack-bundle-analyzer');

plugins: [new BundleAnalyzerPlugin({ analyzerMode: 'static', openAnalyzer: false })],`,
	}
}

func buildModeRule(in *Input) *model.Optimization {
	if modeField.MatchString(in.Raw) {
		return nil
	}
	return &model.Optimization{
		Title:       "Set Build Mode",
		Description: "Without an explicit mode webpack falls back to production with a warning. Set it so development builds skip optimizations.",
		Priority:    model.PriorityLow,
		CodeSnippet: `mode: process.env.NODE_ENV === 'production' ? 'production' : 'development',`,
	}
}
