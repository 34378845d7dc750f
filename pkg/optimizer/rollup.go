package optimizer

import (
	"regexp"
	"strings"

	"github.com/xunholy/bundle-advisor/pkg/model"
)

var (
	treeshakeOffRe = regexp.MustCompile(`(?:^|[^\w$.])treeshake\s*:\s*false\b`)
	externalField  = fieldRe("external")
)

// RollupRules returns the rollup battery in evaluation order
func RollupRules() []Rule {
	return []Rule{
		terserRule,
		rollupTreeShakingRule,
		externalsRule,
		nodeResolveRule,
		commonJSRule,
		rollupSourceMapRule,
		esModuleOutputRule,
		visualizerRule,
		manualChunksRule,
	}
}

// hasPluginLike reports whether any plugin name contains one of the fragments, ignoring case
func hasPluginLike(steps []model.LoaderOrPlugin, fragments ...string) bool {
	for _, s := range steps {
		if s.Kind != model.StepPlugin {
			continue
		}
		name := strings.ToLower(s.Name)
		for _, f := range fragments {
			if strings.Contains(name, f) {
				return true
			}
		}
	}
	return false
}

func terserRule(in *Input) *model.Optimization {
	if hasPluginLike(in.Steps, "terser") {
		return nil
	}
	return &model.Optimization{
		Title:       "Add Minification with Terser",
		Description: "Rollup does not minify output by itself. Add the terser plugin to production builds.",
		Priority:    model.PriorityHigh,
		CodeSnippet: `import terser from '@rollup/plugin-terser';

plugins: [
  production && terser(),
],`,
	}
}

func rollupTreeShakingRule(in *Input) *model.Optimization {
	if !treeshakeOffRe.MatchString(in.Raw) {
		return nil
	}
	return &model.Optimization{
		Title:       "Re-enable Tree Shaking",
		Description: "Tree shaking is disabled, so every imported module ends up in the bundle whether it is used or not.",
		Priority:    model.PriorityHigh,
		CodeSnippet: `treeshake: {
  moduleSideEffects: false,
},`,
	}
}

func externalsRule(in *Input) *model.Optimization {
	if len(in.Externals) > 0 || externalField.MatchString(in.Raw) {
		return nil
	}
	return &model.Optimization{
		Title:       "Mark Dependencies as External",
		Description: "Libraries should not bundle their runtime dependencies. Declare them external and let consumers install them.",
		Priority:    model.PriorityMedium,
		CodeSnippet: `import pkg from './package.json' assert { type: 'json' };

external: [
  ...Object.keys(pkg.dependencies || {}),
  ...Object.keys(pkg.peerDependencies || {}),
],`,
	}
}

func nodeResolveRule(in *Input) *model.Optimization {
	if hasPluginLike(in.Steps, "resolve") {
		return nil
	}
	return &model.Optimization{
		Title:       "Add Node Resolve Plugin",
		Description: "Without node-resolve, imports of packages from node_modules are left unresolved.",
		Priority:    model.PriorityMedium,
		CodeSnippet: `import { nodeResolve } from '@rollup/plugin-node-resolve';

plugins: [nodeResolve()],`,
	}
}

func commonJSRule(in *Input) *model.Optimization {
	if hasPluginLike(in.Steps, "commonjs") {
		return nil
	}
	return &model.Optimization{
		Title:       "Add CommonJS Plugin",
		Description: "Many npm packages ship CommonJS only. The commonjs plugin converts them so they can be bundled and tree shaken.",
		Priority:    model.PriorityMedium,
		CodeSnippet: `import commonjs from '@rollup/plugin-commonjs';

plugins: [commonjs()],`,
	}
}

func rollupSourceMapRule(in *Input) *model.Optimization {
	for _, out := range in.Outputs {
		if out.Sourcemap {
			return nil
		}
	}
	return &model.Optimization{
		Title:       "Generate Source Maps",
		Description: "No output emits source maps, which makes production errors hard to trace back to source.",
		Priority:    model.PriorityLow,
		CodeSnippet: `output: {
  file: 'dist/bundle.js',
  format: 'es',
  sourcemap: true,
},`,
	}
}

func esModuleOutputRule(in *Input) *model.Optimization {
	for _, out := range in.Outputs {
		switch strings.ToLower(out.Format) {
		case "es", "esm", "module":
			return nil
		}
	}
	return &model.Optimization{
		Title:       "Emit ES Module Output",
		Description: "An ES module build lets downstream bundlers tree shake your package.",
		Priority:    model.PriorityMedium,
		CodeSnippet: `output: [
  { file: 'dist/index.cjs', format: 'cjs' },
  { file: 'dist/index.mjs', format: 'es' },
],`,
	}
}

func visualizerRule(in *Input) *model.Optimization {
	if hasPluginLike(in.Steps, "visualizer") {
		return nil
	}
	return &model.Optimization{
		Title:       "Visualize the Bundle",
		Description: "Generate a treemap of the bundle to spot large or duplicated modules.",
		Priority:    model.PriorityLow,
		CodeSnippet: `import { visualizer } from 'rollup-plugin-visualizer';

plugins: [visualizer({ filename: 'stats.html' })],`,
	}
}

func manualChunksRule(in *Input) *model.Optimization {
	if len(in.Entries) < 2 || mentions(in.Raw, "manualChunks") {
		return nil
	}
	return &model.Optimization{
		Title:       "Split Shared Chunks",
		Description: "Several inputs share dependencies. Group vendor code into a manual chunk so it is emitted once.",
		Priority:    model.PriorityLow,
		CodeSnippet: `output: {
  dir: 'dist',
  manualChunks(id) {
    if (id.includes('node_modules')) {
      return 'vendor';
    }
  },
},`,
	}
}
