package analyzer

import (
	"regexp"

	"github.com/spf13/afero"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

var callRe = regexp.MustCompile(`((?:[\w$]+\.)*[\w$]+)\s*\(`)

// RollupAnalyzer extracts the structure of rollup-style configs
type RollupAnalyzer struct {
	base
}

// NewRollupAnalyzer creates a RollupAnalyzer reading from fs
func NewRollupAnalyzer(fs afero.Fs, opts ...Option) *RollupAnalyzer {
	return &RollupAnalyzer{base: newBase(fs, opts)}
}

// Analyze reads and extracts the config at path. Suggestions are left empty.
func (a *RollupAnalyzer) Analyze(path string) (*model.ConfigAnalysis, error) {
	content, err := a.readConfig(path)
	if err != nil {
		return nil, err
	}
	result := ParseRollup(path, content)
	a.logResult(result)
	return result, nil
}

// ParseRollup extracts input, outputs, plugins and externals from rollup config text
func ParseRollup(path, content string) *model.ConfigAnalysis {
	code := stripComments(content)
	return &model.ConfigAnalysis{
		Kind:             model.KindRollup,
		Path:             path,
		Entries:          extractEntries(code, inputField),
		Outputs:          extractRollupOutputs(code),
		LoadersOrPlugins: extractRollupPlugins(code),
		Externals:        extractExternals(code),
		RawContent:       content,
		Suggestions:      []model.Optimization{},
	}
}

// extractRollupOutputs reads output as a single object or an array of objects
func extractRollupOutputs(content string) []model.OutputTarget {
	outputs := []model.OutputTarget{}

	value, ok := topFieldValue(content, outputField)
	if !ok || value == "" {
		return outputs
	}

	var blocks []string
	switch value[0] {
	case '{':
		if inner, _, ok := balanced(value, 0); ok {
			blocks = []string{inner}
		}
	case '[':
		if inner, _, ok := balanced(value, 0); ok {
			for _, b := range topLevelBlocks(inner) {
				blocks = append(blocks, b[1:len(b)-1])
			}
		}
	}

	for _, b := range blocks {
		outputs = append(outputs, rollupOutput(b))
	}
	return outputs
}

func rollupOutput(block string) model.OutputTarget {
	out := model.OutputTarget{
		Format: stringField(block, formatField),
		File:   stringField(block, fileField),
		Dir:    stringField(block, dirField),
		Name:   stringField(block, nameField),
	}
	if v, ok := fieldValue(block, sourcemapField); ok {
		out.Sourcemap = enabledMapRe.MatchString(v)
	}
	return out
}

// extractRollupPlugins records the factory call of each plugins array element
func extractRollupPlugins(content string) []model.LoaderOrPlugin {
	plugins := []model.LoaderOrPlugin{}

	block, ok := topFieldBlock(content, pluginsField, '[')
	if !ok {
		return plugins
	}

	for _, elem := range splitTopLevel(block) {
		m := callRe.FindStringSubmatch(elem)
		if m == nil {
			continue
		}
		plugins = append(plugins, model.LoaderOrPlugin{
			Name:        m[1],
			Kind:        model.StepPlugin,
			Description: DescribeRollupPlugin(m[1]),
		})
	}

	return plugins
}

// extractExternals reads the external string array
func extractExternals(content string) []string {
	externals := []string{}
	block, ok := topFieldBlock(content, externalField, '[')
	if !ok {
		return externals
	}
	return append(externals, quotedStrings(block)...)
}
