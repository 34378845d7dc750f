package analyzer

import (
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

var (
	constructorRe = regexp.MustCompile(`new\s+((?:[\w$]+\.)*[\w$]+)\s*\(`)
	loaderNameRe  = regexp.MustCompile(`-loader$`)
)

// WebpackAnalyzer extracts the structure of webpack-style configs
type WebpackAnalyzer struct {
	base
}

// NewWebpackAnalyzer creates a WebpackAnalyzer reading from fs
func NewWebpackAnalyzer(fs afero.Fs, opts ...Option) *WebpackAnalyzer {
	return &WebpackAnalyzer{base: newBase(fs, opts)}
}

// Analyze reads and extracts the config at path. Suggestions are left empty.
func (a *WebpackAnalyzer) Analyze(path string) (*model.ConfigAnalysis, error) {
	content, err := a.readConfig(path)
	if err != nil {
		return nil, err
	}
	result := ParseWebpack(path, content)
	a.logResult(result)
	return result, nil
}

// ParseWebpack extracts entries, output, loaders and plugins from webpack config text
func ParseWebpack(path, content string) *model.ConfigAnalysis {
	code := stripComments(content)
	steps := extractLoaders(code)
	steps = append(steps, extractWebpackPlugins(code)...)

	return &model.ConfigAnalysis{
		Kind:             model.KindWebpack,
		Path:             path,
		Entries:          extractEntries(code, entryField),
		Outputs:          []model.OutputTarget{extractWebpackOutput(code)},
		LoadersOrPlugins: steps,
		Externals:        []string{},
		RawContent:       content,
		Suggestions:      []model.Optimization{},
	}
}

// extractWebpackOutput reads the output block. A missing block yields an
// output with empty path and filename.
func extractWebpackOutput(content string) model.OutputTarget {
	block, ok := topFieldBlock(content, outputField, '{')
	if !ok {
		return model.OutputTarget{}
	}
	return model.OutputTarget{
		Path:       outputPath(block),
		Filename:   stringField(block, filenameField),
		PublicPath: stringField(block, publicPathField),
	}
}

// outputPath resolves path.resolve/path.join calls by joining their string
// arguments with "/", or takes a plain string value
func outputPath(block string) string {
	value, ok := fieldValue(block, pathField)
	if !ok {
		return ""
	}
	if loc := pathCallRe.FindStringIndex(value); loc != nil {
		args, _, ok := balanced(value, loc[1]-1)
		if !ok {
			return ""
		}
		return strings.Join(quotedStrings(args), "/")
	}
	path, _ := leadingString(value)
	return path
}

// extractLoaders splits the rules array into top-level rule blocks and
// records every loader reference. The same loader found through both `use`
// and `loader` is recorded twice.
func extractLoaders(content string) []model.LoaderOrPlugin {
	loaders := []model.LoaderOrPlugin{}

	rules, ok := fieldBlock(content, rulesField, '[')
	if !ok {
		return loaders
	}

	for _, rule := range topLevelBlocks(rules) {
		test := regexTest(rule)
		for _, name := range loaderNames(rule) {
			loaders = append(loaders, model.LoaderOrPlugin{
				Name:    name,
				Kind:    model.StepLoader,
				Test:    test,
				Options: loaderOptions(rule, name),
			})
		}
	}

	return loaders
}

// regexTest returns the body of the rule's regex-literal test
func regexTest(rule string) string {
	value, ok := fieldValue(rule, testField)
	if !ok {
		return ""
	}
	if m := regexBodyRe.FindStringSubmatch(value); m != nil {
		return m[1]
	}
	return ""
}

// loaderNames lists loader references in textual order of discovery:
// the use array, a use string, then every loader field
func loaderNames(rule string) []string {
	var names []string

	if use, ok := fieldValue(rule, useField); ok && use != "" {
		switch use[0] {
		case '[':
			if inner, _, ok := balanced(use, 0); ok {
				for _, s := range quotedStrings(inner) {
					if loaderNameRe.MatchString(s) {
						names = append(names, s)
					}
				}
			}
		default:
			if s, ok := leadingString(use); ok && s != "" {
				names = append(names, s)
			}
		}
	}

	for _, loc := range loaderField.FindAllStringIndex(rule, -1) {
		if s, ok := leadingString(rule[loc[1]:]); ok && s != "" {
			names = append(names, s)
		}
	}

	return names
}

// loaderOptions returns the options object that follows the loader's name,
// provided no other loader is referenced in between
func loaderOptions(rule, name string) map[string]any {
	idx := quotedIndex(rule, name)
	if idx < 0 {
		return nil
	}
	rest := rule[idx+len(name)+2:]

	loc := optionsField.FindStringIndex(rest)
	if loc == nil {
		return nil
	}
	for _, s := range quotedRe.FindAllStringIndex(rest[:loc[0]], -1) {
		if loaderNameRe.MatchString(strings.Trim(rest[s[0]:s[1]], "'\"`")) {
			return nil
		}
	}

	body, ok := fieldBlock(rest[loc[0]:], optionsField, '{')
	if !ok {
		return nil
	}
	return parseOptions(body)
}

// quotedIndex finds name as a complete string literal
func quotedIndex(s, name string) int {
	for _, q := range []string{"'", "\"", "`"} {
		if i := strings.Index(s, q+name+q); i >= 0 {
			return i
		}
	}
	return -1
}

// extractWebpackPlugins records every constructor call in the plugins array.
// Constructions nested in another plugin's arguments are not plugins.
func extractWebpackPlugins(content string) []model.LoaderOrPlugin {
	plugins := []model.LoaderOrPlugin{}

	block, ok := topFieldBlock(content, pluginsField, '[')
	if !ok {
		return plugins
	}

	next := 0
	for _, loc := range constructorRe.FindAllStringSubmatchIndex(block, -1) {
		if loc[0] < next {
			continue
		}
		if _, end, ok := balanced(block, loc[1]-1); ok {
			next = end
		}

		name := block[loc[2]:loc[3]]
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		plugins = append(plugins, model.LoaderOrPlugin{
			Name:        name,
			Kind:        model.StepPlugin,
			Description: DescribeWebpackPlugin(name),
		})
	}

	return plugins
}
