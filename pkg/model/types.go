// Package model holds the structured results produced by the analyzers and
// consumed by the optimizer and the presentation layer.
package model

// ConfigKind identifies the bundler a configuration file belongs to
type ConfigKind string

const (
	KindWebpack ConfigKind = "webpack"
	KindRollup  ConfigKind = "rollup"
)

// StepKind tells loaders and plugins apart inside LoadersOrPlugins
type StepKind string

const (
	StepLoader StepKind = "loader"
	StepPlugin StepKind = "plugin"
)

// Priority ranks an optimization suggestion
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// EntryPoint is one named build entry
type EntryPoint struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// OutputTarget is a single output destination
type OutputTarget struct {
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Dir        string `json:"dir,omitempty" yaml:"dir,omitempty"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	Filename   string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Format     string `json:"format,omitempty" yaml:"format,omitempty"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	PublicPath string `json:"publicPath,omitempty" yaml:"publicPath,omitempty"`
	Sourcemap  bool   `json:"sourcemap,omitempty" yaml:"sourcemap,omitempty"`
}

// HasDestination reports whether the output declares file, dir, or filename plus path
func (o OutputTarget) HasDestination() bool {
	return o.File != "" || o.Dir != "" || (o.Filename != "" && o.Path != "")
}

// LoaderOrPlugin is a declared build-pipeline step
type LoaderOrPlugin struct {
	Name        string         `json:"name" yaml:"name"`
	Kind        StepKind       `json:"kind" yaml:"kind"`
	Test        string         `json:"test,omitempty" yaml:"test,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Options     map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Optimization is one suggestion produced by a rule battery
type Optimization struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	CodeSnippet string   `json:"codeSnippet" yaml:"codeSnippet"`
	Priority    Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// ConfigAnalysis is the structured result for one configuration file.
// RawContent is always the verbatim source text.
type ConfigAnalysis struct {
	Kind             ConfigKind       `json:"kind" yaml:"kind"`
	Path             string           `json:"path" yaml:"path"`
	Entries          []EntryPoint     `json:"entries" yaml:"entries"`
	Outputs          []OutputTarget   `json:"outputs" yaml:"outputs"`
	LoadersOrPlugins []LoaderOrPlugin `json:"loadersOrPlugins" yaml:"loadersOrPlugins"`
	Externals        []string         `json:"externals" yaml:"externals"`
	RawContent       string           `json:"-" yaml:"-"`
	Suggestions      []Optimization   `json:"suggestions" yaml:"suggestions"`
}

// Loaders returns the loader steps in declaration order
func (c *ConfigAnalysis) Loaders() []LoaderOrPlugin {
	return c.steps(StepLoader)
}

// Plugins returns the plugin steps in declaration order
func (c *ConfigAnalysis) Plugins() []LoaderOrPlugin {
	return c.steps(StepPlugin)
}

func (c *ConfigAnalysis) steps(kind StepKind) []LoaderOrPlugin {
	var out []LoaderOrPlugin
	for _, s := range c.LoadersOrPlugins {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// ValidationResult reports whether a config satisfies its validity rule
type ValidationResult struct {
	IsValid bool     `json:"isValid" yaml:"isValid"`
	Errors  []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ScriptSuggestion is a build-script rewrite. After is a complete replacement
// for the script's command.
type ScriptSuggestion struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Benefit     string `json:"benefit" yaml:"benefit"`
	Before      string `json:"before" yaml:"before"`
	After       string `json:"after" yaml:"after"`
}

// ScriptReport groups the suggestions for one package.json script
type ScriptReport struct {
	Name        string             `json:"name" yaml:"name"`
	Command     string             `json:"command" yaml:"command"`
	Suggestions []ScriptSuggestion `json:"suggestions" yaml:"suggestions"`
}
