package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/xunholy/bundle-advisor/pkg/bundle"
	"github.com/xunholy/bundle-advisor/pkg/detector"
	"github.com/xunholy/bundle-advisor/pkg/model"
	"github.com/xunholy/bundle-advisor/pkg/util"
	"gopkg.in/yaml.v2"
)

const maxPathLen = 60

// Manager renders results to a writer and optionally stores YAML reports
type Manager struct {
	Writer io.Writer
	Format Format
	OutDir string
	Write  bool
}

// NewManager creates a new output manager
func NewManager(w io.Writer, format Format, outDir string, write bool) *Manager {
	return &Manager{
		Writer: w,
		Format: format,
		OutDir: outDir,
		Write:  write,
	}
}

// writeReport stores data as YAML under OutDir when writing is enabled
func (m *Manager) writeReport(name string, data interface{}) error {
	if !m.Write {
		return nil
	}
	content, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal report %s: %w", name, err)
	}
	path := filepath.Join(m.OutDir, name)
	if err := util.CreateOutputFile(content, path); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	log.Info().Msgf("Report written to: %s", path)
	return nil
}

// Configs prints detected config files
func (m *Manager) Configs(paths []string) error {
	if err := m.writeReport("detected-configs.yaml", paths); err != nil {
		return err
	}
	if m.Format != FormatTable {
		return m.Print(paths)
	}

	if len(paths) == 0 {
		m.line("No webpack or rollup config files found")
		return nil
	}
	rows := make([][]string, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, []string{string(detector.Kind(p)), p})
	}
	m.table([]string{"Kind", "Path"}, rows)
	return nil
}

// Patterns prints the config filename patterns in match order
func (m *Manager) Patterns(patterns []string) error {
	if m.Format != FormatTable {
		return m.Print(patterns)
	}
	rows := make([][]string, 0, len(patterns))
	for i, p := range patterns {
		rows = append(rows, []string{strconv.Itoa(i + 1), p})
	}
	m.table([]string{"#", "Pattern"}, rows)
	return nil
}

// Analyses prints each config analysis with its suggestions
func (m *Manager) Analyses(results []*model.ConfigAnalysis) error {
	for _, a := range results {
		if err := m.writeReport(util.ReportName(a.Path, "-analysis.yaml"), a); err != nil {
			return err
		}
	}
	if m.Format != FormatTable {
		return m.Print(results)
	}

	for _, a := range results {
		m.analysis(a)
	}
	return nil
}

func (m *Manager) analysis(a *model.ConfigAnalysis) {
	m.heading(fmt.Sprintf("%s config: %s", a.Kind, a.Path))

	if len(a.Entries) > 0 {
		m.line("\nEntries:")
		rows := make([][]string, 0, len(a.Entries))
		for _, e := range a.Entries {
			rows = append(rows, []string{e.Name, e.Path})
		}
		m.table([]string{"Name", "Path"}, rows)
	}

	if len(a.Outputs) > 0 {
		m.line("\nOutputs:")
		rows := make([][]string, 0, len(a.Outputs))
		for _, o := range a.Outputs {
			target := o.File
			if target == "" {
				target = o.Dir
			}
			if target == "" {
				target = filepath.ToSlash(filepath.Join(o.Path, o.Filename))
			}
			rows = append(rows, []string{target, o.Format, fmt.Sprintf("%t", o.Sourcemap)})
		}
		m.table([]string{"Target", "Format", "Sourcemap"}, rows)
	}

	if len(a.LoadersOrPlugins) > 0 {
		m.line("\nLoaders and plugins:")
		rows := make([][]string, 0, len(a.LoadersOrPlugins))
		for _, s := range a.LoadersOrPlugins {
			rows = append(rows, []string{string(s.Kind), s.Name, s.Test, s.Description})
		}
		m.table([]string{"Kind", "Name", "Test", "Description"}, rows)
	}

	if len(a.Externals) > 0 {
		m.line("\nExternals: %s", strings.Join(a.Externals, ", "))
	}

	if len(a.Suggestions) == 0 {
		m.line("\nNo optimization suggestions")
		return
	}
	m.line("\nSuggestions:")
	for i, s := range a.Suggestions {
		m.line("\n%d. %s [%s]", i+1, s.Title, s.Priority)
		m.line("   %s", s.Description)
		if s.CodeSnippet != "" {
			for _, l := range strings.Split(s.CodeSnippet, "\n") {
				m.line("     %s", l)
			}
		}
	}
}

// Validation prints the validity of one config
func (m *Manager) Validation(path string, result model.ValidationResult) error {
	report := struct {
		Path   string   `json:"path" yaml:"path"`
		Valid  bool     `json:"isValid" yaml:"isValid"`
		Errors []string `json:"errors" yaml:"errors"`
	}{Path: path, Valid: result.IsValid, Errors: result.Errors}
	if report.Errors == nil {
		report.Errors = []string{}
	}

	if err := m.writeReport(util.ReportName(path, "-validation.yaml"), report); err != nil {
		return err
	}
	if m.Format != FormatTable {
		return m.Print(report)
	}

	if result.IsValid {
		m.line("%s is valid", path)
		return nil
	}
	m.line("%s is invalid:", path)
	for _, e := range result.Errors {
		m.line("  - %s", e)
	}
	return nil
}

// Bundle prints size totals, the top largest files and the recommendations
func (m *Manager) Bundle(result *model.SizeAnalysisResult, top int) error {
	if err := m.writeReport("bundle-analysis.yaml", result); err != nil {
		return err
	}
	if m.Format != FormatTable {
		return m.Print(result)
	}

	t := result.Totals
	m.heading("Bundle Analysis: " + result.Root)
	m.table([]string{"Category", "Size"}, [][]string{
		{"JavaScript", humanize.IBytes(t.JS)},
		{"CSS", humanize.IBytes(t.CSS)},
		{"Images", humanize.IBytes(t.Image)},
		{"Other", humanize.IBytes(t.Other)},
		{"Total", humanize.IBytes(t.Total)},
	})

	if largest := bundle.Largest(result.Files, top); len(largest) > 0 {
		m.line("\nLargest files:")
		rows := make([][]string, 0, len(largest))
		for _, f := range largest {
			rel, err := filepath.Rel(result.Root, f.Path)
			if err != nil {
				rel = f.Path
			}
			rows = append(rows, []string{truncatePath(rel, maxPathLen), humanize.IBytes(f.SizeBytes)})
		}
		m.table([]string{"File", "Size"}, rows)
		if remaining := len(result.Files) - len(largest); remaining > 0 {
			m.line("  ... and %d more files", remaining)
		}
	}

	if p := result.Probe; p != nil {
		m.line("\nMeasured:")
		m.line("  minified JavaScript: %s", humanize.IBytes(p.MinifiedJSBytes))
		m.line("  gzip JS+CSS: %s -> %s", humanize.IBytes(p.GzipPayloadBytes), humanize.IBytes(p.GzipCompressedBytes))
	}

	m.line("\nRecommendations:")
	rows := make([][]string, 0, len(result.Recommendations))
	for _, r := range result.Recommendations {
		savings := "-"
		if v, ok := r.Savings(); ok {
			savings = humanize.IBytes(v)
		}
		rows = append(rows, []string{r.Title, savings, r.Description})
	}
	m.table([]string{"Recommendation", "Potential Savings", "Details"}, rows)
	return nil
}

// Scripts prints build-script suggestions, skipping scripts without any
func (m *Manager) Scripts(reports []model.ScriptReport) error {
	if err := m.writeReport("script-suggestions.yaml", reports); err != nil {
		return err
	}
	if m.Format != FormatTable {
		return m.Print(reports)
	}

	var rows [][]string
	for _, r := range reports {
		for _, s := range r.Suggestions {
			rows = append(rows, []string{r.Name, s.Title, s.After})
		}
	}
	if len(rows) == 0 {
		m.line("No script suggestions")
		return nil
	}
	m.table([]string{"Script", "Suggestion", "Replacement"}, rows)
	return nil
}
