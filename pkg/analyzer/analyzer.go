// Package analyzer extracts a structured model from webpack and rollup
// configuration files without executing them.
package analyzer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/xunholy/bundle-advisor/pkg/errdefs"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

// Option configures an analyzer
type Option func(*base)

// WithLogger sets the analyzer logger
func WithLogger(logger zerolog.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

// base holds what both analyzer variants share
type base struct {
	fs     afero.Fs
	logger zerolog.Logger
}

func newBase(fs afero.Fs, opts []Option) base {
	b := base{fs: fs, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// readConfig loads the raw text of a config file
func (b *base) readConfig(path string) (string, error) {
	content, err := afero.ReadFile(b.fs, path)
	if err != nil {
		return "", errdefs.Analysis(fmt.Sprintf("failed to read config file %s", path), err).
			WithCode("read_failed").
			WithData(path)
	}
	return string(content), nil
}

func (b *base) logResult(a *model.ConfigAnalysis) {
	b.logger.Debug().
		Str("path", a.Path).
		Str("kind", string(a.Kind)).
		Int("entries", len(a.Entries)).
		Int("outputs", len(a.Outputs)).
		Int("steps", len(a.LoadersOrPlugins)).
		Int("externals", len(a.Externals)).
		Msg("config extracted")
}

// extractEntries reads the entry/input value in its object, array or string form
func extractEntries(content string, field *regexp.Regexp) []model.EntryPoint {
	entries := []model.EntryPoint{}

	value, ok := topFieldValue(content, field)
	if !ok || value == "" {
		return entries
	}

	switch value[0] {
	case '{':
		inner, _, ok := balanced(value, 0)
		if !ok {
			return entries
		}
		for _, prop := range splitTopLevel(inner) {
			name, raw, ok := property(prop)
			if !ok {
				continue
			}
			if path := entryPath(raw); path != "" {
				entries = append(entries, model.EntryPoint{Name: name, Path: path})
			}
		}
	case '[':
		inner, _, ok := balanced(value, 0)
		if !ok {
			return entries
		}
		for i, path := range quotedStrings(inner) {
			entries = append(entries, model.EntryPoint{Name: fmt.Sprintf("entry%d", i+1), Path: path})
		}
	default:
		if path, ok := leadingString(value); ok && path != "" {
			entries = append(entries, model.EntryPoint{Name: "main", Path: path})
		}
	}

	return entries
}

// entryPath resolves the path of one named entry: a string, the first string
// of an array, or the import of an entry descriptor object
func entryPath(raw string) string {
	if raw == "" {
		return ""
	}
	switch raw[0] {
	case '[':
		inner, _, ok := balanced(raw, 0)
		if !ok {
			return ""
		}
		if strs := quotedStrings(inner); len(strs) > 0 {
			return strs[0]
		}
		return ""
	case '{':
		inner, _, ok := balanced(raw, 0)
		if !ok {
			return ""
		}
		if path := stringField(inner, importField); path != "" {
			return path
		}
		if imp, ok := fieldBlock(inner, importField, '['); ok {
			if strs := quotedStrings(imp); len(strs) > 0 {
				return strs[0]
			}
		}
		return ""
	default:
		path, _ := leadingString(raw)
		return path
	}
}

// property splits `key: value` into its name and trimmed raw value
func property(s string) (string, string, bool) {
	m := propertyRe.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	name := m[1]
	if name == "" {
		name = m[2]
	}
	return name, strings.TrimSpace(m[3]), true
}

// parseOptions turns an options object body into a key/value map. Each value
// is decoded as JSON when possible and kept as the raw trimmed text otherwise.
func parseOptions(body string) map[string]any {
	options := map[string]any{}
	for _, prop := range splitTopLevel(body) {
		name, raw, ok := property(prop)
		if !ok {
			continue
		}
		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			options[name] = decoded
		} else {
			options[name] = raw
		}
	}
	return options
}
