// Package detector finds webpack and rollup configuration files in a workspace.
package detector

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/xunholy/bundle-advisor/pkg/errdefs"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

// DefaultPatterns is the ordered list of config filename patterns
var DefaultPatterns = []string{
	"webpack.config.js",
	"webpack.config.ts",
	"webpack.config.mjs",
	"webpack.config.cjs",
	"*webpack*.js",
	"*webpack*.ts",
	"rollup.config.js",
	"rollup.config.mjs",
	"rollup.config.ts",
	"*rollup*.js",
	"*rollup*.mjs",
}

const excludedDir = "node_modules"

// Detector scans directory trees for configuration files
type Detector struct {
	fs       afero.Fs
	logger   zerolog.Logger
	patterns []string
	globs    []glob.Glob
	names    *regexp.Regexp
}

// Option configures a Detector
type Option func(*Detector)

// WithLogger sets the detector logger
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

// WithExtraPatterns appends filename patterns after the defaults
func WithExtraPatterns(patterns ...string) Option {
	return func(d *Detector) {
		d.patterns = append(d.patterns, patterns...)
	}
}

// New creates a Detector. Patterns that fail to compile are logged and ignored.
func New(fsys afero.Fs, opts ...Option) *Detector {
	d := &Detector{
		fs:       fsys,
		logger:   zerolog.Nop(),
		patterns: append([]string(nil), DefaultPatterns...),
	}
	for _, opt := range opts {
		opt(d)
	}

	for _, p := range d.patterns {
		g, err := glob.Compile(p)
		if err != nil {
			d.logger.Warn().Err(err).Str("pattern", p).Msg("ignoring invalid config pattern")
			continue
		}
		d.globs = append(d.globs, g)
	}
	d.names = patternRegexp(d.patterns)

	return d
}

// Patterns returns the filename patterns in match order
func (d *Detector) Patterns() []string {
	return append([]string(nil), d.patterns...)
}

// Detect returns the absolute paths of every config file below rootDir,
// skipping node_modules. The result is deduplicated; its order carries no meaning.
func (d *Detector) Detect(rootDir string) ([]string, error) {
	info, err := d.fs.Stat(rootDir)
	if err != nil {
		return nil, errdefs.Validation("workspace folder %s is not accessible", rootDir).WithData(err.Error())
	}
	if !info.IsDir() {
		return nil, errdefs.Validation("workspace folder %s is not a directory", rootDir)
	}

	found := make(map[string]struct{})
	err = afero.Walk(d.fs, rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// unreadable subtrees are skipped rather than failing the whole scan
			d.logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable path")
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if info.Name() == excludedDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.matches(info.Name()) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		found[filepath.Clean(abs)] = struct{}{}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipDir) {
		return nil, errdefs.Analysis("failed to scan workspace", err).WithData(rootDir)
	}

	paths := make([]string, 0, len(found))
	for p := range found {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	d.logger.Debug().Str("root", rootDir).Int("configs", len(paths)).Msg("config detection finished")
	return paths, nil
}

func (d *Detector) matches(name string) bool {
	for _, g := range d.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// ValidateConfigFile reports whether the basename of path matches one of the
// config patterns. The file content is not inspected.
func (d *Detector) ValidateConfigFile(path string) bool {
	return d.names.MatchString(filepath.Base(path))
}

// patternRegexp turns the wildcard patterns into one anchored alternation
func patternRegexp(patterns []string) *regexp.Regexp {
	alts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		alts = append(alts, strings.ReplaceAll(regexp.QuoteMeta(p), `\*`, `.*`))
	}
	return regexp.MustCompile(`^(?:` + strings.Join(alts, "|") + `)$`)
}

// Kind classifies a config file by its basename
func Kind(path string) model.ConfigKind {
	if strings.Contains(strings.ToLower(filepath.Base(path)), "rollup") {
		return model.KindRollup
	}
	return model.KindWebpack
}
