// Package bundle measures a build output directory and estimates where bytes
// can be saved.
package bundle

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/xunholy/bundle-advisor/pkg/errdefs"
	"github.com/xunholy/bundle-advisor/pkg/model"
	"github.com/xunholy/bundle-advisor/pkg/scanner"
)

const (
	KiB uint64 = 1024
	MiB        = 1024 * KiB
)

// Thresholds are the category sizes above which a recommendation fires
type Thresholds struct {
	JS     uint64
	CSS    uint64
	Image  uint64
	Vendor uint64
}

// DefaultThresholds returns the stock thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		JS:     500 * KiB,
		CSS:    100 * KiB,
		Image:  1 * MiB,
		Vendor: 250 * KiB,
	}
}

// Analyzer runs the size battery over a directory tree
type Analyzer struct {
	fs         afero.Fs
	scanner    *scanner.Scanner
	logger     zerolog.Logger
	thresholds Thresholds
	probe      bool
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the analyzer logger
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithThresholds overrides the default thresholds. Zero fields keep their default.
func WithThresholds(t Thresholds) Option {
	return func(a *Analyzer) {
		if t.JS > 0 {
			a.thresholds.JS = t.JS
		}
		if t.CSS > 0 {
			a.thresholds.CSS = t.CSS
		}
		if t.Image > 0 {
			a.thresholds.Image = t.Image
		}
		if t.Vendor > 0 {
			a.thresholds.Vendor = t.Vendor
		}
	}
}

// WithProbe enables the minify and gzip measurements
func WithProbe(enabled bool) Option {
	return func(a *Analyzer) {
		a.probe = enabled
	}
}

// NewAnalyzer creates an Analyzer reading from fs
func NewAnalyzer(fs afero.Fs, opts ...Option) *Analyzer {
	a := &Analyzer{
		fs:         fs,
		logger:     zerolog.Nop(),
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.scanner = scanner.New(fs, scanner.WithLogger(a.logger))
	return a
}

// Thresholds returns the effective thresholds
func (a *Analyzer) Thresholds() Thresholds {
	return a.thresholds
}

// AnalyzeDirectory scans rootDir and evaluates the size battery
func (a *Analyzer) AnalyzeDirectory(rootDir string) (*model.SizeAnalysisResult, error) {
	info, err := a.fs.Stat(rootDir)
	if err != nil {
		return nil, errdefs.Validation("bundle directory %s does not exist", rootDir).
			WithCode("missing_root").WithData(rootDir)
	}
	if !info.IsDir() {
		return nil, errdefs.Validation("bundle path %s is not a directory", rootDir).
			WithCode("not_a_directory").WithData(rootDir)
	}

	files, err := a.scanner.Scan(rootDir)
	if err != nil {
		return nil, errdefs.Analysis("failed to scan bundle directory", err).
			WithCode("walk_failed").WithData(rootDir)
	}

	totals := Summarize(files)
	result := &model.SizeAnalysisResult{
		Root:            filepath.Clean(rootDir),
		Totals:          totals,
		Files:           files,
		Recommendations: recommend(rootDir, files, totals, a.thresholds),
	}

	if a.probe {
		probe, err := a.measure(files)
		if err != nil {
			return nil, err
		}
		result.Probe = probe
		if rec := minifyRecommendation(probe, totals); rec != nil {
			result.Recommendations = append(result.Recommendations, *rec)
		}
	}

	a.logger.Debug().
		Str("root", rootDir).
		Int("files", len(files)).
		Uint64("total", totals.Total).
		Int("recommendations", len(result.Recommendations)).
		Msg("bundle analyzed")

	return result, nil
}
