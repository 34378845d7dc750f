// Package manager wires the detector, the config analyzers and the optimizer
// into the operations the CLI exposes.
package manager

import (
	"context"
	"runtime"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/xunholy/bundle-advisor/pkg/analyzer"
	"github.com/xunholy/bundle-advisor/pkg/detector"
	"github.com/xunholy/bundle-advisor/pkg/errdefs"
	"github.com/xunholy/bundle-advisor/pkg/model"
	"github.com/xunholy/bundle-advisor/pkg/optimizer"
	"golang.org/x/sync/errgroup"
)

// ConfigDetector finds config files below a root
type ConfigDetector interface {
	Detect(rootDir string) ([]string, error)
}

// ConfigAnalyzer extracts the structure of one config file
type ConfigAnalyzer interface {
	Analyze(path string) (*model.ConfigAnalysis, error)
}

// Optimizer produces suggestions for an extracted config
type Optimizer interface {
	Suggest(a *model.ConfigAnalysis) ([]model.Optimization, error)
}

// Services are the collaborators of a Manager. A nil FS means the OS filesystem.
type Services struct {
	FS        afero.Fs
	Detector  ConfigDetector
	Webpack   ConfigAnalyzer
	Rollup    ConfigAnalyzer
	Optimizer Optimizer
}

// Manager runs detection, analysis and validation
type Manager struct {
	fs          afero.Fs
	logger      zerolog.Logger
	detector    ConfigDetector
	webpack     ConfigAnalyzer
	rollup      ConfigAnalyzer
	optimizer   Optimizer
	concurrency int
	patterns    []string
}

// Option configures a Manager
type Option func(*Manager)

// WithConcurrency bounds the number of configs analyzed at once
func WithConcurrency(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

// WithExtraPatterns adds config filename globs to the default detector built
// by New. An injected detector keeps its own patterns.
func WithExtraPatterns(patterns ...string) Option {
	return func(m *Manager) {
		m.patterns = append(m.patterns, patterns...)
	}
}

// New creates a Manager with default collaborators on the OS filesystem
func New(logger zerolog.Logger, opts ...Option) *Manager {
	fs := afero.NewOsFs()
	m := NewWithServices(logger, Services{
		FS:        fs,
		Webpack:   analyzer.NewWebpackAnalyzer(fs, analyzer.WithLogger(logger)),
		Rollup:    analyzer.NewRollupAnalyzer(fs, analyzer.WithLogger(logger)),
		Optimizer: optimizer.New(optimizer.WithLogger(logger)),
	}, opts...)
	m.detector = detector.New(fs, detector.WithLogger(logger), detector.WithExtraPatterns(m.patterns...))
	return m
}

// NewWithServices creates a Manager with injected collaborators
func NewWithServices(logger zerolog.Logger, services Services, opts ...Option) *Manager {
	fs := services.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	m := &Manager{
		fs:          fs,
		logger:      logger,
		detector:    services.Detector,
		webpack:     services.Webpack,
		rollup:      services.Rollup,
		optimizer:   services.Optimizer,
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Patterns returns the filename patterns of the detector, or nil when the
// detector does not expose them
func (m *Manager) Patterns() []string {
	if d, ok := m.detector.(interface{ Patterns() []string }); ok {
		return d.Patterns()
	}
	return nil
}

// DetectConfigs returns the union of config files found under every root
func (m *Manager) DetectConfigs(roots []string) ([]string, error) {
	if len(roots) == 0 {
		return nil, errdefs.Validation("no workspace folders open").WithCode("no_workspace")
	}

	seen := make(map[string]struct{})
	for _, root := range roots {
		found, err := m.detector.Detect(root)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			seen[path] = struct{}{}
		}
	}

	configs := make([]string, 0, len(seen))
	for path := range seen {
		configs = append(configs, path)
	}
	sort.Strings(configs)

	m.logger.Info().Msgf("Found %d config file(s) in %d folder(s)", len(configs), len(roots))
	return configs, nil
}

// AnalyzeConfig extracts the config at path and attaches optimization suggestions
func (m *Manager) AnalyzeConfig(path string) (*model.ConfigAnalysis, error) {
	a, err := m.extract(path)
	if err != nil {
		return nil, err
	}

	suggestions, err := m.optimizer.Suggest(a)
	if err != nil {
		return nil, err
	}
	a.Suggestions = suggestions

	m.logger.Debug().Str("path", path).Int("suggestions", len(suggestions)).Msg("config analyzed")
	return a, nil
}

// AnalyzeConfigs analyzes independent configs concurrently. Results keep the
// order of paths; the first failure cancels the rest.
func (m *Manager) AnalyzeConfigs(ctx context.Context, paths []string) ([]*model.ConfigAnalysis, error) {
	results := make([]*model.ConfigAnalysis, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := m.AnalyzeConfig(path)
			if err != nil {
				return err
			}
			results[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ValidateConfig extracts the config at path and checks its structure
func (m *Manager) ValidateConfig(path string) (model.ValidationResult, error) {
	a, err := m.extract(path)
	if err != nil {
		return model.ValidationResult{}, err
	}
	return analyzer.Validate(a), nil
}

func (m *Manager) extract(path string) (*model.ConfigAnalysis, error) {
	if _, err := m.fs.Stat(path); err != nil {
		return nil, errdefs.Validation("config file %s does not exist", path).
			WithCode("missing_config").WithData(path)
	}

	if detector.Kind(path) == model.KindRollup {
		return m.rollup.Analyze(path)
	}
	return m.webpack.Analyze(path)
}
