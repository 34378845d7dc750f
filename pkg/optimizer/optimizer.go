// Package optimizer turns extracted config models into ordered optimization
// suggestions. Every battery is a fixed list of independent rules; the
// position of a rule is the position of its suggestion in the output.
package optimizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xunholy/bundle-advisor/pkg/errdefs"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

// Input is what a config rule may inspect: the typed model plus the raw text
// for keyword checks the model cannot express
type Input struct {
	Raw       string
	Entries   []model.EntryPoint
	Outputs   []model.OutputTarget
	Steps     []model.LoaderOrPlugin
	Externals []string
}

// Rule returns a suggestion when its predicate holds, nil otherwise
type Rule func(in *Input) *model.Optimization

// Service evaluates the rule batteries
type Service struct {
	logger  zerolog.Logger
	webpack []Rule
	rollup  []Rule
	scripts []ScriptRule
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service with the default batteries
func New(opts ...Option) *Service {
	s := &Service{
		logger:  zerolog.Nop(),
		webpack: WebpackRules(),
		rollup:  RollupRules(),
		scripts: ScriptRules(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Webpack evaluates the webpack battery
func (s *Service) Webpack(raw string, entries []model.EntryPoint, outputs []model.OutputTarget, steps []model.LoaderOrPlugin) ([]model.Optimization, error) {
	return s.evaluate("webpack", s.webpack, &Input{Raw: raw, Entries: entries, Outputs: outputs, Steps: steps})
}

// Rollup evaluates the rollup battery
func (s *Service) Rollup(raw string, entries []model.EntryPoint, outputs []model.OutputTarget, plugins []model.LoaderOrPlugin, externals []string) ([]model.Optimization, error) {
	return s.evaluate("rollup", s.rollup, &Input{Raw: raw, Entries: entries, Outputs: outputs, Steps: plugins, Externals: externals})
}

// Suggest picks the battery matching the analysis kind. The analysis is not modified.
func (s *Service) Suggest(a *model.ConfigAnalysis) ([]model.Optimization, error) {
	switch a.Kind {
	case model.KindRollup:
		return s.Rollup(a.RawContent, a.Entries, a.Outputs, a.LoadersOrPlugins, a.Externals)
	default:
		return s.Webpack(a.RawContent, a.Entries, a.Outputs, a.LoadersOrPlugins)
	}
}

func (s *Service) evaluate(battery string, rules []Rule, in *Input) (suggestions []model.Optimization, err error) {
	defer func() {
		if r := recover(); r != nil {
			suggestions = nil
			err = errdefs.Optimization(fmt.Sprintf("%s rule evaluation failed", battery), fmt.Errorf("%v", r)).
				WithCode("rule_panic")
		}
	}()

	suggestions = []model.Optimization{}
	for _, rule := range rules {
		if o := rule(in); o != nil {
			suggestions = append(suggestions, *o)
		}
	}

	s.logger.Debug().Str("battery", battery).Int("suggestions", len(suggestions)).Msg("rules evaluated")
	return suggestions, nil
}

// hasStep reports whether a step with one of the given names exists, ignoring case
func hasStep(steps []model.LoaderOrPlugin, kind model.StepKind, names ...string) bool {
	for _, s := range steps {
		if s.Kind != kind {
			continue
		}
		for _, n := range names {
			if strings.EqualFold(s.Name, n) {
				return true
			}
		}
	}
	return false
}

func mentions(raw string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(raw, w) {
			return true
		}
	}
	return false
}

// fieldRe matches `key:` as a property, bare or quoted
func fieldRe(key string) *regexp.Regexp {
	k := regexp.QuoteMeta(key)
	return regexp.MustCompile(`(?:^|[^\w$.])(?:` + k + `|"` + k + `"|'` + k + `')\s*:`)
}
