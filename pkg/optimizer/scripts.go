package optimizer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/stretchr/objx"
	"github.com/xunholy/bundle-advisor/pkg/errdefs"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

// ScriptRule inspects one npm script
type ScriptRule func(name, command string) *model.ScriptSuggestion

// command boundaries: start of string, whitespace or a shell operator
const cmdStart = `(^|[\s;&|(])`

var (
	npmRunAllRe  = regexp.MustCompile(cmdStart + `(npm-run-all)(\s|$)`)
	parallelRe   = regexp.MustCompile(`(^|\s)(--parallel|-p)(\s|=|$)`)
	lernaRunRe   = regexp.MustCompile(cmdStart + `lerna\s+run\s+[^\s;&|]+`)
	eslintRe     = regexp.MustCompile(cmdStart + `(eslint)(\s|$)`)
	tscRe        = regexp.MustCompile(cmdStart + `(tsc)(\s|$)`)
	tscBuildRe   = regexp.MustCompile(`(^|\s)(-b|--build|--incremental)(\s|$)`)
	webpackCmdRe = regexp.MustCompile(cmdStart + `(webpack)(\s|$)`)
	modeFlagRe   = regexp.MustCompile(`(^|\s)--mode(\s|=)`)
	rmRfRe       = regexp.MustCompile(cmdStart + `rm\s+-(?:rf|fr)(\s)`)
)

// ScriptRules returns the build-script battery in evaluation order
func ScriptRules() []ScriptRule {
	return []ScriptRule{
		parallelScriptsRule,
		lernaParallelRule,
		eslintCacheRule,
		incrementalTSCRule,
		productionModeRule,
		rimrafRule,
	}
}

// Scripts evaluates the build-script battery against one script
func (s *Service) Scripts(name, command string) []model.ScriptSuggestion {
	suggestions := []model.ScriptSuggestion{}
	for _, rule := range s.scripts {
		if sg := rule(name, command); sg != nil {
			suggestions = append(suggestions, *sg)
		}
	}
	return suggestions
}

// PackageScripts reads the scripts map of a package.json and reports on each script by name
func (s *Service) PackageScripts(manifest []byte) ([]model.ScriptReport, error) {
	m, err := objx.FromJSON(string(manifest))
	if err != nil {
		return nil, errdefs.Analysis("failed to parse package manifest", err).WithCode("invalid_manifest")
	}

	var scripts map[string]interface{}
	switch v := m.Get("scripts"); {
	case v.IsMSI():
		scripts = v.MSI()
	case v.IsObjxMap():
		scripts = v.ObjxMap()
	}

	names := make([]string, 0, len(scripts))
	for name, cmd := range scripts {
		if _, ok := cmd.(string); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	reports := make([]model.ScriptReport, 0, len(names))
	for _, name := range names {
		command := scripts[name].(string)
		reports = append(reports, model.ScriptReport{
			Name:        name,
			Command:     command,
			Suggestions: s.Scripts(name, command),
		})
	}

	s.logger.Debug().Int("scripts", len(reports)).Msg("package scripts evaluated")
	return reports, nil
}

// replaceFirst expands repl for the first match of re only
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	expanded := re.ExpandString(nil, repl, s, loc)
	return s[:loc[0]] + string(expanded) + s[loc[1]:]
}

func parallelScriptsRule(_, command string) *model.ScriptSuggestion {
	if !npmRunAllRe.MatchString(command) || parallelRe.MatchString(command) {
		return nil
	}
	return &model.ScriptSuggestion{
		Title:       "Run Scripts in Parallel",
		Description: "npm-run-all runs tasks sequentially by default. Independent tasks can run at the same time.",
		Benefit:     "Shorter wall-clock time on multi-core machines",
		Before:      command,
		After:       replaceFirst(npmRunAllRe, command, "${1}${2} --parallel${3}"),
	}
}

func lernaParallelRule(_, command string) *model.ScriptSuggestion {
	if !lernaRunRe.MatchString(command) || strings.Contains(command, "--parallel") {
		return nil
	}
	return &model.ScriptSuggestion{
		Title:       "Run Workspace Scripts in Parallel",
		Description: "lerna run waits on topological order. Packages without inter-dependencies can build in parallel.",
		Benefit:     "Faster monorepo builds",
		Before:      command,
		After:       replaceFirst(lernaRunRe, command, "${0} --parallel"),
	}
}

func eslintCacheRule(_, command string) *model.ScriptSuggestion {
	if !eslintRe.MatchString(command) || strings.Contains(command, "--cache") {
		return nil
	}
	return &model.ScriptSuggestion{
		Title:       "Enable ESLint Cache",
		Description: "With --cache ESLint only re-lints files that changed since the last run.",
		Benefit:     "Much faster repeated lint runs",
		Before:      command,
		After:       replaceFirst(eslintRe, command, "${1}${2} --cache${3}"),
	}
}

func incrementalTSCRule(_, command string) *model.ScriptSuggestion {
	if !tscRe.MatchString(command) || tscBuildRe.MatchString(command) {
		return nil
	}
	return &model.ScriptSuggestion{
		Title:       "Enable Incremental TypeScript Builds",
		Description: "Incremental mode stores build information so the compiler skips unchanged files.",
		Benefit:     "Faster type-check and compile cycles",
		Before:      command,
		After:       replaceFirst(tscRe, command, "${1}${2} --incremental${3}"),
	}
}

func productionModeRule(name, command string) *model.ScriptSuggestion {
	if !strings.Contains(strings.ToLower(name), "build") || !webpackCmdRe.MatchString(command) || modeFlagRe.MatchString(command) {
		return nil
	}
	return &model.ScriptSuggestion{
		Title:       "Set Production Mode",
		Description: "Build scripts should pass --mode production so webpack enables its production optimizations.",
		Benefit:     "Smaller bundles with minification and dead code elimination",
		Before:      command,
		After:       replaceFirst(webpackCmdRe, command, "${1}${2} --mode production${3}"),
	}
}

func rimrafRule(_, command string) *model.ScriptSuggestion {
	if !rmRfRe.MatchString(command) {
		return nil
	}
	return &model.ScriptSuggestion{
		Title:       "Use rimraf for Cross-Platform Cleanup",
		Description: "rm -rf is not available in the Windows shell. rimraf behaves the same on every platform.",
		Benefit:     "Scripts work on Windows and Unix alike",
		Before:      command,
		After:       rmRfRe.ReplaceAllString(command, "${1}rimraf${2}"),
	}
}
