package optimizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xunholy/bundle-advisor/pkg/errdefs"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

func TestScripts(t *testing.T) {
	tests := []struct {
		name      string
		script    string
		command   string
		wantTitle string
		wantAfter string
	}{
		{
			name:      "npm-run-all sequential",
			script:    "build",
			command:   "npm-run-all clean compile",
			wantTitle: "Run Scripts in Parallel",
			wantAfter: "npm-run-all --parallel clean compile",
		},
		{
			name:      "lerna run",
			script:    "build",
			command:   "lerna run build && echo done",
			wantTitle: "Run Workspace Scripts in Parallel",
			wantAfter: "lerna run build --parallel && echo done",
		},
		{
			name:      "eslint",
			script:    "lint",
			command:   "eslint src --ext .ts",
			wantTitle: "Enable ESLint Cache",
			wantAfter: "eslint --cache src --ext .ts",
		},
		{
			name:      "tsc",
			script:    "typecheck",
			command:   "tsc --noEmit",
			wantTitle: "Enable Incremental TypeScript Builds",
			wantAfter: "tsc --incremental --noEmit",
		},
		{
			name:      "webpack build",
			script:    "build",
			command:   "webpack",
			wantTitle: "Set Production Mode",
			wantAfter: "webpack --mode production",
		},
		{
			name:      "rm -rf",
			script:    "clean",
			command:   "rm -rf dist && rm -rf .cache",
			wantTitle: "Use rimraf for Cross-Platform Cleanup",
			wantAfter: "rimraf dist && rimraf .cache",
		},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Scripts(tt.script, tt.command)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantTitle, got[0].Title)
			assert.Equal(t, tt.command, got[0].Before)
			assert.Equal(t, tt.wantAfter, got[0].After)
			assert.NotEmpty(t, got[0].Benefit)
		})
	}
}

func TestScriptsAlreadyOptimized(t *testing.T) {
	s := New()
	for name, command := range map[string]string{
		"build":  "npm-run-all --parallel a b",
		"lint":   "eslint --cache src",
		"tsc":    "tsc -b",
		"dev":    "webpack serve",
		"bundle": "webpack --mode=production",
		"clean":  "rimraf dist",
		"test":   "jest --coverage",
	} {
		assert.Empty(t, s.Scripts(name, command), name)
	}
}

func TestScriptsOrder(t *testing.T) {
	got := New().Scripts("build", "rm -rf dist && tsc && webpack")
	titles := make([]string, 0, len(got))
	for _, sg := range got {
		titles = append(titles, sg.Title)
	}
	assert.Equal(t, []string{
		"Enable Incremental TypeScript Builds",
		"Set Production Mode",
		"Use rimraf for Cross-Platform Cleanup",
	}, titles)
}

func TestPackageScripts(t *testing.T) {
	manifest := []byte(`{
  "name": "web",
  "scripts": {
    "lint": "eslint src",
    "build": "webpack",
    "test": "jest",
    "weird": 42
  }
}`)

	reports, err := New().PackageScripts(manifest)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "build", reports[0].Name)
	assert.Equal(t, "webpack", reports[0].Command)
	require.Len(t, reports[0].Suggestions, 1)
	assert.Equal(t, "Set Production Mode", reports[0].Suggestions[0].Title)

	assert.Equal(t, "lint", reports[1].Name)
	require.Len(t, reports[1].Suggestions, 1)

	assert.Equal(t, "test", reports[2].Name)
	assert.Equal(t, []model.ScriptSuggestion{}, reports[2].Suggestions)
}

func TestPackageScriptsWithoutScripts(t *testing.T) {
	reports, err := New().PackageScripts([]byte(`{"name": "lib"}`))
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestPackageScriptsInvalidJSON(t *testing.T) {
	_, err := New().PackageScripts([]byte(`{"scripts": `))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrAnalysis))
}
