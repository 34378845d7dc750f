package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
)

// CreateOutputFile writes a report file, creating its directory first
func CreateOutputFile(content []byte, path string) error {
	if _, err := EnsureDirectory(filepath.Dir(path)); err != nil {
		return err
	}

	log.Info().Msgf("creating file: %s", path)

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// ExpandPath resolves a leading ~ and returns a cleaned path
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}

// ExpandPaths expands every path, failing on the first error
func ExpandPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		expanded, err := ExpandPath(p)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", p, err)
		}
		out = append(out, expanded)
	}
	return out, nil
}

// EnsureDirectory expands dir, creates it if it doesn't exist and returns the
// expanded path
func EnsureDirectory(dir string) (string, error) {
	expanded, err := ExpandPath(dir)
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", dir, err)
	}
	if err := os.MkdirAll(expanded, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", expanded, err)
	}
	return expanded, nil
}

// ReportName turns a source path into a flat report file name
func ReportName(source, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	parent := filepath.Base(filepath.Dir(source))
	if parent == "." || parent == string(filepath.Separator) {
		return base + suffix
	}
	return parent + "-" + base + suffix
}
