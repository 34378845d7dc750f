// Package scanner lists the files of a directory tree with their sizes.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

// Scanner walks directory trees on an afero filesystem
type Scanner struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// Option configures a Scanner
type Option func(*Scanner)

// WithLogger sets the logger used for skipped entries
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New creates a Scanner over fs
func New(fs afero.Fs, opts ...Option) *Scanner {
	s := &Scanner{
		fs:     fs,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns every regular file below root, depth first, siblings in name order.
//
// A symbolic link to a regular file is counted under the link's path with the
// target's size. Links to directories are skipped so the walk cannot cycle, and
// dangling links are skipped too. Recursion depth is unbounded.
func (s *Scanner) Scan(root string) ([]model.FileRecord, error) {
	files := []model.FileRecord{}
	if err := s.walk(root, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) walk(dir string, files *[]model.FileRecord) error {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			if err := s.walk(path, files); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			*files = append(*files, record(path, entry))
		case entry.Mode()&os.ModeSymlink != 0:
			target, err := s.fs.Stat(path)
			if err != nil {
				s.logger.Debug().Err(err).Str("path", path).Msg("skipping dangling link")
				continue
			}
			if !target.Mode().IsRegular() {
				s.logger.Debug().Str("path", path).Msg("skipping link to non-regular file")
				continue
			}
			*files = append(*files, record(path, target))
		default:
			s.logger.Debug().Str("path", path).Str("mode", entry.Mode().String()).Msg("skipping non-regular entry")
		}
	}

	return nil
}

func record(path string, info os.FileInfo) model.FileRecord {
	return model.FileRecord{
		Path:      path,
		SizeBytes: uint64(info.Size()),
		Extension: Extension(filepath.Base(path)),
	}
}

// Extension returns the lowercased extension of name including the dot
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
