package extract

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Scanner reads files in process and matches color tokens with a regular expression.
type Scanner struct {
	// Exts limits the scan to files with one of these extensions. Empty scans every file.
	Exts   []string
	Logger *slog.Logger
}

var _ Extractor = (*Scanner)(nil)

func (s *Scanner) Extract(root string) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("root", root)

	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("%w: cannot stat %q: %w", ErrExtraction, root, err)
	}

	res := &Result{}
	c := newCollector()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			res.Skipped++
			logger.Warn("could not scan", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !matchesExt(d.Name(), s.Exts) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			res.Skipped++
			logger.Warn("could not read file", "file", path, "error", err)
			return nil
		}
		if IsBinary(content) {
			res.Skipped++
			logger.Debug("skipping binary file", "file", path)
			return nil
		}

		c.scan(string(content))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: cannot walk %q: %w", ErrExtraction, root, err)
	}

	res.Literals = c.literals
	return res, nil
}
