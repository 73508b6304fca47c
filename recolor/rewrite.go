package recolor

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Brannigan123/blessed-icon-template/extract"
)

var ErrFileAccess = errors.New("file access error")

var errBinary = errors.New("binary file")

// DefaultExts are the managed icon file extensions.
var DefaultExts = []string{".svg"}

type RewriteOptions struct {
	// Exts of the files to rewrite, DefaultExts when empty. Matching ignores case.
	Exts   []string
	Logger *slog.Logger
}

type Stats struct {
	Written int
	Errors  int
	Skipped int // binary files left out of dest
}

// RewriteTree applies sub to every managed file under src and writes the result at the
// same relative path under dest. A file that cannot be read or written is logged, counted
// in Stats.Errors and skipped. Binary files are counted in Stats.Skipped and not written. Only a src that cannot be walked at all is returned as an
// error.
func RewriteTree(src, dest string, sub *Substituter, opts RewriteOptions) (Stats, error) {
	exts := opts.Exts
	if len(exts) == 0 {
		exts = DefaultExts
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(src)
	if err != nil {
		return Stats{}, fmt.Errorf("invalid source %q: %w", src, err)
	}
	singleFile := !info.IsDir()

	var stats Stats
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == src {
				return err
			}
			stats.Errors++
			logger.Error("could not read directory", "dir", path, "error", fmt.Errorf("%w: %w", ErrFileAccess, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !hasExt(d.Name(), exts) {
			return nil
		}

		rel := d.Name()
		if !singleFile {
			if rel, err = filepath.Rel(src, path); err != nil {
				stats.Errors++
				logger.Error("could not resolve destination", "file", path, "error", err)
				return nil
			}
		}
		target := filepath.Join(dest, rel)

		if err := rewriteFile(path, target, sub); err != nil {
			if errors.Is(err, errBinary) {
				stats.Skipped++
				logger.Debug("skipping binary file", "file", path)
				return nil
			}
			stats.Errors++
			logger.Error("could not rewrite icon", "file", path, "dest", target, "error", err)
			return nil
		}
		stats.Written++
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("unable to walk %q: %w", src, err)
	}

	return stats, nil
}

func rewriteFile(src, dest string, sub *Substituter) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("%w: could not read %q: %w", ErrFileAccess, src, err)
	}
	if extract.IsBinary(content) {
		return errBinary
	}

	if err := writeAtomic(dest, []byte(sub.Apply(string(content)))); err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	return nil
}

// writeAtomic writes through a temporary file in the destination folder and renames it into
// place, so a failed write never leaves a truncated icon behind.
func writeAtomic(dest string, data []byte) (err error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", dir, err)
	}

	outFile, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", dest, err)
	}
	defer func() {
		if err != nil {
			if rmErr := os.Remove(outFile.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				slog.Error("could not remove temporary file", "name", outFile.Name(), "error", rmErr)
			}
		}
	}()

	if _, err = outFile.Write(data); err != nil {
		outFile.Close()
		return fmt.Errorf("could not write %q: %w", dest, err)
	}
	if err = outFile.Sync(); err != nil {
		outFile.Close()
		return fmt.Errorf("could not flush %q: %w", dest, err)
	}
	if err = outFile.Close(); err != nil {
		return fmt.Errorf("could not close %q: %w", dest, err)
	}
	if err = os.Chmod(outFile.Name(), 0o644); err != nil {
		return fmt.Errorf("could not set mode of %q: %w", dest, err)
	}
	if err = os.Rename(outFile.Name(), dest); err != nil {
		return fmt.Errorf("could not rename destination file %q: %w", dest, err)
	}

	return nil
}

// ResetDir removes dest and everything below it, then recreates it empty. A dest that
// contains src is refused.
func ResetDir(dest, src string) error {
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("invalid destination %q: %w", dest, err)
	}
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("invalid source %q: %w", src, err)
	}
	if rel, err := filepath.Rel(absDest, absSrc); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("refusing to clear %q, it contains source %q", dest, src)
	}

	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("%w: could not clear %q: %w", ErrFileAccess, dest, err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("%w: unable to create destination folder %q: %w", ErrFileAccess, dest, err)
	}
	return nil
}

func hasExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
