package extract

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"unicode"
)

// Grep shells out to grep(1). It exists for parity with setups that already rely on it;
// Scanner is the default.
type Grep struct {
	// Path of the grep binary, looked up in $PATH when empty.
	Path   string
	Exts   []string
	Logger *slog.Logger
}

var _ Extractor = (*Grep)(nil)

// tokenPattern also matches the reference prefixes IsReference looks for, so that -o output
// keeps enough context to drop them.
const tokenPattern = `(&|url\(|href=["'])?#[0-9A-Fa-f]+`

func (g *Grep) args(root string) []string {
	args := []string{"-rohIE", tokenPattern}
	for _, ext := range g.Exts {
		args = append(args, "--include=*"+foldGlob(ext))
	}
	return append(args, "--", root)
}

// foldGlob turns ".svg" into ".[sS][vV][gG]", --include has no case-insensitive form.
func foldGlob(ext string) string {
	var b strings.Builder
	for _, r := range ext {
		lower, upper := unicode.ToLower(r), unicode.ToUpper(r)
		switch {
		case lower != upper:
			b.WriteString("[" + string(lower) + string(upper) + "]")
		case strings.ContainsRune(`*?[]\`, r):
			b.WriteString(`\` + string(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (g *Grep) Extract(root string) (*Result, error) {
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bin := g.Path
	if bin == "" {
		bin = "grep"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command(path, g.args(root)...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && exitErr.ExitCode() == 1:
		// no match
		return &Result{}, nil
	case errors.As(err, &exitErr) && exitErr.ExitCode() == 2 && len(out) > 0:
		// some files were unreadable, the rest was scanned
		logger.Warn("grep reported errors", "root", root, "stderr", strings.TrimSpace(stderr.String()))
	default:
		return nil, fmt.Errorf("%w: grep %q: %w: %s", ErrExtraction, root, err, strings.TrimSpace(stderr.String()))
	}

	res := &Result{Skipped: countLines(stderr.Bytes())}
	c := newCollector()
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(tok, "#") {
			// reference prefix matched, not a color
			continue
		}
		c.add(tok)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading grep output: %w", ErrExtraction, err)
	}

	res.Literals = c.literals
	return res, nil
}

func countLines(b []byte) int {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	return bytes.Count(b, []byte{'\n'}) + 1
}
