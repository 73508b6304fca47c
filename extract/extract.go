// Package extract collects the distinct hex color literals used in a file or directory tree.
package extract

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
)

var ErrExtraction = errors.New("color extraction failed")

// Extractor finds the distinct color literals under root, a file or a directory.
type Extractor interface {
	Extract(root string) (*Result, error)
}

type Result struct {
	// Literals in first-seen order, one spelling per color literal.
	Literals []string
	// Skipped counts files that could not be read or looked binary.
	Skipped int
}

// hexRun matches whole runs of hex digits; only runs of exactly 3 or 6 digits are colors.
var hexRun = regexp.MustCompile(`#[0-9A-Fa-f]+`)

// binaryProbe is how much of a file is checked for NUL bytes, the same heuristic grep -I uses.
const binaryProbe = 8000

// IsBinary reports whether content looks like a binary file rather than text.
func IsBinary(content []byte) bool {
	return bytes.IndexByte(content[:min(len(content), binaryProbe)], 0) >= 0
}

// IsReference reports whether the token starting at text[at] is part of a character
// reference (&#160;) or a fragment reference (url(#id), href="#id") instead of a color.
func IsReference(text string, at int) bool {
	head := text[:at]
	if strings.HasSuffix(head, "&") || strings.HasSuffix(head, "url(") {
		return true
	}
	return strings.HasSuffix(head, `href="`) || strings.HasSuffix(head, "href='")
}

// IsLiteral reports whether tok is a #RGB or #RRGGBB token.
func IsLiteral(tok string) bool {
	return len(tok) == 4 || len(tok) == 7
}

// collector deduplicates literals case-insensitively, keeping the first spelling.
type collector struct {
	seen     map[string]struct{}
	literals []string
}

func newCollector() *collector {
	return &collector{seen: make(map[string]struct{})}
}

func (c *collector) add(tok string) {
	if !IsLiteral(tok) {
		return
	}
	key := strings.ToLower(tok)
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.literals = append(c.literals, tok)
}

func (c *collector) scan(text string) {
	for _, loc := range hexRun.FindAllStringIndex(text, -1) {
		if IsReference(text, loc[0]) {
			continue
		}
		c.add(text[loc[0]:loc[1]])
	}
}

// findLiterals returns the distinct literals in text, in first-seen order.
func findLiterals(text string) []string {
	c := newCollector()
	c.scan(text)
	return c.literals
}

func matchesExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
