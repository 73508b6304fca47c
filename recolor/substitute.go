package recolor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Brannigan123/blessed-icon-template/extract"
)

// DefaultPlaceholder is the template reference written in place of a matched color.
// The %s marker receives the palette entry name.
const DefaultPlaceholder = "{{ theme.colors.%s }}"

type rule struct {
	re   *regexp.Regexp
	repl string
}

// Substituter replaces color literals with placeholders. It is safe for concurrent use.
type Substituter struct {
	rules []rule
}

// Compile prepares one case-insensitive alternation per palette entry, #RRGGBB groups first
// so that no #RGB pattern ever sees a six digit literal.
func Compile(m *Map, placeholder string) (*Substituter, error) {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	if strings.Count(placeholder, "%s") != 1 {
		return nil, fmt.Errorf("placeholder %q must contain exactly one %%s", placeholder)
	}

	s := &Substituter{}
	for _, grouping := range m.Groupings() {
		for _, g := range grouping {
			if len(g.Literals) == 0 {
				continue
			}

			alts := make([]string, len(g.Literals))
			for i, lit := range g.Literals {
				alts[i] = regexp.QuoteMeta(strings.TrimPrefix(lit, "#"))
			}
			re, err := regexp.Compile(`(?i)#(?:` + strings.Join(alts, "|") + `)`)
			if err != nil {
				return nil, fmt.Errorf("could not compile pattern for %q: %w", g.Name, err)
			}

			s.rules = append(s.rules, rule{
				re:   re,
				repl: strings.Replace(placeholder, "%s", g.Name, 1),
			})
		}
	}

	return s, nil
}

// Apply returns text with every whole-token occurrence of every mapped literal replaced.
func (s *Substituter) Apply(text string) string {
	for _, r := range s.rules {
		text = replaceTokens(r.re, text, r.repl)
	}
	return text
}

// Substitute applies m with the default placeholder.
func Substitute(text string, m *Map) (string, error) {
	s, err := Compile(m, DefaultPlaceholder)
	if err != nil {
		return "", err
	}
	return s.Apply(text), nil
}

// replaceTokens replaces the non-overlapping matches of re in one left-to-right pass,
// leaving matches that run into further hex digits (#abc in #abcd) and character or
// fragment references (&#160;, href="#bad") untouched.
func replaceTokens(re *regexp.Regexp, text, repl string) string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range locs {
		if loc[1] < len(text) && isHexDigit(text[loc[1]]) {
			continue
		}
		if extract.IsReference(text, loc[0]) {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(repl)
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
