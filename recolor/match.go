// Package recolor maps extracted color literals onto a palette and rewrites text and file
// trees with template placeholders for the matched palette entries.
package recolor

import (
	"fmt"
	"strings"

	"github.com/Brannigan123/blessed-icon-template/cielab"
	"github.com/Brannigan123/blessed-icon-template/palette"
)

// Group lists the literals that matched one palette entry.
type Group struct {
	Name     string
	Literals []string
}

// Map is the substitution map of one source tree. Long holds #RRGGBB literals and Short
// holds #RGB literals, each grouped by palette entry in palette order. A literal belongs to
// exactly one group of exactly one grouping.
type Map struct {
	Long  []Group
	Short []Group
}

// Groupings returns the groupings in the order they must be applied.
func (m *Map) Groupings() [2][]Group {
	return [2][]Group{m.Long, m.Short}
}

// Lookup returns the palette entry a literal was matched to. Case is ignored.
func (m *Map) Lookup(literal string) (string, bool) {
	for _, grouping := range m.Groupings() {
		for _, g := range grouping {
			for _, lit := range g.Literals {
				if strings.EqualFold(lit, literal) {
					return g.Name, true
				}
			}
		}
	}
	return "", false
}

// Len is the number of literals in the map.
func (m *Map) Len() int {
	n := 0
	for _, grouping := range m.Groupings() {
		for _, g := range grouping {
			n += len(g.Literals)
		}
	}
	return n
}

// Build matches every literal to its nearest palette entry. Literals that cannot be parsed
// are left out and reported in errs. An empty index fails the whole build with
// palette.ErrEmptyPalette.
func Build(idx *palette.LabIndex, literals []string) (m *Map, errs []error) {
	if idx.Len() == 0 {
		return nil, []error{palette.ErrEmptyPalette}
	}

	names := idx.Names()
	long := make([][]string, len(names))
	short := make([][]string, len(names))
	seen := make(map[string]struct{}, len(literals))

	for _, lit := range literals {
		key := strings.ToLower(lit)
		if _, ok := seen[key]; ok {
			continue
		}

		lc, err := cielab.FromHex(lit)
		if err != nil {
			errs = append(errs, fmt.Errorf("skipping literal: %w", err))
			continue
		}
		seen[key] = struct{}{}

		i := idx.Index(lc)
		if len(lit) == 4 {
			short[i] = append(short[i], lit)
		} else {
			long[i] = append(long[i], lit)
		}
	}

	return &Map{
		Long:  collectGroups(names, long),
		Short: collectGroups(names, short),
	}, errs
}

func collectGroups(names []string, lits [][]string) []Group {
	var groups []Group
	for i, name := range names {
		if len(lits[i]) > 0 {
			groups = append(groups, Group{Name: name, Literals: lits[i]})
		}
	}
	return groups
}
