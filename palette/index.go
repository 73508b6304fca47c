package palette

import (
	"errors"
	"math"

	"github.com/Brannigan123/blessed-icon-template/cielab"
)

var ErrEmptyPalette = errors.New("empty palette")

// LabIndex holds the L*a*b* coordinates of every palette entry, in palette order.
type LabIndex struct {
	names []string
	labs  []cielab.Lab
}

func NewLabIndex(p Palette) *LabIndex {
	idx := &LabIndex{
		names: make([]string, len(p)),
		labs:  make([]cielab.Lab, len(p)),
	}
	for i, e := range p {
		idx.names[i] = e.Name
		idx.labs[i] = cielab.Convert(e.Color)
	}

	return idx
}

func (idx *LabIndex) Len() int {
	return len(idx.names)
}

func (idx *LabIndex) Names() []string {
	return append([]string(nil), idx.names...)
}

func (idx *LabIndex) Lab(name string) (cielab.Lab, bool) {
	for i, n := range idx.names {
		if n == name {
			return idx.labs[i], true
		}
	}
	return cielab.Lab{}, false
}

// Index returns the position of the entry closest to lc, or -1 for an empty index.
// Ties go to the earliest entry.
func (idx *LabIndex) Index(lc cielab.Lab) int {
	ret, bestSum := -1, math.Inf(1)
	for i, v := range idx.labs {
		dL := lc.L - v.L
		da := lc.A - v.A
		db := lc.B - v.B
		sum := dL*dL + da*da + db*db
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

func (idx *LabIndex) Nearest(lc cielab.Lab) (string, error) {
	i := idx.Index(lc)
	if i < 0 {
		return "", ErrEmptyPalette
	}
	return idx.names[i], nil
}
