package swatch

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Brannigan123/blessed-icon-template/cielab"
	"github.com/Brannigan123/blessed-icon-template/palette"
)

// Match writes one line per literal with the nearest palette color, its hex value and the
// CIELAB distance. Invalid literals are reported inline and make Match return an error once
// all lines are out.
func Match(w io.Writer, pal palette.Palette, literals []string) error {
	idx := palette.NewLabIndex(pal)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	var errs []error
	for _, lit := range literals {
		lc, err := cielab.FromHex(lit)
		if err != nil {
			errs = append(errs, err)
			fmt.Fprintf(tw, "%s\t-\t-\tinvalid\n", lit)
			continue
		}

		name, err := idx.Nearest(lc)
		if err != nil {
			return err
		}
		pc, _ := idx.Lab(name)
		rgb, _ := pal.Lookup(name)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\n", lit, name, rgb.Hex(), cielab.Distance(lc, pc))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("could not write matches: %w", err)
	}
	return errors.Join(errs...)
}
