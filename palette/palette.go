package palette

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Brannigan123/blessed-icon-template/cielab"
)

type Entry struct {
	Name  string
	Color cielab.RGB
}

// Palette is an ordered set of named colors. Order matters: the first entry wins when two
// entries are equally close to a color.
type Palette []Entry

func New(entries ...Entry) (Palette, error) {
	p := make(Palette, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("palette entry %d has no name", i)
		}
		if _, ok := seen[e.Name]; ok {
			return nil, fmt.Errorf("duplicate palette entry %q", e.Name)
		}
		seen[e.Name] = struct{}{}
		p = append(p, e)
	}

	return p, nil
}

// FromHex builds a palette from name/literal pairs, in the order given.
func FromHex(pairs ...[2]string) (Palette, error) {
	entries := make([]Entry, 0, len(pairs))
	for _, pair := range pairs {
		c, err := cielab.ParseHex(pair[1])
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", pair[0], err)
		}
		entries = append(entries, Entry{Name: pair[0], Color: c})
	}

	return New(entries...)
}

func (p Palette) Names() []string {
	names := make([]string, len(p))
	for i, e := range p {
		names[i] = e.Name
	}
	return names
}

func (p Palette) Lookup(name string) (cielab.RGB, bool) {
	for _, e := range p {
		if e.Name == name {
			return e.Color, true
		}
	}
	return cielab.RGB{}, false
}

// Load reads a palette from a RIFF .pal file or a YAML color scheme, picked by extension.
func Load(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", path, err)
	}
	defer f.Close()

	var p Palette
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pal":
		p, err = ReadRIFF(f)
	default:
		p, err = LoadScheme(f)
	}
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", path, err)
	}

	return p, nil
}
