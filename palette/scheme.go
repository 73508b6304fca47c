package palette

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Brannigan123/blessed-icon-template/cielab"
)

// LoadScheme reads a YAML color scheme. Colors are taken from a top level "colors" mapping
// when there is one, otherwise from the top level mapping itself:
//
//	colors:
//	  black: "#171421"
//	  red: "#E66D76"
//
// Entries keep their document order.
func LoadScheme(r io.Reader) (Palette, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPalette
		}
		return nil, fmt.Errorf("could not parse color scheme: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyPalette
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("color scheme must be a mapping, got line %d", root.Line)
	}

	if colors := mappingValue(root, "colors"); colors != nil {
		if colors.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: colors must be a mapping", colors.Line)
		}
		root = colors
	}

	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: color %q must be a hex string", val.Line, key.Value)
		}

		c, err := cielab.ParseHex(val.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: color %q: %w", val.Line, key.Value, err)
		}
		entries = append(entries, Entry{Name: key.Value, Color: c})
	}

	if len(entries) == 0 {
		return nil, ErrEmptyPalette
	}
	return New(entries...)
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
