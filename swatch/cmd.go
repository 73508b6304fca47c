package swatch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/Brannigan123/blessed-icon-template/palette"
)

type CLICmd struct {
	Match struct {
		Palette string   `help:"Palette file, YAML color scheme or RIFF PAL" required:"" type:"existingfile"`
		Colors  []string `arg:"" help:"Hex color literals to match (#RGB or #RRGGBB)"`
	} `cmd:"" help:"Print the nearest palette color of each literal"`
	Export struct {
		Palette string `help:"Palette file, YAML color scheme or RIFF PAL" required:"" type:"existingfile"`
		Out     string `help:"Destination PAL file" required:"" type:"path"`
	} `cmd:"" help:"Write a palette as a RIFF PAL file"`
	Preview struct {
		Palette string `help:"Palette file, YAML color scheme or RIFF PAL" required:"" type:"existingfile"`
		Out     string `help:"Destination image, format taken from the extension (png, gif, bmp, tiff)" required:"" type:"path"`
		Size    int    `help:"Swatch size in pixels" default:"32"`
		Columns int    `help:"Swatches per row" default:"8"`
	} `cmd:"" help:"Render a palette as an image"`

	pal palette.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var palPath string
	switch kctx.Selected().Name {
	case "match":
		palPath = c.Match.Palette
	case "export":
		palPath = c.Export.Palette
	case "preview":
		palPath = c.Preview.Palette
		if c.Preview.Size < 1 {
			return fmt.Errorf("invalid swatch size: %d", c.Preview.Size)
		}
		if c.Preview.Columns < 1 {
			return fmt.Errorf("invalid column count: %d", c.Preview.Columns)
		}
		if _, err := imageFormat(c.Preview.Out); err != nil {
			return err
		}
	default:
		return nil
	}

	pal, err := palette.Load(palPath)
	if err != nil {
		return err
	}
	if len(pal) == 0 {
		return fmt.Errorf("%q: %w", palPath, palette.ErrEmptyPalette)
	}
	c.pal = pal
	return nil
}

func (c *CLICmd) Run(subCmd string) error {
	switch subCmd {
	case "match":
		return Match(os.Stdout, c.pal, c.Match.Colors)
	case "export":
		return export(c.pal, c.Export.Out)
	case "preview":
		img := Render(c.pal, c.Preview.Size, c.Preview.Columns)
		return save(img, c.Preview.Out)
	}
	return fmt.Errorf("unsupported swatch command: %s", subCmd)
}

func export(pal palette.Palette, dest string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", filepath.Dir(dest), err)
	}

	return writeTemp(dest, func(f *os.File) error {
		if _, err := pal.WriteRIFF(f); err != nil {
			return fmt.Errorf("could not write palette %q: %w", dest, err)
		}
		return nil
	})
}

// writeTemp fills a temporary file next to dest and renames it over dest once write succeeded.
func writeTemp(dest string, write func(*os.File) error) (err error) {
	outFile, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", dest, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", dest, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", dest, defErr)
		}

		if canRename && err == nil {
			if err = os.Chmod(outFile.Name(), 0o644); err != nil {
				err = fmt.Errorf("could not set mode of %q: %w", dest, err)
			} else if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", dest, defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	if err = write(outFile); err != nil {
		return err
	}

	canRename = true
	return nil
}
