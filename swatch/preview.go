package swatch

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/Brannigan123/blessed-icon-template/palette"
)

// paletted images hold up to 256 colors, one of them is the transparent background
const maxPaletted = 255

// Render draws one size x size square per palette entry, row by row in palette order. Cells
// past the last entry stay transparent.
func Render(pal palette.Palette, size, columns int) image.Image {
	if len(pal) == 0 || size < 1 || columns < 1 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	cols := min(columns, len(pal))
	rows := (len(pal) + cols - 1) / cols
	dr := image.Rect(0, 0, cols*size, rows*size)

	var dest draw.Image
	if len(pal) <= maxPaletted {
		dest = image.NewPaletted(dr, colorPalette(pal))
	} else {
		dest = image.NewNRGBA(dr)
	}

	for i, e := range pal {
		x, y := (i%cols)*size, (i/cols)*size
		cell := image.Rect(x, y, x+size, y+size)
		draw.Draw(dest, cell, image.NewUniform(e.Color), image.Point{}, draw.Src)
	}
	return dest
}

func imageFormat(name string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".png", ".gif", ".bmp":
		return ext[1:], nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", ext)
	}
}

func save(img image.Image, dest string) error {
	outType, err := imageFormat(dest)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", filepath.Dir(dest), err)
	}

	return writeTemp(dest, func(outFile *os.File) error {
		switch outType {
		case "gif":
			if err := gif.Encode(outFile, img, nil); err != nil {
				return fmt.Errorf("could not encode GIF destination %q: %w", dest, err)
			}
		case "png":
			enc := png.Encoder{
				CompressionLevel: png.BestCompression,
				BufferPool:       pngPool,
			}
			if err := enc.Encode(outFile, img); err != nil {
				return fmt.Errorf("could not encode PNG destination %q: %w", dest, err)
			}
		case "bmp":
			if err := bmp.Encode(outFile, img); err != nil {
				return fmt.Errorf("could not encode BMP destination %q: %w", dest, err)
			}
		case "tiff":
			if err := tiff.Encode(outFile, img, nil); err != nil {
				return fmt.Errorf("could not encode TIFF destination %q: %w", dest, err)
			}
		}
		return nil
	})
}

func colorPalette(pal palette.Palette) color.Palette {
	p := make(color.Palette, 0, len(pal)+1)
	p = append(p, color.Transparent)
	for _, e := range pal {
		p = append(p, e.Color)
	}
	return p
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
