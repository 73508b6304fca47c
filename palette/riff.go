package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/image/riff"

	"github.com/Brannigan123/blessed-icon-template/cielab"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

const palVersion = 0x0300

// RIFF palettes carry no names; entries are named by position.
func riffEntryName(i int) string {
	return fmt.Sprintf("color%d", i)
}

// ReadRIFF loads every color of every palette chunk in a RIFF PAL stream, in file order.
func ReadRIFF(r io.Reader) (Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	colors, err := readChunks(rd, string(formType[:]), nil)
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, ErrEmptyPalette
	}

	entries := make([]Entry, len(colors))
	for i, c := range colors {
		entries[i] = Entry{Name: riffEntryName(i), Color: c}
	}
	return New(entries...)
}

func readChunks(r *riff.Reader, ident string, res []cielab.RGB) ([]cielab.RGB, error) {
	for n := 0; ; n++ {
		id, size, data, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return res, nil
			}
			return res, fmt.Errorf("could not read chunk %q#%d: %w", ident, n, err)
		}

		switch id {
		case riff.LIST:
			listType, list, lerr := riff.NewListReader(size, data)
			if lerr != nil {
				return res, fmt.Errorf("could not read list from chunk %q#%d: %w", ident, n, lerr)
			} else if listType != palType {
				return res, fmt.Errorf("chunk %q#%d unsupported type: %s", ident, n, string(listType[:]))
			}

			if res, err = readChunks(list, fmt.Sprintf("%s%d.%s", ident, n, listType[:]), res); err != nil {
				return res, err
			}
		case dataType:
			if res, err = readPaletteChunk(data, fmt.Sprintf("%s%d", ident, n), res); err != nil {
				return res, err
			}
		default:
			return res, fmt.Errorf("unsupported chunk type in %q#%d: %s", ident, n, id)
		}
	}
}

func readPaletteChunk(r io.Reader, ident string, res []cielab.RGB) ([]cielab.RGB, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return res, fmt.Errorf("could not read header from chunk %s: %w", ident, err)
	}

	if ver := binary.LittleEndian.Uint16(header[0:2]); ver != palVersion {
		return res, fmt.Errorf("unsupported palette version in chunk %s: %#x", ident, ver)
	}

	count := int(binary.LittleEndian.Uint16(header[2:4]))
	var entry [4]byte
	for i := range count {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return res, fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, count, ident, err)
		}
		res = append(res, cielab.RGB{R: entry[0], G: entry[1], B: entry[2]})
	}

	return res, nil
}

// WriteRIFF writes p as a single chunk RIFF PAL document and returns the number of colors
// written. Names are not stored.
func (p Palette) WriteRIFF(w io.Writer) (int64, error) {
	if len(p) > 0xFFFF {
		return 0, fmt.Errorf("too many colors for a RIFF palette: %d", len(p))
	}

	chunkSize := 4 + len(p)*4 // palVersion + palNumEntries + 4 bytes/color
	docSize := 4 + 4 + 4 + chunkSize // form type + chunk id + chunk size + chunk

	buf := make([]byte, 0, 8+docSize)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(docSize))
	buf = append(buf, palType[:]...)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(chunkSize))
	buf = binary.LittleEndian.AppendUint16(buf, palVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(p)))
	for _, e := range p {
		buf = append(buf, e.Color.R, e.Color.G, e.Color.B, 0x00)
	}

	if err := writeBytes(w, buf); err != nil {
		return 0, fmt.Errorf("could not save palette: %w", err)
	}
	return int64(len(p)), nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}
