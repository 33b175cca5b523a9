package palette

import (
	"encoding/binary"
	"fmt"
	"io"

	"pixelart/pixbuf"
	"pixelart/quantize"

	"golang.org/x/image/riff"
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

// ReadRIFF reads every palette stored in a RIFF "PAL " stream, descending
// into nested PAL lists.
func ReadRIFF(r io.Reader) ([]quantize.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	return readPalettes(rd, string(formType[:]))
}

func readPalettes(r *riff.Reader, ident string) ([]quantize.Palette, error) {
	var res []quantize.Palette

	for {
		id, size, data, err := r.Next()
		if err != nil {
			if err == io.EOF {
				break
			}

			return res, fmt.Errorf("could not read chunk %q#%d: %w", ident, len(res), err)
		}

		if id == riff.LIST {
			listType, list, lerr := riff.NewListReader(size, data)
			if lerr != nil {
				return res, fmt.Errorf("could not read list from chunk %q#%d: %w", ident, len(res), lerr)
			} else if listType != palType {
				return res, fmt.Errorf("chunk %q#%d unsupported type: %s", ident, len(res), string(listType[:]))
			}

			listRes, lerr := readPalettes(list, fmt.Sprintf("%s%d.%s", ident, len(res), listType[:]))
			res = append(res, listRes...)
			if lerr != nil {
				return res, lerr
			}
			continue
		} else if id != dataType {
			return res, fmt.Errorf("unsupported chunk type in %q#%d: %s", ident, len(res), id)
		}

		pal, err := readPalette(data, fmt.Sprintf("%s%d", ident, len(res)))
		if err != nil {
			return res, err
		}

		res = append(res, pal)
	}

	return res, nil
}

func readPalette(r io.Reader, ident string) (quantize.Palette, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("could not read header from chunk %s: %w", ident, err)
	}

	if ver := binary.LittleEndian.Uint16(head[:2]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %#04x", ident, ver)
	}

	count := int(binary.LittleEndian.Uint16(head[2:]))
	res := make(quantize.Palette, 0, count)
	var entry [4]byte
	for i := range count {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return res, fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, count, ident, err)
		}

		res = append(res, pixbuf.Color{R: entry[0], G: entry[1], B: entry[2]})
	}

	return res, nil
}

// WriteRIFF writes pals as one RIFF "PAL " document, a data chunk per
// palette, and returns the number of colours written.
func WriteRIFF(w io.Writer, pals ...quantize.Palette) (int64, error) {
	n := 4
	for _, pal := range pals {
		if len(pal) > 0xFFFF {
			return 0, fmt.Errorf("palette too large for RIFF: %d colors", len(pal))
		}
		n += 4 + 4 + 4 + len(pal)*4 // chunk id + chunk size + palVersion + palNumEntries + 4 bytes/color
	}

	if err := writeBytes(w, riffType[:]); err != nil {
		return 0, fmt.Errorf("could not write RIFF magic: %w", err)
	}

	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return 0, fmt.Errorf("could not write document size: %w", err)
	}

	if err := writeBytes(w, palType[:]); err != nil {
		return 0, fmt.Errorf("could not write content type: %w", err)
	}

	var count int64
	for i, pal := range pals {
		n, err := writePalette(w, pal)
		count += n
		if err != nil {
			return count, fmt.Errorf("could not write chunk %d: %w", i, err)
		}
	}

	return count, nil
}

func writePalette(w io.Writer, pal quantize.Palette) (int64, error) {
	if err := writeBytes(w, dataType[:]); err != nil {
		return 0, fmt.Errorf("could not write type: %w", err)
	}

	n := 4 + len(pal)*4
	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return 0, fmt.Errorf("could not write chunk size: %w", err)
	}

	if err := writeBytes(w, binary.LittleEndian.AppendUint16(nil, palVersion)); err != nil {
		return 0, fmt.Errorf("could not write palette version: %w", err)
	}

	if err := writeBytes(w, binary.LittleEndian.AppendUint16(nil, uint16(len(pal)))); err != nil {
		return 0, fmt.Errorf("could not write number of colors: %w", err)
	}

	for i, c := range pal {
		if err := writeBytes(w, []byte{c.R, c.G, c.B, 0x00}); err != nil {
			return int64(i), fmt.Errorf("could not write color %d/%d: %w", i, len(pal), err)
		}
	}

	return int64(len(pal)), nil
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
