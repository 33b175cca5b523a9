// Package palette reads and writes palette files: Microsoft RIFF "PAL "
// documents, Lospec-style hex lists and PNG swatches.
package palette

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pixelart/quantize"
)

// Extensions understood by Load and Save.
const (
	ExtRIFF   = ".pal"
	ExtHex    = ".hex"
	ExtSwatch = ".png"
)

var ErrEmpty = errors.New("empty palette")

// Load reads the palette stored at path, choosing the format by extension.
// A RIFF document holding several palettes yields the first one.
func Load(path string) (quantize.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", path, err)
	}
	defer f.Close()

	var pal quantize.Palette
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtRIFF:
		var pals []quantize.Palette
		if pals, err = ReadRIFF(f); err == nil && len(pals) > 0 {
			pal = pals[0]
		}
	case ExtHex, ".txt":
		pal, err = ReadHex(f)
	default:
		return nil, fmt.Errorf("unsupported palette format: %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read palette %q: %w", path, err)
	}
	if len(pal) == 0 {
		return nil, fmt.Errorf("could not read palette %q: %w", path, ErrEmpty)
	}

	return pal, nil
}

// Save writes pal to path, choosing the format by extension. The file is
// written next to its destination and renamed into place once complete.
func Save(path string, pal quantize.Palette) error {
	if len(pal) == 0 {
		return ErrEmpty
	}

	var encode func(io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtRIFF:
		encode = func(w io.Writer) error {
			_, err := WriteRIFF(w, pal)
			return err
		}
	case ExtHex, ".txt":
		encode = func(w io.Writer) error {
			_, err := WriteHex(w, pal)
			return err
		}
	case ExtSwatch:
		encode = func(w io.Writer) error {
			return png.Encode(w, Swatch(pal, DefaultTileSize).Image())
		}
	default:
		return fmt.Errorf("unsupported palette format: %q", ext)
	}

	return writeFile(path, encode)
}

func writeFile(path string, encode func(io.Writer) error) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	out, err := os.CreateTemp(dir, name)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", name, err)
	}
	canRename := false
	defer func() {
		if defErr := out.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", name, defErr)
		}
		if defErr := out.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", name, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(out.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", name, defErr)
			}
		} else {
			os.Remove(out.Name())
		}
	}()

	if err = encode(out); err != nil {
		return fmt.Errorf("could not encode %q: %w", name, err)
	}

	canRename = true
	return nil
}
