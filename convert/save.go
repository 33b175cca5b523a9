package convert

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"pixelart/pixbuf"
	"pixelart/quantize"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// outputType resolves the "same" format against the decoded type. Formats
// without an encoder fall back to png.
func outputType(format, imgType string) string {
	if format != "same" {
		return format
	}
	switch imgType {
	case "png", "gif", "jpeg", "bmp", "tiff":
		return imgType
	}
	return "png"
}

func save(buf *pixbuf.Buffer, outType, destDir, srcName string) (err error) {
	oldExt := filepath.Ext(srcName)
	destName := fmt.Sprintf("%s.%s", srcName[:len(srcName)-len(oldExt)], outType)

	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		} else {
			os.Remove(outFile.Name())
		}
	}()

	img := buf.Image()
	switch outType {
	case "gif":
		if err = gif.Encode(outFile, paletted(buf), nil); err != nil {
			return fmt.Errorf("could not encode GIF destination %q: %w", destName, err)
		}
	case "jpeg":
		if err = jpeg.Encode(outFile, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG destination %q: %w", destName, err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", destName, err)
		}
	case "bmp":
		if err = bmp.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", destName, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", destName, err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", outType)
	}

	canRename = true
	return nil
}

// paletted converts buf to a paletted image. Buffers with up to 256
// colours keep them exactly; larger ones are reduced with median cut.
func paletted(buf *pixbuf.Buffer) *image.Paletted {
	colors := quantize.Distinct(buf)
	pal := quantize.Palette(colors)
	if len(colors) > 256 {
		pal = quantize.MedianCut(colors, 256)
	}

	cp := make(color.Palette, len(pal))
	for i, c := range pal {
		cp[i] = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}

	r := image.Rect(0, 0, buf.Width, buf.Height)
	dest := image.NewPaletted(r, cp)
	draw.Draw(dest, r, buf.Image(), r.Min, draw.Src)
	return dest
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
