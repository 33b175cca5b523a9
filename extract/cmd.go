// Package extract implements the command that builds a palette from an
// image and saves it as a palette file.
package extract

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"pixelart/palette"
	"pixelart/pixbuf"
	"pixelart/quantize"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Image   string `arg:"" help:"Image to build the palette from" type:"existingfile"`
	Out     string `help:"Palette file to write (.pal RIFF, .hex list or .png swatch). Nothing is written when empty." short:"o"`
	Method  string `help:"Quantization method (median-cut, k-means, octree, dominant)" enum:"median-cut,k-means,octree,dominant" default:"median-cut"`
	Colors  int    `help:"Number of colors" default:"16"`
	MaxSize int    `help:"Scale the image so the longer side is at most this many pixels first (0 keeps the source size)" default:"400"`
	Sort    bool   `help:"Order colors from darkest to brightest"`
	Seed    uint64 `help:"Seed for k-means; 0 picks a random seed"`

	method quantize.Method `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var err error
	if c.method, err = quantize.ParseMethod(c.Method); err != nil {
		return err
	} else if c.method == quantize.MethodNone {
		return fmt.Errorf("a quantization method is required")
	}

	switch {
	case c.Colors < 1 || c.Colors > 256:
		return fmt.Errorf("invalid color count: %d", c.Colors)
	case c.MaxSize < 0:
		return fmt.Errorf("invalid max size: %d", c.MaxSize)
	}

	if c.Out != "" {
		switch ext := filepath.Ext(c.Out); ext {
		case palette.ExtRIFF, palette.ExtHex, palette.ExtSwatch:
		default:
			return fmt.Errorf("unsupported palette format: %q", ext)
		}
	}

	return nil
}

func (c *CLICmd) Run(stdout io.Writer) error {
	logger := slog.Default().With("file", c.Image)

	src, err := load(c.Image, c.MaxSize)
	if err != nil {
		return err
	}

	var opts []quantize.Option
	if c.Seed != 0 {
		opts = append(opts, quantize.WithRand(rand.New(rand.NewPCG(c.Seed, c.Seed))))
	}
	pal := quantize.New(opts...).Palette(src, c.method, c.Colors)
	if len(pal) == 0 {
		return fmt.Errorf("could not build a palette from %q", c.Image)
	}
	if c.Sort {
		palette.SortByBrightness(pal)
	}

	remapped := src.Clone()
	quantize.Remap(remapped, pal)
	d := quantize.Measure(src, remapped)
	logger.Info("palette built", "method", c.method, "colors", len(pal),
		"distortion", d.Mean, "stddev", d.StdDev)

	for _, col := range pal {
		if _, err := fmt.Fprintln(stdout, palette.Hex(col)); err != nil {
			return fmt.Errorf("could not print palette: %w", err)
		}
	}

	if c.Out != "" {
		if err := palette.Save(c.Out, pal); err != nil {
			return fmt.Errorf("could not save palette %q: %w", c.Out, err)
		}
		logger.Info("palette saved", "dest", c.Out)
	}

	return nil
}

func load(path string, maxSize int) (*pixbuf.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}

	return pixbuf.Fit(img, maxSize), nil
}
