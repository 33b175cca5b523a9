// Package convert implements the batch command turning every image in a
// folder into pixel art.
package convert

import (
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync/atomic"

	"pixelart/edge"
	"pixelart/palette"
	"pixelart/parallel"
	"pixelart/pipeline"
	"pixelart/pixbuf"
	"pixelart/quantize"
	"pixelart/tone"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan    string `help:"Source folder to scan" default:"."`
	Dest    string `help:"Destination folder for processed pictures. Relative to scan dir if not absolute. If same as scan dir, will overwrite source files." default:"pixelart"`
	Format  string `help:"Output format; 'same' keeps the source format where it can be encoded" enum:"same,png,gif,jpeg,bmp,tiff" default:"png"`
	MaxSize int    `help:"Scale sources so the longer side is at most this many pixels before processing (0 keeps the source size)" default:"400"`
	Bands   int    `help:"Goroutines per image for the per-pixel stages (0 means one per CPU)" default:"1"`
	Seed    uint64 `help:"Seed for k-means; 0 picks a random seed per run"`

	PixelSize  int `help:"Edge length of a mosaic block" default:"10" group:"pixelate"`
	Brightness int `help:"Brightness percentage, 100 is neutral" default:"100" group:"tone"`
	Contrast   int `help:"Contrast percentage, 100 is neutral" default:"100" group:"tone"`
	Saturation int `help:"Saturation percentage, 100 is neutral" default:"100" group:"tone"`
	Levels     int `help:"Posterization levels per channel, 256 disables" default:"256" group:"tone"`

	Swap string `help:"Palette swap preset (none, grayscale, sepia, cool, warm, vintage, neon, pastel)" default:"none" group:"tone"`

	Method  string `help:"Quantization method (none, median-cut, k-means, octree, dominant)" default:"median-cut" group:"palette"`
	Colors  int    `help:"Palette size for quantization" default:"32" group:"palette"`
	Palette string `help:"Fixed palette file (.pal RIFF or .hex) to remap to instead of quantizing" type:"existingfile" group:"palette"`

	Outline         string `help:"Outline detection (none, simple, sobel, canny, laplacian)" default:"none" group:"edges"`
	OutlineStrength int    `help:"Outline strength percentage" default:"50" group:"edges"`
	Edges           string `help:"Edge detection (none, sobel, canny, laplacian)" default:"none" group:"edges"`
	EdgeStrength    int    `help:"Edge strength percentage" default:"50" group:"edges"`

	settings pipeline.Settings `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	switch {
	case c.MaxSize < 0:
		return fmt.Errorf("invalid max size: %d", c.MaxSize)
	case c.PixelSize < 1:
		return fmt.Errorf("invalid pixel size: %d", c.PixelSize)
	case c.Colors < 1 || c.Colors > 256:
		return fmt.Errorf("invalid color count: %d", c.Colors)
	case c.Levels < 1 || c.Levels > tone.MaxLevels:
		return fmt.Errorf("invalid posterization levels: %d", c.Levels)
	}

	s, err := c.Settings()
	if err != nil {
		return err
	}
	c.settings = s

	return nil
}

// Settings builds the pipeline settings described by the flags.
func (c *CLICmd) Settings() (pipeline.Settings, error) {
	s := pipeline.Settings{
		PixelSize:           c.PixelSize,
		Brightness:          c.Brightness,
		Contrast:            c.Contrast,
		Saturation:          c.Saturation,
		ColorCount:          c.Colors,
		PosterizationLevels: c.Levels,
		OutlineStrength:     c.OutlineStrength,
		EdgeStrength:        c.EdgeStrength,
	}

	var err error
	if s.PaletteSwap, err = tone.ParsePreset(c.Swap); err != nil {
		return s, err
	}
	if s.QuantizationMethod, err = quantize.ParseMethod(c.Method); err != nil {
		return s, err
	}
	if s.OutlineDetection, err = edge.ParseMethod(c.Outline); err != nil {
		return s, err
	}
	if s.EdgeDetection, err = edge.ParseMethod(c.Edges); err != nil {
		return s, err
	}
	if s.EdgeDetection == edge.MethodSimple {
		return s, fmt.Errorf("unsupported edge detection method: %q", c.Edges)
	}

	if c.Palette != "" {
		if s.Palette, err = palette.Load(c.Palette); err != nil {
			return s, err
		}
	}

	return s, nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	if len(c.settings.Palette) > 0 {
		slog.Info("applying palette", "palette", c.Palette, "colors", len(c.settings.Palette))
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				if err := c.convert(logger, filePath, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not convert image", "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) convert(logger *slog.Logger, filePath, fileName string) error {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer imgFile.Close()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}

	src := pixbuf.Fit(img, c.MaxSize)
	if b := img.Bounds(); src.Width != b.Dx() || src.Height != b.Dy() {
		logger.Info("resizing", "width", src.Width, "height", src.Height)
	}
	out := c.processor(logger).Process(src, c.settings)

	if err = save(out, outputType(c.Format, imgType), c.Dest, fileName); err != nil {
		return fmt.Errorf("could not save image in %q: %w", c.Dest, err)
	}
	logger.Info("converted", "width", out.Width, "height", out.Height)
	return nil
}

// processor returns a Processor for one file. Seeded runs get their own
// generator so results do not depend on scheduling.
func (c *CLICmd) processor(logger *slog.Logger) *pipeline.Processor {
	opts := []pipeline.Option{
		pipeline.WithWorkers(c.Bands),
		pipeline.WithLogger(logger),
	}
	if c.Seed != 0 {
		opts = append(opts, pipeline.WithRand(rand.New(rand.NewPCG(c.Seed, c.Seed))))
	}
	return pipeline.New(opts...)
}
