// Package pipeline runs the pixel-art stages over an image in their fixed
// order: tone, posterise, palette swap, outline, edges, quantise, pixelate.
package pipeline

import (
	"log/slog"
	"time"

	"pixelart/edge"
	"pixelart/parallel"
	"pixelart/pixbuf"
	"pixelart/pixelate"
	"pixelart/quantize"
	"pixelart/tone"
)

// Processor applies Settings to images. A Processor is safe for concurrent
// use as long as its random source is.
type Processor struct {
	quantizer *quantize.Quantizer
	rng       quantize.Rand
	workers   int
	log       *slog.Logger
}

type Option func(*Processor)

// WithRand sets the random source for k-means seeding.
func WithRand(r quantize.Rand) Option {
	return func(p *Processor) {
		p.rng = r
	}
}

// WithWorkers splits the per-pixel stages into row bands handled by n
// goroutines. Values below 1 mean one per CPU.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		p.workers = parallel.Workers(n)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

func New(opts ...Option) *Processor {
	p := &Processor{
		workers: 1,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.quantizer = quantize.New(quantize.WithRand(p.rng))
	return p
}

// Process runs every stage on a copy of src and returns it. src is never
// modified. The output always has the dimensions of src; a nil or empty
// src yields an empty buffer.
func (p *Processor) Process(src *pixbuf.Buffer, s Settings) *pixbuf.Buffer {
	s = s.Normalized()
	if src.Empty() {
		return pixbuf.New(0, 0)
	}
	buf := src.Clone()

	start := time.Now()
	p.stage("tone", func() {
		if s.Brightness == tone.Neutral && s.Contrast == tone.Neutral && s.Saturation == tone.Neutral {
			return
		}
		p.bands(buf, func(b *pixbuf.Buffer) {
			tone.Adjust(b, s.Brightness, s.Contrast, s.Saturation)
		})
	})
	p.stage("posterize", func() {
		if s.PosterizationLevels >= tone.MaxLevels {
			return
		}
		p.bands(buf, func(b *pixbuf.Buffer) {
			tone.Posterize(b, s.PosterizationLevels)
		})
	})
	p.stage("swap", func() {
		if s.PaletteSwap == tone.PresetNone {
			return
		}
		p.bands(buf, func(b *pixbuf.Buffer) {
			tone.Swap(b, s.PaletteSwap)
		})
	})
	p.stage("edges", func() {
		edge.Apply(buf, s.OutlineDetection, s.OutlineStrength, s.EdgeDetection, s.EdgeStrength, p.rows)
	})
	p.stage("quantize", func() {
		pal := s.Palette
		if len(pal) == 0 {
			if s.QuantizationMethod == quantize.MethodNone {
				return
			}
			pal = p.quantizer.Palette(buf, s.QuantizationMethod, s.ColorCount)
			p.log.Debug("palette built", "method", s.QuantizationMethod, "colors", len(pal))
		}
		p.bands(buf, func(b *pixbuf.Buffer) {
			quantize.Remap(b, pal)
		})
	})
	p.stage("pixelate", func() {
		if s.PixelSize <= 1 {
			return
		}
		buf = pixelate.Pixelate(buf, s.PixelSize)
	})

	p.log.Debug("processed", "width", buf.Width, "height", buf.Height, "elapsed", time.Since(start))
	return buf
}

func (p *Processor) stage(name string, f func()) {
	start := time.Now()
	f()
	p.log.Debug("stage", "name", name, "elapsed", time.Since(start))
}

func (p *Processor) rows(height int, f func(y0, y1 int)) {
	parallel.Bands(height, p.workers, f)
}

func (p *Processor) bands(buf *pixbuf.Buffer, f func(*pixbuf.Buffer)) {
	p.rows(buf.Height, func(y0, y1 int) {
		f(buf.Band(y0, y1))
	})
}

// Process runs src through a default Processor.
func Process(src *pixbuf.Buffer, s Settings) *pixbuf.Buffer {
	return New().Process(src, s)
}
