// Package quantize reduces an image to a small palette and remaps its
// pixels onto it.
package quantize

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"pixelart/pixbuf"
)

type Method string

const (
	MethodNone      Method = "none"
	MethodMedianCut Method = "median-cut"
	MethodKMeans    Method = "k-means"
	MethodOctree    Method = "octree"
	MethodDominant  Method = "dominant"
)

func Methods() []Method {
	return []Method{MethodNone, MethodMedianCut, MethodKMeans, MethodOctree, MethodDominant}
}

func ParseMethod(s string) (Method, error) {
	for _, m := range Methods() {
		if string(m) == s {
			return m, nil
		}
	}
	return MethodNone, fmt.Errorf("unknown quantization method: %q", s)
}

// Palette is an ordered list of colours. Order matters: Index breaks ties in
// favour of the earlier entry.
type Palette []pixbuf.Color

// Index returns the position of the entry nearest to c.
func (p Palette) Index(c pixbuf.Color) int {
	ret, best := 0, -1
	for i, v := range p {
		d := c.DistSq(v)
		if best < 0 || d < best {
			if d == 0 {
				return i
			}
			ret, best = i, d
		}
	}
	return ret
}

// Convert returns the entry nearest to c, or c itself for an empty palette.
func (p Palette) Convert(c pixbuf.Color) pixbuf.Color {
	if len(p) == 0 {
		return c
	}
	return p[p.Index(c)]
}

func (p Palette) ColorPalette() color.Palette {
	pal := make(color.Palette, len(p))
	for i, c := range p {
		pal[i] = c
	}
	return pal
}

func FromColorPalette(cp color.Palette) Palette {
	p := make(Palette, 0, len(cp))
	for _, c := range cp {
		r, g, b, _ := c.RGBA()
		p = append(p, pixbuf.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
	}
	return p
}

// Rand is the random source used to seed k-means centroids.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Quantizer builds palettes from the distinct colours of a buffer.
type Quantizer struct {
	rng Rand
}

type Option func(*Quantizer)

// WithRand sets the source used by k-means. Seed it for reproducible output.
func WithRand(r Rand) Option {
	return func(q *Quantizer) {
		if r != nil {
			q.rng = r
		}
	}
}

func New(opts ...Option) *Quantizer {
	q := &Quantizer{rng: globalRand{}}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Palette builds a palette of at most count colours using method. An empty
// buffer yields an empty palette, as does an unsupported method; count is
// floored to 1.
func (q *Quantizer) Palette(buf *pixbuf.Buffer, method Method, count int) Palette {
	if buf.Empty() {
		return nil
	}
	count = max(1, count)

	switch method {
	case MethodMedianCut:
		return MedianCut(Distinct(buf), count)
	case MethodKMeans:
		return KMeans(Distinct(buf), count, q.rng)
	case MethodOctree:
		return Octree(Distinct(buf), count)
	case MethodDominant:
		return Dominant(buf, count)
	default:
		return nil
	}
}

// Quantize builds a palette with the global random source.
func Quantize(buf *pixbuf.Buffer, method Method, count int) Palette {
	return New().Palette(buf, method, count)
}

// Distinct returns every colour present in buf once, in first-seen scan order.
func Distinct(buf *pixbuf.Buffer) []pixbuf.Color {
	seen := make(map[pixbuf.Color]struct{})
	var colors []pixbuf.Color
	buf.Each(func(_ int, c pixbuf.Color) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		colors = append(colors, c)
	})
	return colors
}

// mean averages colours with half-up rounding.
func mean(colors []pixbuf.Color) pixbuf.Color {
	var r, g, b int
	for _, c := range colors {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	return meanOf(r, g, b, len(colors))
}

func meanOf(r, g, b, n int) pixbuf.Color {
	if n == 0 {
		return pixbuf.Color{}
	}
	fn := float64(n)
	return pixbuf.Color{
		R: pixbuf.RoundHalfUp(float64(r) / fn),
		G: pixbuf.RoundHalfUp(float64(g) / fn),
		B: pixbuf.RoundHalfUp(float64(b) / fn),
	}
}
