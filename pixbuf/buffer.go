// Package pixbuf holds the in-memory pixel buffer every pipeline stage
// operates on.
package pixbuf

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Buffer is a non-premultiplied RGBA image with no origin offset.
type Buffer struct {
	// Pix holds the samples. The pixel at (x, y) starts at Pix[(y*Width+x)*4].
	Pix    []uint8
	Width  int
	Height int
}

// bytes per pixel: r, g, b, a
const bpp = 4

func New(width, height int) *Buffer {
	width, height = max(0, width), max(0, height)
	return &Buffer{
		Pix:    make([]uint8, width*height*bpp),
		Width:  width,
		Height: height,
	}
}

// FromImage copies any image into a new buffer.
func FromImage(img image.Image) *Buffer {
	sr := img.Bounds()
	buf := New(sr.Dx(), sr.Dy())
	if buf.Len() == 0 {
		return buf
	}
	draw.Draw(buf.Image(), image.Rect(0, 0, buf.Width, buf.Height), img, sr.Min, draw.Src)
	return buf
}

// Image returns an NRGBA view sharing the buffer's samples.
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * bpp,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Len returns the number of pixels.
func (b *Buffer) Len() int {
	return b.Width * b.Height
}

func (b *Buffer) Empty() bool {
	return b == nil || b.Len() == 0 || len(b.Pix) < b.Len()*bpp
}

// Clone returns a deep copy. A nil buffer clones to an empty one.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return New(0, 0)
	}
	c := &Buffer{
		Pix:    make([]uint8, len(b.Pix)),
		Width:  b.Width,
		Height: b.Height,
	}
	copy(c.Pix, b.Pix)
	return c
}

// Band returns a view of rows [y0, y1) sharing the buffer's samples.
func (b *Buffer) Band(y0, y1 int) *Buffer {
	y0 = clampInt(y0, 0, b.Height)
	y1 = clampInt(y1, y0, b.Height)
	stride := b.Width * bpp
	return &Buffer{
		Pix:    b.Pix[y0*stride : y1*stride : y1*stride],
		Width:  b.Width,
		Height: y1 - y0,
	}
}

func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.Width + x) * bpp
}

func (b *Buffer) At(x, y int) Color {
	i := b.PixOffset(x, y)
	return Color{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]}
}

// Set replaces the colour at (x, y), leaving alpha as is.
func (b *Buffer) Set(x, y int, c Color) {
	i := b.PixOffset(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c.R, c.G, c.B
}

// Fill sets every pixel to c with full opacity.
func (b *Buffer) Fill(c Color) {
	for i := 0; i+3 < len(b.Pix); i += bpp {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = c.R, c.G, c.B, 0xFF
	}
}

// Each calls f for every pixel in scan order with the index of its first
// sample and the colour stored there.
func (b *Buffer) Each(f func(i int, c Color)) {
	n := b.Len() * bpp
	for i := 0; i < n; i += bpp {
		f(i, Color{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]})
	}
}

// Map replaces every pixel's colour with f of it. Alpha is untouched.
func (b *Buffer) Map(f func(Color) Color) {
	n := b.Len() * bpp
	for i := 0; i < n; i += bpp {
		c := f(Color{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]})
		b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c.R, c.G, c.B
	}
}

// Equal reports whether both buffers have the same size and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

var _ color.Color = Color{}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
