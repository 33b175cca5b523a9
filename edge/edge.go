// Package edge computes edge-intensity maps from a grayscale rendition of
// an image and darkens the image where edges are found.
package edge

import (
	"fmt"

	"pixelart/pixbuf"
)

// Method selects the kernel used to build an edge map.
type Method string

const (
	MethodNone      Method = "none"
	MethodSimple    Method = "simple"
	MethodSobel     Method = "sobel"
	MethodCanny     Method = "canny"
	MethodLaplacian Method = "laplacian"
)

// OutlineMethods are the methods accepted for the outline effect.
func OutlineMethods() []Method {
	return []Method{MethodNone, MethodSimple, MethodSobel, MethodCanny, MethodLaplacian}
}

// EdgeMethods are the methods accepted for the edge effect. The simple
// neighbour difference is outline-only.
func EdgeMethods() []Method {
	return []Method{MethodNone, MethodSobel, MethodCanny, MethodLaplacian}
}

func ParseMethod(s string) (Method, error) {
	for _, m := range OutlineMethods() {
		if string(m) == s {
			return m, nil
		}
	}
	return MethodNone, fmt.Errorf("unknown edge detection method: %q", s)
}

// Map is a dense single-channel intensity image.
type Map struct {
	Pix    []uint8
	Width  int
	Height int
}

func NewMap(width, height int) *Map {
	width, height = max(0, width), max(0, height)
	return &Map{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
	}
}

func (m *Map) At(x, y int) uint8 {
	return m.Pix[y*m.Width+x]
}

// Band returns a view of rows [y0, y1).
func (m *Map) Band(y0, y1 int) *Map {
	y0 = min(max(0, y0), m.Height)
	y1 = min(max(y0, y1), m.Height)
	return &Map{
		Pix:    m.Pix[y0*m.Width : y1*m.Width : y1*m.Width],
		Width:  m.Width,
		Height: y1 - y0,
	}
}

// Zero reports whether no edge was found.
func (m *Map) Zero() bool {
	for _, v := range m.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// Grayscale converts buf to luma, stored as 8-bit values.
func Grayscale(buf *pixbuf.Buffer) *Map {
	gray := NewMap(buf.Width, buf.Height)
	buf.Each(func(i int, c pixbuf.Color) {
		gray.Pix[i/4] = pixbuf.Clamp(c.Luma())
	})
	return gray
}
