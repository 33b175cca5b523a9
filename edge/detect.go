package edge

import "pixelart/pixbuf"

// Outline builds the edge map used for silhouette outlines. Each method is
// thresholded and amplified so that only pronounced edges survive. None and
// unknown methods return nil.
func Outline(gray *Map, m Method) *Map {
	switch m {
	case MethodSimple:
		return neighbourDiff(gray, threshold(20, 2))
	case MethodSobel:
		return sobel(gray, threshold(30, 1.5))
	case MethodCanny:
		return retain(sobel(blur(gray), threshold(30, 1.5)), threshold(25, 2))
	case MethodLaplacian:
		return laplacian(gray, threshold(15, 2))
	default:
		return nil
	}
}

// Edges builds the edge map used for dense edge marking. The simple method
// is not supported here and, like none and unknown methods, returns nil.
//
// Canny is simplified: a mean blur followed by Sobel and a fixed threshold,
// without non-maximum suppression or hysteresis.
func Edges(gray *Map, m Method) *Map {
	switch m {
	case MethodSobel:
		return sobel(gray, identity)
	case MethodCanny:
		return retain(sobel(blur(gray), identity), threshold(30, 1))
	case MethodLaplacian:
		return laplacian(gray, identity)
	default:
		return nil
	}
}

// Darkening parameters for the two effects.
const (
	outlineThreshold = 0.05
	outlineGain      = 3
	edgeThreshold    = 0.1
	edgeGain         = 2
)

// DarkenOutline subtracts the outline intensity from every channel where
// the map, scaled by strength percent, exceeds 5%.
func DarkenOutline(buf *pixbuf.Buffer, edges *Map, strength int) {
	darken(buf, edges, strength, outlineThreshold, outlineGain)
}

// DarkenEdges is DarkenOutline with a 10% threshold and softer gain.
func DarkenEdges(buf *pixbuf.Buffer, edges *Map, strength int) {
	darken(buf, edges, strength, edgeThreshold, edgeGain)
}

func darken(buf *pixbuf.Buffer, edges *Map, strength int, limit, gain float64) {
	if edges == nil || len(edges.Pix) < buf.Len() {
		return
	}
	s := float64(strength) / 100

	buf.Each(func(i int, c pixbuf.Color) {
		f := float64(edges.Pix[i/4]) / 255 * s
		if f <= limit {
			return
		}
		sub := min(1, f*gain) * 255
		buf.Pix[i] = pixbuf.Clamp(float64(c.R) - sub)
		buf.Pix[i+1] = pixbuf.Clamp(float64(c.G) - sub)
		buf.Pix[i+2] = pixbuf.Clamp(float64(c.B) - sub)
	})
}

// Rows runs f over row ranges that together cover [0, height), possibly
// concurrently. parallel.Bands has this shape.
type Rows func(height int, f func(y0, y1 int))

// Apply runs the outline and edge effects in that order on buf, each with
// its own grayscale map taken from the buffer as it stands. The darkening
// is split into row ranges by rows; nil runs it in one pass.
func Apply(buf *pixbuf.Buffer, outline Method, outlineStrength int, edges Method, edgeStrength int, rows Rows) {
	if rows == nil {
		rows = func(height int, f func(y0, y1 int)) { f(0, height) }
	}
	if outline != MethodNone {
		applyRows(buf, Outline(Grayscale(buf), outline), outlineStrength, DarkenOutline, rows)
	}
	if edges != MethodNone {
		applyRows(buf, Edges(Grayscale(buf), edges), edgeStrength, DarkenEdges, rows)
	}
}

func applyRows(buf *pixbuf.Buffer, m *Map, strength int, darken func(*pixbuf.Buffer, *Map, int), rows Rows) {
	if m == nil {
		return
	}
	rows(buf.Height, func(y0, y1 int) {
		darken(buf.Band(y0, y1), m.Band(y0, y1), strength)
	})
}
