package quantize

import (
	"slices"

	"pixelart/pixbuf"
)

// MedianCut splits the colour set at its median along the channel with the
// widest range, distributing the target count between halves, until each
// part fits its share. When colors already fit, they are returned as is.
//
// colors is reordered in place.
func MedianCut(colors []pixbuf.Color, target int) Palette {
	if len(colors) == 0 {
		return nil
	}
	if len(colors) <= target {
		return slices.Clone(Palette(colors))
	}
	if target <= 1 {
		return Palette{mean(colors)}
	}

	lo := pixbuf.Color{R: 255, G: 255, B: 255}
	var hi pixbuf.Color
	for _, c := range colors {
		lo.R, hi.R = min(lo.R, c.R), max(hi.R, c.R)
		lo.G, hi.G = min(lo.G, c.G), max(hi.G, c.G)
		lo.B, hi.B = min(lo.B, c.B), max(hi.B, c.B)
	}
	rr, gr, br := hi.R-lo.R, hi.G-lo.G, hi.B-lo.B
	if rr == 0 && gr == 0 && br == 0 {
		return Palette{mean(colors)}
	}

	var key func(pixbuf.Color) uint8
	switch {
	case rr >= gr && rr >= br:
		key = func(c pixbuf.Color) uint8 { return c.R }
	case gr >= br:
		key = func(c pixbuf.Color) uint8 { return c.G }
	default:
		key = func(c pixbuf.Color) uint8 { return c.B }
	}
	slices.SortStableFunc(colors, func(a, b pixbuf.Color) int {
		return int(key(a)) - int(key(b))
	})

	mid := len(colors) / 2
	left, right := colors[:mid], colors[mid:]
	if len(left) == 0 || len(right) == 0 {
		return Palette{mean(colors)}
	}

	leftTarget := max(1, target/2)
	rightTarget := max(1, target-leftTarget)
	return append(MedianCut(left, leftTarget), MedianCut(right, rightTarget)...)
}
