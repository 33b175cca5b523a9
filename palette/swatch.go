package palette

import (
	"slices"

	"pixelart/pixbuf"
	"pixelart/quantize"
)

// DefaultTileSize is the edge length of one swatch tile.
const DefaultTileSize = 32

// SortByBrightness orders pal from darkest to brightest by relative
// luminance, keeping the order of equally bright colours.
func SortByBrightness(pal quantize.Palette) {
	slices.SortStableFunc(pal, func(a, b pixbuf.Color) int {
		ya, yb := luminance(a), luminance(b)
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		}
		return 0
	})
}

func luminance(c pixbuf.Color) float64 {
	r, g, b := colorfulOf(c).LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Swatch renders pal as a row of tile x tile squares.
func Swatch(pal quantize.Palette, tile int) *pixbuf.Buffer {
	if tile <= 0 {
		tile = DefaultTileSize
	}

	buf := pixbuf.New(tile*len(pal), tile)
	buf.Fill(pixbuf.Color{})
	for i, c := range pal {
		for y := range tile {
			for x := i * tile; x < (i+1)*tile; x++ {
				buf.Set(x, y, c)
			}
		}
	}
	return buf
}
