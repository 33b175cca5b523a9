package quantize

import (
	"github.com/cenkalti/dominantcolor"

	"pixelart/pixbuf"
)

// Dominant picks up to k of the heaviest colour clusters found by
// dominantcolor. It never returns an empty palette for a non-empty buffer.
func Dominant(buf *pixbuf.Buffer, k int) Palette {
	if buf.Empty() {
		return nil
	}

	var pal Palette
	for _, c := range dominantcolor.FindWeight(buf.Image(), max(1, k)) {
		pal = append(pal, pixbuf.Color{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B})
		if len(pal) == k {
			break
		}
	}
	if len(pal) == 0 {
		pal = Palette{mean(Distinct(buf))}
	}
	return pal
}
