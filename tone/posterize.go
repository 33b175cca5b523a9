package tone

import (
	"math"

	"pixelart/pixbuf"
)

// MaxLevels is the level count at which posterisation is the identity.
const MaxLevels = 256

// Posterize snaps every channel to a multiple of 256/levels. Levels outside
// (0, 256) leave the buffer unchanged.
func Posterize(buf *pixbuf.Buffer, levels int) {
	if levels <= 0 || levels >= MaxLevels {
		return
	}

	var lut [256]uint8
	step := float64(MaxLevels) / float64(levels)
	for v := range lut {
		lut[v] = pixbuf.Clamp(math.Floor(float64(v)/step+0.5) * step)
	}

	buf.Map(func(c pixbuf.Color) pixbuf.Color {
		return pixbuf.Color{R: lut[c.R], G: lut[c.G], B: lut[c.B]}
	})
}
