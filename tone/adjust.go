// Package tone implements the per-pixel colour transforms that run before
// palette reduction: brightness/contrast/saturation, preset palette swaps
// and posterisation.
package tone

import "pixelart/pixbuf"

// Neutral is the percentage at which brightness, contrast and saturation
// leave a pixel unchanged.
const Neutral = 100

// Adjust applies brightness, then contrast, then saturation to every pixel.
// Each argument is a percentage centred at 100. Every intermediate value is
// clamped to [0, 255] before the next step.
func Adjust(buf *pixbuf.Buffer, brightness, contrast, saturation int) {
	if brightness == Neutral && contrast == Neutral && saturation == Neutral {
		return
	}

	offset := float64(brightness-Neutral) / 100 * 255
	gain := 1 + float64(contrast-Neutral)/100
	sat := float64(saturation) / 100

	buf.Map(func(c pixbuf.Color) pixbuf.Color {
		r := pixbuf.ClampF(float64(c.R) + offset)
		g := pixbuf.ClampF(float64(c.G) + offset)
		b := pixbuf.ClampF(float64(c.B) + offset)

		r = pixbuf.ClampF((r-128)*gain + 128)
		g = pixbuf.ClampF((g-128)*gain + 128)
		b = pixbuf.ClampF((b-128)*gain + 128)

		gray := pixbuf.Luma(r, g, b)
		return pixbuf.Color{
			R: pixbuf.Clamp(gray + sat*(r-gray)),
			G: pixbuf.Clamp(gray + sat*(g-gray)),
			B: pixbuf.Clamp(gray + sat*(b-gray)),
		}
	})
}
