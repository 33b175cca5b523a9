package quantize

import (
	"gonum.org/v1/gonum/stat"

	"pixelart/pixbuf"
)

// Distortion is the per-pixel squared colour error between two images.
type Distortion struct {
	Mean   float64
	StdDev float64
}

// Measure compares src with dst pixel by pixel. Buffers of different sizes
// or empty buffers give a zero result.
func Measure(src, dst *pixbuf.Buffer) Distortion {
	if src.Empty() || dst.Empty() || src.Width != dst.Width || src.Height != dst.Height {
		return Distortion{}
	}

	errs := make([]float64, 0, src.Len())
	src.Each(func(i int, c pixbuf.Color) {
		d := pixbuf.Color{R: dst.Pix[i], G: dst.Pix[i+1], B: dst.Pix[i+2]}
		errs = append(errs, float64(c.DistSq(d)))
	})

	mean, std := stat.MeanStdDev(errs, nil)
	if len(errs) < 2 {
		std = 0
	}
	return Distortion{Mean: mean, StdDev: std}
}
