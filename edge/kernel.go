package edge

import (
	"math"

	"pixelart/pixbuf"
)

// Kernel is a 3x3 convolution kernel in row-major order.
type Kernel [9]float64

var (
	SobelX    = Kernel{-1, 0, 1, -2, 0, 2, -1, 0, 1}
	SobelY    = Kernel{-1, -2, -1, 0, 0, 0, 1, 2, 1}
	Laplacian = Kernel{0, -1, 0, -1, 4, -1, 0, -1, 0}
	Box       = Kernel{1, 1, 1, 1, 1, 1, 1, 1, 1}
)

// Convolve returns the kernel response centred at (x, y). The caller keeps
// (x, y) at least one pixel away from every border.
func (m *Map) Convolve(k Kernel, x, y int) float64 {
	var sum float64
	for ky := -1; ky <= 1; ky++ {
		row := (y + ky) * m.Width
		for kx := -1; kx <= 1; kx++ {
			sum += float64(m.Pix[row+x+kx]) * k[(ky+1)*3+kx+1]
		}
	}
	return sum
}

// interior visits every pixel that has all eight neighbours.
func interior(w, h int, f func(x, y, i int)) {
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			f(x, y, y*w+x)
		}
	}
}

// sobel builds the gradient magnitude map, passing every magnitude
// through store.
func sobel(gray *Map, store func(mag float64) float64) *Map {
	out := NewMap(gray.Width, gray.Height)
	interior(gray.Width, gray.Height, func(x, y, i int) {
		gx := gray.Convolve(SobelX, x, y)
		gy := gray.Convolve(SobelY, x, y)
		out.Pix[i] = pixbuf.Clamp(store(math.Sqrt(gx*gx + gy*gy)))
	})
	return out
}

func laplacian(gray *Map, store func(abs float64) float64) *Map {
	out := NewMap(gray.Width, gray.Height)
	interior(gray.Width, gray.Height, func(x, y, i int) {
		out.Pix[i] = pixbuf.Clamp(store(math.Abs(gray.Convolve(Laplacian, x, y))))
	})
	return out
}

// blur is a 3x3 mean filter. Border pixels keep their input value.
func blur(gray *Map) *Map {
	out := NewMap(gray.Width, gray.Height)
	copy(out.Pix, gray.Pix)
	interior(gray.Width, gray.Height, func(x, y, i int) {
		out.Pix[i] = pixbuf.Clamp(gray.Convolve(Box, x, y) / 9)
	})
	return out
}

// neighbourDiff stores the largest absolute difference between a pixel and
// its eight neighbours.
func neighbourDiff(gray *Map, store func(diff float64) float64) *Map {
	out := NewMap(gray.Width, gray.Height)
	interior(gray.Width, gray.Height, func(x, y, i int) {
		cur := int(gray.Pix[i])
		maxDiff := 0
		for ky := -1; ky <= 1; ky++ {
			for kx := -1; kx <= 1; kx++ {
				if kx == 0 && ky == 0 {
					continue
				}
				d := cur - int(gray.Pix[i+ky*gray.Width+kx])
				maxDiff = max(maxDiff, d, -d)
			}
		}
		out.Pix[i] = pixbuf.Clamp(store(float64(maxDiff)))
	})
	return out
}

// threshold zeroes values at or below t and scales the rest.
func threshold(t, scale float64) func(float64) float64 {
	return func(v float64) float64 {
		if v > t {
			return v * scale
		}
		return 0
	}
}

func identity(v float64) float64 { return v }

// retain applies store to every stored value of m in place.
func retain(m *Map, store func(float64) float64) *Map {
	for i, v := range m.Pix {
		m.Pix[i] = pixbuf.Clamp(store(float64(v)))
	}
	return m
}
