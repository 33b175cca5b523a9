package pixbuf

import "math"

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b := uint32(c.R), uint32(c.G), uint32(c.B)
	return r | r<<8, g | g<<8, b | b<<8, 0xFFFF
}

// DistSq returns the squared euclidean distance between two colours.
func (c Color) DistSq(o Color) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

// Luma weights, not gamma corrected.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

func Luma(r, g, b float64) float64 {
	return LumaR*r + LumaG*g + LumaB*b
}

// Luma returns the unclamped, unrounded luma of c.
func (c Color) Luma() float64 {
	return Luma(float64(c.R), float64(c.G), float64(c.B))
}

// Clamp stores v into a channel: clamped to [0, 255], rounded half to even.
func Clamp(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.RoundToEven(v))
}

// ClampF limits v to [0, 255] without rounding.
func ClampF(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

// RoundHalfUp rounds the way averages are rounded by the quantisers.
func RoundHalfUp(v float64) uint8 {
	return Clamp(math.Floor(v + 0.5))
}
