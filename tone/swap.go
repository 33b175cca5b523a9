package tone

import (
	"fmt"
	"math"

	"pixelart/pixbuf"
)

// Preset names a fixed per-pixel colour mapping.
type Preset string

const (
	PresetNone      Preset = "none"
	PresetGrayscale Preset = "grayscale"
	PresetSepia     Preset = "sepia"
	PresetCool      Preset = "cool"
	PresetWarm      Preset = "warm"
	PresetVintage   Preset = "vintage"
	PresetNeon      Preset = "neon"
	PresetPastel    Preset = "pastel"
)

type swapFunc func(r, g, b float64) (float64, float64, float64)

var presets = map[Preset]swapFunc{
	PresetGrayscale: func(r, g, b float64) (float64, float64, float64) {
		y := pixbuf.Luma(r, g, b)
		return y, y, y
	},
	PresetSepia: func(r, g, b float64) (float64, float64, float64) {
		return r*0.393 + g*0.769 + b*0.189,
			r*0.349 + g*0.686 + b*0.168,
			r*0.272 + g*0.534 + b*0.131
	},
	PresetCool: func(r, g, b float64) (float64, float64, float64) {
		return r * 0.8, g * 0.9, b * 1.2
	},
	PresetWarm: func(r, g, b float64) (float64, float64, float64) {
		return r * 1.2, g * 1.1, b * 0.8
	},
	PresetVintage: func(r, g, b float64) (float64, float64, float64) {
		vr := r*0.567 + g*0.769 + b*0.189
		vg := r*0.349 + g*0.686 + b*0.168
		vb := r*0.272 + g*0.534 + b*0.131
		return vr * 1.1, vg * 0.9, vb * 0.8
	},
	PresetNeon: func(r, g, b float64) (float64, float64, float64) {
		f := (r + g + b) / 3 / 255
		return r + (255-r)*f*0.5,
			g + (255-g)*f*0.3,
			b + (255-b)*f*0.8
	},
	PresetPastel: func(r, g, b float64) (float64, float64, float64) {
		return (r + 255) / 2, (g + 255) / 2, (b + 255) / 2
	},
}

// Presets lists every known preset, "none" first.
func Presets() []Preset {
	return []Preset{PresetNone, PresetGrayscale, PresetSepia, PresetCool, PresetWarm,
		PresetVintage, PresetNeon, PresetPastel}
}

func ParsePreset(s string) (Preset, error) {
	p := Preset(s)
	if _, ok := presets[p]; ok || p == PresetNone {
		return p, nil
	}
	return PresetNone, fmt.Errorf("unknown palette swap preset: %q", s)
}

// Swap maps every pixel through the preset. None and unknown presets leave
// the buffer as is.
func Swap(buf *pixbuf.Buffer, p Preset) {
	f, ok := presets[p]
	if !ok {
		return
	}

	buf.Map(func(c pixbuf.Color) pixbuf.Color {
		r, g, b := f(float64(c.R), float64(c.G), float64(c.B))
		return pixbuf.Color{
			R: pixbuf.Clamp(math.Min(255, r)),
			G: pixbuf.Clamp(math.Min(255, g)),
			B: pixbuf.Clamp(math.Min(255, b)),
		}
	})
}
