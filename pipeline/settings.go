package pipeline

import (
	"pixelart/edge"
	"pixelart/quantize"
	"pixelart/tone"
)

// Settings is the full configuration of one pipeline run.
type Settings struct {
	// PixelSize is the edge length of a mosaic block, at least 1.
	PixelSize int

	// Brightness, Contrast and Saturation are percentages in [0, 200];
	// 100 is neutral.
	Brightness int
	Contrast   int
	Saturation int

	QuantizationMethod quantize.Method
	// ColorCount is the palette size for quantisation, in [1, 256].
	ColorCount int
	// Palette, when non-empty, replaces palette generation: every pixel is
	// remapped to it in the quantisation stage.
	Palette quantize.Palette

	// PosterizationLevels is the per-channel level count in (0, 256];
	// 256 disables posterisation.
	PosterizationLevels int

	PaletteSwap tone.Preset

	OutlineDetection edge.Method
	// OutlineStrength is a percentage in [0, 100].
	OutlineStrength int

	EdgeDetection edge.Method
	// EdgeStrength is a percentage in [0, 100].
	EdgeStrength int
}

// DefaultSettings returns the editor's initial settings.
func DefaultSettings() Settings {
	return Settings{
		PixelSize:           10,
		Brightness:          tone.Neutral,
		Contrast:            tone.Neutral,
		Saturation:          tone.Neutral,
		QuantizationMethod:  quantize.MethodMedianCut,
		ColorCount:          32,
		PosterizationLevels: tone.MaxLevels,
		PaletteSwap:         tone.PresetNone,
		OutlineDetection:    edge.MethodNone,
		OutlineStrength:     50,
		EdgeDetection:       edge.MethodNone,
		EdgeStrength:        50,
	}
}

// IdentitySettings returns settings under which Process returns its input
// unchanged.
func IdentitySettings() Settings {
	s := DefaultSettings()
	s.PixelSize = 1
	s.QuantizationMethod = quantize.MethodNone
	return s
}

// Normalized returns s with every value brought into its valid range.
// Out-of-range values are clamped rather than rejected so a run always
// produces an image.
func (s Settings) Normalized() Settings {
	s.PixelSize = max(1, s.PixelSize)
	s.Brightness = clamp(s.Brightness, 0, 200)
	s.Contrast = clamp(s.Contrast, 0, 200)
	s.Saturation = clamp(s.Saturation, 0, 200)
	s.ColorCount = clamp(s.ColorCount, 1, 256)
	if s.PosterizationLevels <= 0 {
		s.PosterizationLevels = tone.MaxLevels
	}
	s.PosterizationLevels = min(s.PosterizationLevels, tone.MaxLevels)
	s.OutlineStrength = clamp(s.OutlineStrength, 0, 100)
	s.EdgeStrength = clamp(s.EdgeStrength, 0, 100)

	if s.QuantizationMethod == "" {
		s.QuantizationMethod = quantize.MethodNone
	}
	if s.PaletteSwap == "" {
		s.PaletteSwap = tone.PresetNone
	}
	if s.OutlineDetection == "" {
		s.OutlineDetection = edge.MethodNone
	}
	if s.EdgeDetection == "" {
		s.EdgeDetection = edge.MethodNone
	}
	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
