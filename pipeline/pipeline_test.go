package pipeline

import (
	"math/rand/v2"
	"testing"

	"pixelart/edge"
	"pixelart/pixbuf"
	"pixelart/quantize"
	"pixelart/tone"
)

func noise(w, h int, seed uint64) *pixbuf.Buffer {
	rng := rand.New(rand.NewPCG(seed, seed))
	b := pixbuf.New(w, h)
	b.Fill(pixbuf.Color{})
	for y := range h {
		for x := range w {
			b.Set(x, y, pixbuf.Color{
				R: uint8(rng.IntN(256)),
				G: uint8(rng.IntN(256)),
				B: uint8(rng.IntN(256)),
			})
		}
	}
	return b
}

func solid(w, h int, c pixbuf.Color) *pixbuf.Buffer {
	b := pixbuf.New(w, h)
	b.Fill(c)
	return b
}

func TestIdentitySettings(t *testing.T) {
	src := noise(23, 17, 1)
	out := Process(src, IdentitySettings())
	if !out.Equal(src) {
		t.Error("Identity settings should reproduce the input")
	}
}

func TestBrightnessOnly(t *testing.T) {
	s := IdentitySettings()
	s.Brightness = 120
	out := Process(solid(4, 4, pixbuf.Color{R: 200, G: 100, B: 50}), s)

	want := pixbuf.Color{R: 251, G: 151, B: 101}
	for y := range 4 {
		for x := range 4 {
			if got := out.At(x, y); got != want {
				t.Fatalf("(%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestGrayscaleSwap(t *testing.T) {
	s := IdentitySettings()
	s.PaletteSwap = tone.PresetGrayscale
	out := Process(solid(2, 2, pixbuf.Color{R: 100, G: 150, B: 200}), s)
	if got := out.At(1, 1); got != (pixbuf.Color{R: 141, G: 141, B: 141}) {
		t.Errorf("Expected (141,141,141), got %v", got)
	}
}

func TestSourceIsNotModified(t *testing.T) {
	src := noise(32, 32, 2)
	orig := src.Clone()

	s := DefaultSettings()
	s.Brightness = 140
	s.PosterizationLevels = 4
	s.PaletteSwap = tone.PresetSepia
	s.OutlineDetection = edge.MethodSobel
	s.EdgeDetection = edge.MethodCanny
	Process(src, s)

	if !src.Equal(orig) {
		t.Error("Process should leave its input untouched")
	}
}

func TestDimensionsPreserved(t *testing.T) {
	for _, pixelSize := range []int{1, 3, 10, 40, 100} {
		s := DefaultSettings()
		s.PixelSize = pixelSize
		out := Process(noise(37, 21, 3), s)
		if out.Width != 37 || out.Height != 21 {
			t.Errorf("Pixel size %d: expected 37x21, got %dx%d", pixelSize, out.Width, out.Height)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	out := Process(pixbuf.New(0, 0), DefaultSettings())
	if !out.Empty() {
		t.Errorf("Expected an empty buffer, got %dx%d", out.Width, out.Height)
	}
}

func TestNilInput(t *testing.T) {
	out := Process(nil, DefaultSettings())
	if out == nil || !out.Empty() {
		t.Errorf("Expected an empty buffer, got %+v", out)
	}
}

func TestQuantizeLimitsColors(t *testing.T) {
	s := IdentitySettings()
	s.QuantizationMethod = quantize.MethodMedianCut
	s.ColorCount = 8
	out := Process(noise(40, 40, 4), s)

	if n := len(quantize.Distinct(out)); n > 8 {
		t.Errorf("Expected at most 8 colours, got %d", n)
	}
}

func TestFixedPalette(t *testing.T) {
	pal := quantize.Palette{{}, {R: 255, G: 255, B: 255}}
	s := IdentitySettings()
	s.QuantizationMethod = quantize.MethodOctree
	s.Palette = pal

	out := Process(noise(16, 16, 5), s)
	out.Each(func(i int, c pixbuf.Color) {
		if c != pal[0] && c != pal[1] {
			t.Fatalf("Sample %d: %v is not in the palette", i, c)
		}
	})
}

func TestWorkersMatchSequential(t *testing.T) {
	src := noise(64, 120, 6)

	s := DefaultSettings()
	s.Brightness = 90
	s.Contrast = 130
	s.Saturation = 150
	s.PosterizationLevels = 6
	s.PaletteSwap = tone.PresetVintage
	s.OutlineDetection = edge.MethodLaplacian
	s.EdgeDetection = edge.MethodSobel
	s.QuantizationMethod = quantize.MethodOctree
	s.ColorCount = 16
	s.PixelSize = 4

	want := New().Process(src, s)
	got := New(WithWorkers(4)).Process(src, s)
	if !got.Equal(want) {
		t.Error("Banded run should match the sequential one")
	}
}

func TestSeededKMeansIsReproducible(t *testing.T) {
	src := noise(30, 30, 7)
	s := IdentitySettings()
	s.QuantizationMethod = quantize.MethodKMeans
	s.ColorCount = 5

	a := New(WithRand(rand.New(rand.NewPCG(9, 9)))).Process(src, s)
	b := New(WithRand(rand.New(rand.NewPCG(9, 9)))).Process(src, s)
	if !a.Equal(b) {
		t.Error("Equal seeds should give equal output")
	}
}

func TestNormalized(t *testing.T) {
	s := Settings{
		PixelSize:           -3,
		Brightness:          500,
		Contrast:            -1,
		Saturation:          150,
		ColorCount:          0,
		PosterizationLevels: 0,
		OutlineStrength:     101,
		EdgeStrength:        -5,
	}.Normalized()

	if s.PixelSize != 1 || s.Brightness != 200 || s.Contrast != 0 || s.Saturation != 150 {
		t.Errorf("Unexpected tone normalisation: %+v", s)
	}
	if s.ColorCount != 1 || s.PosterizationLevels != tone.MaxLevels {
		t.Errorf("Unexpected count normalisation: %+v", s)
	}
	if s.OutlineStrength != 100 || s.EdgeStrength != 0 {
		t.Errorf("Unexpected strength normalisation: %+v", s)
	}
	if s.QuantizationMethod != quantize.MethodNone || s.OutlineDetection != edge.MethodNone {
		t.Errorf("Empty methods should become none: %+v", s)
	}
}
