package pixbuf

import (
	"image"
	"image/color"
	"testing"
)

func TestNewNegativeDimensions(t *testing.T) {
	b := New(-3, 4)
	if b.Width != 0 || b.Height != 4 || len(b.Pix) != 0 {
		t.Errorf("Expected 0x4 empty buffer, got %dx%d with %d samples", b.Width, b.Height, len(b.Pix))
	}
	if !b.Empty() {
		t.Error("Buffer with zero width should be empty")
	}
}

func TestSetAtKeepsAlpha(t *testing.T) {
	b := New(3, 2)
	b.Pix[b.PixOffset(2, 1)+3] = 77
	c := Color{R: 10, G: 20, B: 30}
	b.Set(2, 1, c)

	if got := b.At(2, 1); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if a := b.Pix[b.PixOffset(2, 1)+3]; a != 77 {
		t.Errorf("Alpha should be untouched, got %d", a)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.SetRGBA(6, 6, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	b := FromImage(src)
	if b.Width != 3 || b.Height != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", b.Width, b.Height)
	}
	want := Color{R: 200, G: 100, B: 50}
	if got := b.At(1, 1); got != want {
		t.Errorf("Expected %v at (1,1), got %v", want, got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(2, 2)
	b.Fill(Color{R: 1, G: 2, B: 3})
	c := b.Clone()
	c.Set(0, 0, Color{R: 9})

	if b.At(0, 0).R != 1 {
		t.Error("Modifying clone should not affect original")
	}
	if b.Equal(c) {
		t.Error("Clone was modified, buffers should differ")
	}
}

func TestCloneNil(t *testing.T) {
	var b *Buffer
	c := b.Clone()
	if c == nil || !c.Empty() {
		t.Errorf("Expected an empty buffer, got %+v", c)
	}
}

func TestBandSharesRows(t *testing.T) {
	b := New(4, 5)
	band := b.Band(2, 4)
	if band.Width != 4 || band.Height != 2 {
		t.Fatalf("Expected 4x2 band, got %dx%d", band.Width, band.Height)
	}
	band.Set(1, 0, Color{R: 42})
	if b.At(1, 2).R != 42 {
		t.Error("Band should write through to the parent rows")
	}

	if got := b.Band(4, 9); got.Height != 1 {
		t.Errorf("Out of range band should be clipped, got height %d", got.Height)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{140.75, 141},
		{254.6, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDistSq(t *testing.T) {
	a := Color{R: 10, G: 20, B: 30}
	b := Color{R: 13, G: 16, B: 30}
	if d := a.DistSq(b); d != 25 {
		t.Errorf("Expected 25, got %d", d)
	}
}
