package palette

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"pixelart/pixbuf"
	"pixelart/quantize"
)

var testPalette = quantize.Palette{
	{R: 0, G: 0, B: 0},
	{R: 255, G: 0, B: 0},
	{R: 18, G: 52, B: 86},
	{R: 255, G: 255, B: 255},
}

func chunk(id string, payload []byte) []byte {
	b := append([]byte(id), binary.LittleEndian.AppendUint32(nil, uint32(len(payload)))...)
	return append(b, payload...)
}

func palPayload(pal quantize.Palette) []byte {
	b := []byte{0x00, 0x03}
	b = binary.LittleEndian.AppendUint16(b, uint16(len(pal)))
	for _, c := range pal {
		b = append(b, c.R, c.G, c.B, 0)
	}
	return b
}

func TestRIFFRoundTrip(t *testing.T) {
	second := quantize.Palette{{R: 1, G: 2, B: 3}}

	var buf bytes.Buffer
	n, err := WriteRIFF(&buf, testPalette, second)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 5 {
		t.Errorf("Expected 5 colours written, got %d", n)
	}

	pals, err := ReadRIFF(&buf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(pals) != 2 {
		t.Fatalf("Expected 2 palettes, got %d", len(pals))
	}
	for i, want := range []quantize.Palette{testPalette, second} {
		if len(pals[i]) != len(want) {
			t.Fatalf("Palette %d: expected %d colours, got %d", i, len(want), len(pals[i]))
		}
		for j := range want {
			if pals[i][j] != want[j] {
				t.Errorf("Palette %d colour %d: expected %v, got %v", i, j, want[j], pals[i][j])
			}
		}
	}
}

func TestRIFFNestedList(t *testing.T) {
	list := chunk("LIST", append([]byte("PAL "), chunk("data", palPayload(testPalette[:2]))...))
	doc := chunk("RIFF", append(append([]byte("PAL "), list...), chunk("data", palPayload(testPalette[2:]))...))

	pals, err := ReadRIFF(bytes.NewReader(doc))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(pals) != 2 || len(pals[0]) != 2 || len(pals[1]) != 2 {
		t.Fatalf("Expected two palettes of two colours, got %v", pals)
	}
	if pals[1][0] != testPalette[2] {
		t.Errorf("Expected %v, got %v", testPalette[2], pals[1][0])
	}
}

func TestRIFFRejects(t *testing.T) {
	badVersion := palPayload(testPalette)
	badVersion[1] = 0x04

	tests := []struct {
		name string
		doc  []byte
	}{
		{"wrong form", chunk("RIFF", append([]byte("WAVE"), chunk("data", palPayload(testPalette))...))},
		{"wrong version", chunk("RIFF", append([]byte("PAL "), chunk("data", badVersion)...))},
		{"unknown chunk", chunk("RIFF", append([]byte("PAL "), chunk("fmt ", palPayload(testPalette))...))},
		{"truncated", chunk("RIFF", append([]byte("PAL "), chunk("data", palPayload(testPalette)[:8])...))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadRIFF(bytes.NewReader(tt.doc)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestReadHex(t *testing.T) {
	in := "; lospec export\nff0000\n\n  #123456 \n#fff\n"
	pal, err := ReadHex(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := quantize.Palette{
		{R: 255, G: 0, B: 0},
		{R: 0x12, G: 0x34, B: 0x56},
		{R: 255, G: 255, B: 255},
	}
	if len(pal) != len(want) {
		t.Fatalf("Expected %d colours, got %d", len(want), len(pal))
	}
	for i := range want {
		if pal[i] != want[i] {
			t.Errorf("Colour %d: expected %v, got %v", i, want[i], pal[i])
		}
	}
}

func TestReadHexInvalid(t *testing.T) {
	_, err := ReadHex(strings.NewReader("000000\nnothex\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected an error naming line 2, got %v", err)
	}
}

func TestWriteHex(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteHex(&buf, testPalette); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := "000000\nff0000\n123456\nffffff\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{ExtRIFF, ExtHex} {
		path := filepath.Join(dir, "test"+ext)
		if err := Save(path, testPalette); err != nil {
			t.Fatalf("%s: could not save: %v", ext, err)
		}
		pal, err := Load(path)
		if err != nil {
			t.Fatalf("%s: could not load: %v", ext, err)
		}
		if len(pal) != len(testPalette) {
			t.Fatalf("%s: expected %d colours, got %d", ext, len(testPalette), len(pal))
		}
		for i := range pal {
			if pal[i] != testPalette[i] {
				t.Errorf("%s colour %d: expected %v, got %v", ext, i, testPalette[i], pal[i])
			}
		}
	}
}

func TestSaveErrors(t *testing.T) {
	dir := t.TempDir()
	if err := Save(filepath.Join(dir, "x.hex"), nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}
	if err := Save(filepath.Join(dir, "x.act"), testPalette); err == nil {
		t.Error("Expected an error for an unknown extension")
	}
	if _, err := Load(filepath.Join(dir, "missing.pal")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestSwatch(t *testing.T) {
	sw := Swatch(testPalette, 4)
	if sw.Width != 16 || sw.Height != 4 {
		t.Fatalf("Expected 16x4, got %dx%d", sw.Width, sw.Height)
	}
	for i, c := range testPalette {
		if got := sw.At(i*4+3, 3); got != c {
			t.Errorf("Tile %d: expected %v, got %v", i, c, got)
		}
	}
}

func TestSortByBrightness(t *testing.T) {
	pal := quantize.Palette{
		{R: 255, G: 255, B: 255},
		{R: 0, G: 0, B: 255},
		{R: 0, G: 255, B: 0},
		{},
	}
	SortByBrightness(pal)

	want := []pixbuf.Color{{}, {R: 0, G: 0, B: 255}, {R: 0, G: 255, B: 0}, {R: 255, G: 255, B: 255}}
	for i := range want {
		if pal[i] != want[i] {
			t.Errorf("Position %d: expected %v, got %v", i, want[i], pal[i])
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex(pixbuf.Color{R: 10, G: 200, B: 255}); got != "0ac8ff" {
		t.Errorf("Expected 0ac8ff, got %s", got)
	}
}
