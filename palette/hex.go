package palette

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"pixelart/pixbuf"
	"pixelart/quantize"

	"github.com/lucasb-eyer/go-colorful"
)

// ReadHex reads a Lospec-style hex list: one RRGGBB (or #RRGGBB, #RGB)
// colour per line. Blank lines and lines starting with ';' are skipped.
func ReadHex(r io.Reader) (quantize.Palette, error) {
	var res quantize.Palette

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, ";") {
			continue
		}

		c, err := ParseHex(s)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		res = append(res, c)
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("could not read hex palette: %w", err)
	}

	return res, nil
}

// ParseHex parses one colour written as RRGGBB, #RRGGBB or #RGB.
func ParseHex(s string) (pixbuf.Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return pixbuf.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return pixbuf.Color{R: r, G: g, B: b}, nil
}

// Hex formats c as lowercase rrggbb without a leading '#'.
func Hex(c pixbuf.Color) string {
	return strings.TrimPrefix(colorfulOf(c).Hex(), "#")
}

// WriteHex writes one lowercase rrggbb line per colour.
func WriteHex(w io.Writer, pal quantize.Palette) (int64, error) {
	bw := bufio.NewWriter(w)
	for _, c := range pal {
		if _, err := bw.WriteString(Hex(c) + "\n"); err != nil {
			return 0, fmt.Errorf("could not write color: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("could not write hex palette: %w", err)
	}
	return int64(len(pal)), nil
}

func colorfulOf(c pixbuf.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
