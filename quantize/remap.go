package quantize

import "pixelart/pixbuf"

// Remap replaces every pixel with its nearest palette entry. An empty
// palette leaves the buffer unchanged.
func Remap(buf *pixbuf.Buffer, pal Palette) {
	if len(pal) == 0 || buf.Empty() {
		return
	}

	cache := make(map[pixbuf.Color]pixbuf.Color)
	buf.Map(func(c pixbuf.Color) pixbuf.Color {
		if m, ok := cache[c]; ok {
			return m
		}
		m := pal[pal.Index(c)]
		cache[c] = m
		return m
	})
}
