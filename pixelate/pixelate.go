// Package pixelate produces the blocky mosaic look by shrinking an image and
// blowing it back up without interpolation.
package pixelate

import (
	"image"

	"golang.org/x/image/draw"

	"pixelart/pixbuf"
)

// boxFilter averages every source pixel under the destination pixel's
// footprint with equal weight. draw widens the support by the scale factor
// when shrinking, so a support of 0.5 covers exactly one block.
var boxFilter = &draw.Kernel{
	Support: 0.5,
	At: func(t float64) float64 {
		return 1
	},
}

// BlockSize returns the dimensions of the shrunk image for a given pixel
// size, never less than 1x1.
func BlockSize(width, height, pixelSize int) (int, int) {
	pixelSize = max(1, pixelSize)
	return max(1, width/pixelSize), max(1, height/pixelSize)
}

// Pixelate returns a copy of buf reduced to pixelSize blocks. The output has
// the same dimensions as buf. A pixel size of 1 (or less) returns an exact
// copy; a nil buf yields an empty buffer.
func Pixelate(buf *pixbuf.Buffer, pixelSize int) *pixbuf.Buffer {
	if buf.Empty() || pixelSize <= 1 {
		return buf.Clone()
	}

	sw, sh := BlockSize(buf.Width, buf.Height, pixelSize)
	src := buf.Image()

	small := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	boxFilter.Scale(small, small.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := pixbuf.New(buf.Width, buf.Height)
	dst := out.Image()
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)
	return out
}
