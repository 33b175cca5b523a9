package pixbuf

import (
	"image"

	"golang.org/x/image/draw"
)

// DefaultMaxSize caps the longer side of images handed to the pipeline.
const DefaultMaxSize = 400

// FitSize scales width x height so the longer side is at most maxSize,
// keeping the aspect ratio. Fractional sizes are truncated. A maxSize
// below 1 disables the cap.
func FitSize(width, height, maxSize int) (int, int) {
	if maxSize < 1 {
		return width, height
	}

	if width > height {
		if width > maxSize {
			height = max(1, height*maxSize/width)
			width = maxSize
		}
	} else if height > maxSize {
		width = max(1, width*maxSize/height)
		height = maxSize
	}

	return width, height
}

// Fit decodes img into a buffer no larger than maxSize on its longer side,
// resampling with Catmull-Rom when it has to shrink.
func Fit(img image.Image, maxSize int) *Buffer {
	sr := img.Bounds()
	width, height := FitSize(sr.Dx(), sr.Dy(), maxSize)
	if width == sr.Dx() && height == sr.Dy() {
		return FromImage(img)
	}

	buf := New(width, height)
	draw.CatmullRom.Scale(buf.Image(), image.Rect(0, 0, width, height), img, sr, draw.Src, nil)
	return buf
}
