// Package parallel spreads work across goroutines: whole jobs through a
// Pool, or the rows of one image through Bands.
package parallel

import "sync"

// minBandRows keeps bands from getting so thin that goroutine overhead
// dominates.
const minBandRows = 16

// Bands splits rows [0, height) into at most workers contiguous bands and
// calls f once per band, concurrently when more than one band results.
// f must only touch its own rows. Bands returns when every call is done.
func Bands(height, workers int, f func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	n := min(Workers(workers), max(1, height/minBandRows))
	if n <= 1 {
		f(0, height)
		return
	}

	var wg sync.WaitGroup
	size := (height + n - 1) / n
	for y0 := 0; y0 < height; y0 += size {
		y1 := min(y0+size, height)
		wg.Go(func() {
			f(y0, y1)
		})
	}
	wg.Wait()
}
