package quantize

import "pixelart/pixbuf"

// KMeansIterations is the fixed number of assign/update rounds.
const KMeansIterations = 10

// KMeans seeds k centroids with colours picked uniformly at random (with
// replacement) and refines them for exactly KMeansIterations rounds. A
// centroid that attracts no colour keeps its previous value, so the
// palette may hold duplicates.
func KMeans(colors []pixbuf.Color, k int, rng Rand) Palette {
	if len(colors) == 0 {
		return nil
	}
	k = max(1, k)
	if rng == nil {
		rng = globalRand{}
	}

	centroids := make(Palette, k)
	for i := range centroids {
		centroids[i] = colors[rng.IntN(len(colors))]
	}

	type sum struct{ r, g, b, n int }
	sums := make([]sum, k)
	for range KMeansIterations {
		clear(sums)
		for _, c := range colors {
			s := &sums[centroids.Index(c)]
			s.r += int(c.R)
			s.g += int(c.G)
			s.b += int(c.B)
			s.n++
		}

		for i, s := range sums {
			if s.n > 0 {
				centroids[i] = meanOf(s.r, s.g, s.b, s.n)
			}
		}
	}

	return centroids
}
