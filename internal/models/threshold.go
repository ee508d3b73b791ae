package models

import (
	"github.com/anthonynsimon/bild/histogram"
)

// AutoBand derives a threshold band from the stack's intensity histogram.
// Binary input (only 0 and 255 values) maps to the band [255, 255], matching
// the convention that background is always 0 for binary images. Grayscale
// input gets an Otsu threshold as the lower bound with 255 as the upper.
func AutoBand(s *Stack) ThresholdBand {
	bins := make([]int, 256)
	for z := 0; z < s.Depth; z++ {
		h := histogram.NewRGBAHistogram(s.ToGray(z))
		for i, c := range h.R.Bins {
			bins[i] += c
		}
	}

	total := 0
	for _, c := range bins {
		total += c
	}
	if total == 0 {
		return ThresholdBand{Lower: 255, Upper: 255}
	}
	if bins[0]+bins[255] == total {
		return ThresholdBand{Lower: 255, Upper: 255}
	}

	return ThresholdBand{Lower: float64(otsuLevel(bins, total)), Upper: 255}
}

// otsuLevel finds the threshold maximizing between-class variance.
func otsuLevel(bins []int, total int) int {
	var sum float64
	for i, c := range bins {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	best, bestVar := 0, -1.0
	for t := 0; t < 256; t++ {
		wB += float64(bins[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(bins[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			best = t
		}
	}
	return best
}
