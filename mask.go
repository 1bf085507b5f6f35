package glitchsort

import (
	"fmt"
	"image"
	"slices"

	"gonum.org/v1/gonum/stat"
)

const (
	MaskSkip uint8 = 0
	MaskSort uint8 = 255
)

// BuildMask returns 255 where low <= v <= high and 0 elsewhere.
// Panics if low > high.
func BuildMask(gray *image.Gray, low, high uint8) *image.Gray {
	if low > high {
		panic(fmt.Errorf("%w: low %d, high %d", ErrMaskRange, low, high))
	}
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	mask := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		dst := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, v := range src {
			if v >= low && v <= high {
				dst[x] = MaskSort
			}
		}
	}
	return mask
}

// MaskCoverage returns the fraction of mask pixels set to 255.
func MaskCoverage(mask *image.Gray) float64 {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0
	}
	n := 0
	for y := range h {
		for _, v := range mask.Pix[y*mask.Stride : y*mask.Stride+w] {
			if v == MaskSort {
				n++
			}
		}
	}
	return float64(n) / float64(w*h)
}

// MaskRange returns the inclusive brightness window between the
// (1-coverage)/2 and (1+coverage)/2 quantiles. coverage is clamped to
// [0, 1]. The window is a quantile range, not a guaranteed fraction:
// repeated values at its edges are all selected, so a flat image yields
// low == high and a mask covering every pixel.
func MaskRange(gray *image.Gray, coverage float64) (low, high uint8) {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0, 255
	}
	coverage = max(0, min(1, coverage))
	vals := make([]float64, 0, w*h)
	for y := range h {
		for _, v := range gray.Pix[y*gray.Stride : y*gray.Stride+w] {
			vals = append(vals, float64(v))
		}
	}
	slices.Sort(vals)
	lo := stat.Quantile((1-coverage)/2, stat.Empirical, vals, nil)
	hi := stat.Quantile((1+coverage)/2, stat.Empirical, vals, nil)
	return uint8(lo), uint8(hi)
}

// LuminanceStats returns mean and standard deviation of gray.
func LuminanceStats(gray *image.Gray) (mean, std float64) {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	vals := make([]float64, 0, w*h)
	for y := range h {
		for _, v := range gray.Pix[y*gray.Stride : y*gray.Stride+w] {
			vals = append(vals, float64(v))
		}
	}
	if len(vals) == 0 {
		return 0, 0
	}
	return stat.MeanStdDev(vals, nil)
}
