package glitchsort

import (
	"fmt"
	"image"
	"math"
	"sort"
)

// ValidateThresholds checks that thresholds is non-empty, finite and
// strictly ascending.
func ValidateThresholds(thresholds []float64) error {
	if len(thresholds) == 0 {
		return ErrEmptyThresholds
	}
	for i, t := range thresholds {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: thresholds[%d] = %g", ErrThresholdOrder, i, t)
		}
		if i > 0 && t <= thresholds[i-1] {
			return fmt.Errorf("%w: thresholds[%d] = %g after %g", ErrThresholdOrder, i, t, thresholds[i-1])
		}
	}
	return nil
}

// Band returns the index of the first threshold strictly greater than v,
// or the last index when v is at or above every threshold.
// Panics if thresholds is empty.
func Band(v float64, thresholds []float64) int {
	if len(thresholds) == 0 {
		panic(ErrEmptyThresholds)
	}
	i := sort.Search(len(thresholds), func(i int) bool { return thresholds[i] > v })
	return min(i, len(thresholds)-1)
}

// Colorize maps every value of field to its band color. Alpha is 255.
// Panics if thresholds are invalid or the palette length differs from the
// threshold count.
func Colorize(field *NoiseField, thresholds []float64, palette Palette) *image.RGBA {
	mustNot(ValidateThresholds(thresholds))
	if len(palette) != len(thresholds) {
		panic(fmt.Errorf("%w: %d colors, %d thresholds", ErrPaletteSize, len(palette), len(thresholds)))
	}
	colors := make([][4]uint8, len(palette))
	for i := range palette {
		c := palette.RGBA(i)
		colors[i] = [4]uint8{c.R, c.G, c.B, 255}
	}
	img := image.NewRGBA(image.Rect(0, 0, field.W, field.H))
	counts := make([]int, len(thresholds))
	for y := range field.H {
		for x := range field.W {
			b := Band(field.At(x, y), thresholds)
			counts[b]++
			off := img.PixOffset(x, y)
			copy(img.Pix[off:off+4], colors[b][:])
		}
	}
	Logger().Debug("colorize", "width", field.W, "height", field.H, "bands", len(thresholds), "bandCounts", counts)
	return img
}
