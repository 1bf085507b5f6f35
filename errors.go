package glitchsort

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyThresholds = errors.New("glitchsort: threshold list is empty")
	ErrThresholdOrder  = errors.New("glitchsort: thresholds must be finite and strictly ascending")
	ErrPaletteSize     = errors.New("glitchsort: palette length must equal threshold count")
	ErrSizeMismatch    = errors.New("glitchsort: image and mask dimensions differ")
	ErrMaskRange       = errors.New("glitchsort: mask range requires low <= high")
	ErrInvalidSize     = errors.New("glitchsort: width and height must be positive")
	ErrInvalidScale    = errors.New("glitchsort: noise scale must be positive")
	ErrNoInput         = errors.New("glitchsort: sorter has no input image")
)

// mustNot panics when err is non-nil. Core operations are total over valid
// input; violated preconditions are programming errors.
func mustNot(err error) {
	if err != nil {
		panic(err)
	}
}

func sizeMismatch(iw, ih, mw, mh int) error {
	return fmt.Errorf("%w: image %dx%d, mask %dx%d", ErrSizeMismatch, iw, ih, mw, mh)
}
