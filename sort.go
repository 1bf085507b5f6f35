package glitchsort

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Run is a maximal span [Start, End) of mask-selected pixels within a row.
type Run struct {
	Start, End int
}

func (r Run) Len() int { return r.End - r.Start }

// Runs returns the maximal spans of 255 in one mask row, left to right.
func Runs(mask []uint8) []Run {
	var runs []Run
	start := -1
	for x, v := range mask {
		if v == MaskSort {
			if start < 0 {
				start = x
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, Run{start, x})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Run{start, len(mask)})
	}
	return runs
}

type keyedPixel struct {
	luma uint8
	pix  [4]uint8
}

// SortRow returns a copy of row (RGBA bytes, 4 per pixel) in which every run
// selected by mask is stably sorted by ascending luminance. Pixels outside
// the runs are copied unchanged. Panics if len(row) != 4*len(mask).
func SortRow(row, mask []uint8) []uint8 {
	out := slices.Clone(row)
	sortRowInto(out, row, mask, nil)
	return out
}

// sortRowInto writes the sorted runs of src into dst and returns the
// scratch buffer for reuse along with the number of runs sorted.
// dst must already hold a copy of src.
func sortRowInto(dst, src, mask []uint8, buf []keyedPixel) ([]keyedPixel, int) {
	if len(src) != 4*len(mask) || len(dst) != len(src) {
		panic(fmt.Errorf("%w: row of %d bytes, mask of %d", ErrSizeMismatch, len(src), len(mask)))
	}
	runs := Runs(mask)
	for _, r := range runs {
		buf = buf[:0]
		for x := r.Start; x < r.End; x++ {
			p := [4]uint8(src[x*4 : x*4+4])
			buf = append(buf, keyedPixel{Luminance(p[0], p[1], p[2]), p})
		}
		slices.SortStableFunc(buf, func(a, b keyedPixel) int {
			return int(a.luma) - int(b.luma)
		})
		for i, kp := range buf {
			x := r.Start + i
			copy(dst[x*4:x*4+4], kp.pix[:])
		}
	}
	return buf, len(runs)
}

// SortImage clones img and sorts every masked run of every row by
// luminance. Rows are independent and are fanned out over workers
// goroutines; workers <= 0 uses GOMAXPROCS and 1 runs sequentially.
// The returned error is non-nil only when ctx is cancelled.
// Panics if img and mask differ in size.
func SortImage(ctx context.Context, img *image.RGBA, mask *image.Gray, workers int) (*image.RGBA, error) {
	ib, mb := img.Bounds(), mask.Bounds()
	w, h := ib.Dx(), ib.Dy()
	if w != mb.Dx() || h != mb.Dy() {
		panic(sizeMismatch(w, h, mb.Dx(), mb.Dy()))
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		copy(out.Pix[y*out.Stride:y*out.Stride+w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, max(h, 1))

	srcRow := func(y int) []uint8 { return img.Pix[y*img.Stride : y*img.Stride+w*4] }
	dstRow := func(y int) []uint8 { return out.Pix[y*out.Stride : y*out.Stride+w*4] }
	maskRow := func(y int) []uint8 { return mask.Pix[y*mask.Stride : y*mask.Stride+w] }

	// Each worker owns a disjoint band of rows, its own scratch buffer and
	// its own slot in runCounts.
	g, ctx := errgroup.WithContext(ctx)
	chunk := (h + workers - 1) / workers
	runCounts := make([]int, workers)
	for i, start := 0, 0; start < h; i, start = i+1, start+chunk {
		end := min(start+chunk, h)
		g.Go(func() error {
			var buf []keyedPixel
			for y := start; y < end; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				var n int
				buf, n = sortRowInto(dstRow(y), srcRow(y), maskRow(y), buf)
				runCounts[i] += n
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	total := 0
	for _, n := range runCounts {
		total += n
	}
	Logger().Debug("sort", "width", w, "height", h, "workers", workers, "runs", total)
	return out, nil
}
