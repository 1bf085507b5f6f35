package glitchsort_test

import (
	"fmt"

	gs "github.com/setanarut/glitchsort"
)

func ExampleSortRow() {
	// Five gray pixels; the third is masked off and splits two runs.
	var row []uint8
	for _, v := range []uint8{200, 50, 10, 90, 30} {
		row = append(row, v, v, v, 255)
	}
	mask := []uint8{255, 255, 0, 255, 255}

	out := gs.SortRow(row, mask)
	var reds []uint8
	for x := range len(mask) {
		reds = append(reds, out[x*4])
	}
	fmt.Println(reds)
	fmt.Println(gs.Runs(mask))
	// Output:
	// [50 200 10 30 90]
	// [{0 2} {3 5}]
}

func ExampleBand() {
	thresholds := []float64{-0.5, 0, 0.5}
	var bands []int
	for _, v := range []float64{-0.9, -0.5, 0.2, 0.7} {
		bands = append(bands, gs.Band(v, thresholds))
	}
	fmt.Println(bands)
	// Output:
	// [0 1 2 2]
}
