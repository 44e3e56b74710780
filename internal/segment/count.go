package segment

import (
	"github.com/anthonynsimon/bild/histogram"
)

// MaxCount is the upper bound of CountRegions: one per non-zero red value.
const MaxCount = 255

// CountRegions estimates the number of regions in a painted buffer.
//
// It builds a 256-bin red-channel histogram and counts the occupied bins,
// ignoring bin 0 (background). Two regions sharing a red value are counted
// once, so the result can under-count; use CountDistinctColors for the exact
// number of distinct fill colors.
func CountRegions(regions *Image) int {
	hist := histogram.NewRGBAHistogram(regions)

	count := 0
	for red, n := range hist.R.Bins {
		if red == 0 {
			continue
		}
		if n > 0 {
			count++
		}
	}
	return count
}

// CountDistinctColors returns the number of distinct non-background colors in
// the buffer.
func CountDistinctColors(regions *Image) int {
	seen := make(map[RGB]struct{})
	for i := 0; i+2 < len(regions.Pix); i += 3 {
		c := RGB{R: regions.Pix[i], G: regions.Pix[i+1], B: regions.Pix[i+2]}
		if !c.IsBackground() {
			seen[c] = struct{}{}
		}
	}
	return len(seen)
}
