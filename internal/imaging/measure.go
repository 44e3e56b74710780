package imaging

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/cellseg-mcp/internal/segment"
)

// AreaStats summarizes region sizes in pixels.
type AreaStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
}

// RegionStatsResult contains per-region measurements for a segmentation run.
type RegionStatsResult struct {
	// CellCount is the histogram estimate reported by the pipeline.
	CellCount int `json:"cell_count"`

	// RegionCount is the number of distinct region colors measured.
	RegionCount int `json:"region_count"`

	// Area is nil when no region was grown.
	Area *AreaStats `json:"area,omitempty"`

	// CoveragePercent is the share of the image painted by any region.
	CoveragePercent float64 `json:"coverage_percent"`

	// BarrierPercent is the share of the image marked as edge barrier.
	BarrierPercent float64 `json:"barrier_percent"`

	// Regions lists the largest regions first, truncated to the requested
	// limit.
	Regions []RegionColor `json:"regions"`
}

// RegionStats measures the regions of res. A limit <= 0 returns every region.
func RegionStats(res *segment.Result, limit int) *RegionStatsResult {
	palette := RegionPalette(res)
	total := float64(res.Regions.Width * res.Regions.Height)

	painted := 0
	areas := make([]float64, len(palette))
	for i, rc := range palette {
		areas[i] = float64(rc.Area)
		painted += rc.Area
	}

	out := &RegionStatsResult{
		CellCount:       res.Count,
		RegionCount:     len(palette),
		Area:            measureAreas(areas),
		CoveragePercent: math.Round(float64(painted)/total*1000) / 10,
		BarrierPercent:  math.Round(float64(res.Mask.BarrierCount())/total*1000) / 10,
		Regions:         palette,
	}
	if limit > 0 && len(out.Regions) > limit {
		out.Regions = out.Regions[:limit]
	}
	return out
}

// measureAreas expects areas sorted in descending order, as RegionPalette
// returns them.
func measureAreas(areas []float64) *AreaStats {
	if len(areas) == 0 {
		return nil
	}

	mean, std := stat.MeanStdDev(areas, nil)
	if math.IsNaN(std) {
		// Sample deviation is undefined for a single region
		std = 0
	}

	// stat.Quantile wants ascending input
	asc := make([]float64, len(areas))
	for i, a := range areas {
		asc[len(areas)-1-i] = a
	}

	return &AreaStats{
		Min:    floats.Min(areas),
		Max:    floats.Max(areas),
		Mean:   math.Round(mean*100) / 100,
		StdDev: math.Round(std*100) / 100,
		Median: stat.Quantile(0.5, stat.Empirical, asc, nil),
	}
}
