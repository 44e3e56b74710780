package segment

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidConfig is returned when a Config field is out of range.
var ErrInvalidConfig = errors.New("invalid segmentation config")

// Config holds the tunable parameters of a pipeline run.
type Config struct {
	// BlurPasses is the number of 3×3 mean filter passes (>= 0).
	BlurPasses int `json:"blur_passes"`

	// EdgeThreshold is the gradient magnitude at which a pixel becomes a
	// barrier.
	EdgeThreshold uint8 `json:"edge_threshold"`

	// SeedCount is the number of seed sampling attempts, 0..MaxSeedCount.
	SeedCount int `json:"seed_count"`
}

// DefaultConfig returns one blur pass, threshold 32 and 1024 seed attempts.
func DefaultConfig() Config {
	return Config{
		BlurPasses:    1,
		EdgeThreshold: DefaultEdgeThreshold,
		SeedCount:     DefaultSeedCount,
	}
}

// Validate reports whether the configuration can be run.
func (c Config) Validate() error {
	if c.BlurPasses < 0 {
		return fmt.Errorf("%w: blur_passes must be >= 0, got %d", ErrInvalidConfig, c.BlurPasses)
	}
	if c.SeedCount < 0 || c.SeedCount > MaxSeedCount {
		return fmt.Errorf("%w: seed_count must be in [0, %d], got %d", ErrInvalidConfig, MaxSeedCount, c.SeedCount)
	}
	return nil
}

// Result is the output of a pipeline run.
//
// Regions and Count are the primary outputs. Gray, Mask and Seeds are the
// intermediate stages, kept for diagnostics and rendering of overlays.
type Result struct {
	// Regions is the false-colored region buffer, same size as the input.
	Regions *Image

	// Count is the red-channel histogram estimate of the number of cells.
	Count int

	// Seeds lists every live seed in placement order, with Active cleared
	// for seeds that lost a conflict.
	Seeds []Seed

	// Mask is the barrier mask the regions were grown against.
	Mask *Mask

	// Gray is the smoothed grayscale buffer the mask was derived from.
	Gray *Gray
}

// Survivors returns the number of seeds still active after growth.
func (r *Result) Survivors() int {
	return ActiveSeeds(r.Seeds)
}

// Run executes the full segmentation pipeline on img.
//
// Parameters:
//   - img: Source RGB image. It is never modified.
//   - cfg: Pipeline configuration; see DefaultConfig.
//   - src: Uniform random source used for seed placement. Supplying the same
//     source state yields identical results.
//
// Returns:
//   - *Result: Region buffer, cell count and intermediate stages.
//   - error: Non-nil if the image buffer is malformed, the configuration is
//     out of range, or src is nil.
//
// # Stages
//
//  1. Grayscale conversion: (R+G+B)/3
//  2. Smoothing: cfg.BlurPasses passes of a 3×3 mean filter
//  3. Edge detection: Sobel magnitude, border replication, binarization
//  4. Seed placement: cfg.SeedCount random attempts on passable pixels
//  5. Region growing: flood fill with first-claimant-wins conflicts
//  6. Counting: occupied non-zero red histogram bins
func Run(img *Image, cfg Config, src Source) (*Result, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input image: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidConfig)
	}

	start := time.Now()
	logger := log.WithFields(log.Fields{
		"width":  img.Width,
		"height": img.Height,
	})

	gray := SmoothN(ToGrayscale(img), cfg.BlurPasses)
	mask := DetectEdges(gray, cfg.EdgeThreshold)
	logger.WithFields(log.Fields{
		"blur_passes": cfg.BlurPasses,
		"threshold":   cfg.EdgeThreshold,
		"barriers":    mask.BarrierCount(),
	}).Debug("Barrier mask computed")

	regions := NewBlankImage(img.Width, img.Height)
	seeds := PlaceSeeds(mask, regions, cfg.SeedCount, src)
	GrowRegions(mask, regions, seeds)

	res := &Result{
		Regions: regions,
		Count:   CountRegions(regions),
		Seeds:   seeds,
		Mask:    mask,
		Gray:    gray,
	}

	logger.WithFields(log.Fields{
		"attempts":  cfg.SeedCount,
		"seeds":     len(seeds),
		"survivors": res.Survivors(),
		"count":     res.Count,
		"elapsed":   time.Since(start),
	}).Debug("Segmentation finished")

	return res, nil
}
