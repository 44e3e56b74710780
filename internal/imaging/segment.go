package imaging

import (
	"fmt"
	"image"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/cellseg-mcp/internal/segment"
)

// SegmentResult is the JSON summary of one segmentation run.
type SegmentResult struct {
	// CellCount is the red-channel histogram estimate, capped at 255.
	CellCount int `json:"cell_count"`

	// DistinctColors is the exact number of distinct region colors. It can
	// exceed CellCount when two regions share a red value.
	DistinctColors int `json:"distinct_colors"`

	// SeedsPlaced is the number of sampling attempts that produced a seed.
	SeedsPlaced int `json:"seeds_placed"`

	// SeedsSurviving is the number of seeds still active after growth.
	SeedsSurviving int `json:"seeds_surviving"`

	// Seed is the random seed the run was drawn from.
	Seed uint64 `json:"seed"`

	// Config echoes the pipeline parameters used.
	Config segment.Config `json:"config"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// ImageBase64 is the region buffer as base64 PNG. Omitted when the
	// result was written to OutputPath instead.
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`

	// OutputPath is where the region buffer was saved, if requested.
	OutputPath string `json:"output_path,omitempty"`
}

// RunSegmentation converts img and runs the full pipeline on it with a
// source drawn from seed. Equal (img, cfg, seed) triples produce identical
// results.
func RunSegmentation(img image.Image, cfg segment.Config, seed uint64) (*segment.Result, error) {
	src, err := ToSegmentImage(img)
	if err != nil {
		return nil, err
	}

	res, err := segment.Run(src, cfg, segment.NewSource(seed))
	if err != nil {
		return nil, fmt.Errorf("segmentation failed: %w", err)
	}
	return res, nil
}

// Summarize builds the tool-facing summary of res. When outputPath is set
// the region buffer is saved there as PNG; otherwise it is embedded inline.
func Summarize(res *segment.Result, cfg segment.Config, seed uint64, outputPath string) (*SegmentResult, error) {
	out := &SegmentResult{
		CellCount:      res.Count,
		DistinctColors: segment.CountDistinctColors(res.Regions),
		SeedsPlaced:    len(res.Seeds),
		SeedsSurviving: res.Survivors(),
		Seed:           seed,
		Config:         cfg,
		Width:          res.Regions.Width,
		Height:         res.Regions.Height,
	}

	if outputPath != "" {
		if err := SavePNG(outputPath, res.Regions); err != nil {
			return nil, err
		}
		out.OutputPath = outputPath
		log.WithFields(log.Fields{
			"path":  outputPath,
			"count": res.Count,
		}).Info("Region image saved")
		return out, nil
	}

	encoded, err := EncodePNGBase64(res.Regions)
	if err != nil {
		return nil, err
	}
	out.ImageBase64 = encoded
	out.MimeType = MimeTypePNG
	return out, nil
}
