package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// MaxPreparedPixels bounds the pixel count of a rescaled image.
const MaxPreparedPixels = 100_000_000

// Region is a rectangle in source-image pixel coordinates. (X1,Y1) is
// inclusive, (X2,Y2) is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts r to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Prepare crops img to region and rescales it before segmentation.
//
// A nil region keeps the whole image. A scale of 0 or 1 leaves the size
// unchanged; other positive values resize with a Lanczos filter, provided the
// result stays within MaxPreparedPixels. Scaling down a large micrograph
// trades detail for a much shorter run.
func Prepare(img image.Image, region *Region, scale float64) (image.Image, error) {
	if scale < 0 {
		return nil, fmt.Errorf("invalid scale %v: must be >= 0", scale)
	}

	out := img
	if region != nil {
		bounds := img.Bounds()
		if region.X1 < bounds.Min.X || region.Y1 < bounds.Min.Y || region.X2 > bounds.Max.X || region.Y2 > bounds.Max.Y {
			return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
				region.X1, region.Y1, region.X2, region.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
			return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
		}
		out = imaging.Crop(img, region.Rect())
	}

	if scale != 0 && scale != 1 {
		fw := float64(out.Bounds().Dx()) * scale
		fh := float64(out.Bounds().Dy()) * scale
		if fw*fh > MaxPreparedPixels {
			return nil, fmt.Errorf("scale %v enlarges image to %.0fx%.0f, over the %d pixel limit", scale, fw, fh, MaxPreparedPixels)
		}
		w, h := int(fw), int(fh)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %v reduces image to %dx%d", scale, w, h)
		}
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}

	return out, nil
}
