package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/cellseg-mcp/internal/segment"
)

// ToSegmentImage copies img into the packed RGB buffer the segmentation
// pipeline consumes.
//
// The image is normalized to RGBA through bild's clone package, so any
// decoded format (paletted GIF, 16-bit PNG, YCbCr JPEG) is accepted. Alpha is
// dropped; fully transparent pixels therefore come out black. The returned
// image always has its origin at (0,0) regardless of img.Bounds().Min.
func ToSegmentImage(img image.Image) (*segment.Image, error) {
	if img == nil {
		return nil, segment.ErrNilImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", segment.ErrInvalidDimensions, b.Dx(), b.Dy())
	}

	rgba := clone.AsShallowRGBA(img)
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		row := rgba.Pix[rgba.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			copy(pix[(y*w+x)*3:(y*w+x)*3+3], row[x*4:x*4+3])
		}
	}

	return segment.NewImage(w, h, pix)
}
