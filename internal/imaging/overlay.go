package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/cellseg-mcp/internal/segment"
)

// OverlayResult contains the source image annotated with the outcome of a
// segmentation run.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	// Labeled is the number of seed markers drawn.
	Labeled int `json:"labeled"`
}

// DefaultOverlayColor is the tint used for barrier pixels.
const DefaultOverlayColor = "#FF0000"

// Overlay draws res on top of img: barrier pixels are blended with
// barrierHex at the given opacity. When showLabels is set, each palette
// entry whose seed point belongs to a surviving seed is marked at that point
// with its 1-based rank in RegionPalette order; Labeled counts those marks.
//
// img must be the prepared image the run was made from, so that the two
// share dimensions.
func Overlay(img image.Image, res *segment.Result, barrierHex string, opacity float64, showLabels bool) (*OverlayResult, error) {
	b := img.Bounds()
	if b.Dx() != res.Mask.Width || b.Dy() != res.Mask.Height {
		return nil, fmt.Errorf("overlay size mismatch: image %dx%d, mask %dx%d",
			b.Dx(), b.Dy(), res.Mask.Width, res.Mask.Height)
	}
	if opacity < 0 || opacity > 1 {
		return nil, fmt.Errorf("invalid opacity %v: must be in [0,1]", opacity)
	}

	tint, err := colorful.Hex(barrierHex)
	if err != nil {
		tint, _ = colorful.Hex(DefaultOverlayColor)
	}

	// imaging.Clone rebases to (0,0)
	out := imaging.Clone(img)
	for y := 0; y < res.Mask.Height; y++ {
		for x := 0; x < res.Mask.Width; x++ {
			if !res.Mask.Blocked(x, y) {
				continue
			}
			src, _ := colorful.MakeColor(out.NRGBAAt(x, y))
			r, g, bl := src.BlendRgb(tint, opacity).Clamped().RGB255()
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: bl, A: 255})
		}
	}

	labeled := 0
	if showLabels {
		fg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		bg := color.NRGBA{R: 0, G: 0, B: 0, A: 180}
		origins := make(map[Point]bool, len(res.Seeds))
		for _, s := range res.Seeds {
			if s.Active {
				origins[Point{X: s.X, Y: s.Y}] = true
			}
		}
		for i, rc := range RegionPalette(res) {
			if !origins[rc.Seed] {
				continue
			}
			drawLabel(out, rc.Seed.X, rc.Seed.Y, strconv.Itoa(i+1), fg, bg)
			labeled++
		}
	}

	encoded, err := EncodePNGBase64(out)
	if err != nil {
		return nil, err
	}

	return &OverlayResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    MimeTypePNG,
		Labeled:     labeled,
	}, nil
}

// drawLabel draws text with a 3x5 pixel digit font, top-left at (x, y).
// Pixels falling outside img are clipped.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	set := func(px, py int, c color.NRGBA) {
		if image.Pt(px, py).In(bounds) {
			img.SetNRGBA(px, py, c)
		}
	}

	const charWidth = 4
	for dy := -1; dy < 6; dy++ {
		for dx := -1; dx < len(text)*charWidth; dx++ {
			set(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if pixel == '1' {
					set(cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
