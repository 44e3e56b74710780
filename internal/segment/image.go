package segment

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Errors returned when an input buffer cannot be processed.
var (
	ErrNilImage          = errors.New("image is nil")
	ErrEmptyImage        = errors.New("image buffer is empty")
	ErrInvalidDimensions = errors.New("image dimensions must be positive")
	ErrBufferSize        = errors.New("image buffer length does not match dimensions")
)

// RGB is an 8-bit color triple as stored in an Image buffer.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Background is the color of pixels that belong to no region.
var Background = RGB{}

// IsBackground reports whether c is the background sentinel (0,0,0).
func (c RGB) IsBackground() bool {
	return c == Background
}

// Image is a row-major RGB raster with 3 interleaved 8-bit channels per pixel.
//
// The pixel at (x, y) occupies Pix[(y*Width+x)*3 : (y*Width+x)*3+3], with the
// origin at the top-left corner. Image implements image.Image so that results
// can be handed to encoders and image libraries without copying by hand.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewImage wraps an existing RGB buffer after validating it.
// The buffer is not copied; the caller keeps ownership.
func NewImage(width, height int, pix []uint8) (*Image, error) {
	m := &Image{Width: width, Height: height, Pix: pix}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewBlankImage allocates a background-filled RGB buffer.
func NewBlankImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
}

// Validate checks that the buffer is non-empty and matches Width×Height×3.
func (m *Image) Validate() error {
	if m == nil {
		return ErrNilImage
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, m.Width, m.Height)
	}
	if len(m.Pix) == 0 {
		return ErrEmptyImage
	}
	if want := m.Width * m.Height * 3; len(m.Pix) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d RGB",
			ErrBufferSize, len(m.Pix), want, m.Width, m.Height)
	}
	return nil
}

// InBounds reports whether (x, y) addresses a pixel of the image.
func (m *Image) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// RGBAt returns the color at (x, y). No bounds checking is performed.
func (m *Image) RGBAt(x, y int) RGB {
	i := (y*m.Width + x) * 3
	return RGB{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2]}
}

// SetRGB paints (x, y) with c. No bounds checking is performed.
func (m *Image) SetRGB(x, y int, c RGB) {
	i := (y*m.Width + x) * 3
	m.Pix[i] = c.R
	m.Pix[i+1] = c.G
	m.Pix[i+2] = c.B
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{Width: m.Width, Height: m.Height, Pix: pix}
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

// At implements image.Image. Pixels are always fully opaque.
func (m *Image) At(x, y int) color.Color {
	if !m.InBounds(x, y) {
		return color.RGBA{}
	}
	c := m.RGBAt(x, y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Gray is a row-major single-channel 8-bit buffer of Width×Height pixels.
type Gray struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGray allocates a zero-filled grayscale buffer.
func NewGray(width, height int) *Gray {
	return &Gray{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// GrayAt returns the value at (x, y). No bounds checking is performed.
func (g *Gray) GrayAt(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// SetGray sets the value at (x, y). No bounds checking is performed.
func (g *Gray) SetGray(x, y int, v uint8) {
	g.Pix[y*g.Width+x] = v
}

// Clone returns a deep copy of the buffer.
func (g *Gray) Clone() *Gray {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &Gray{Width: g.Width, Height: g.Height, Pix: pix}
}

// ColorModel implements image.Image.
func (g *Gray) ColorModel() color.Model { return color.GrayModel }

// Bounds implements image.Image.
func (g *Gray) Bounds() image.Rectangle { return image.Rect(0, 0, g.Width, g.Height) }

// At implements image.Image.
func (g *Gray) At(x, y int) color.Color {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return color.Gray{}
	}
	return color.Gray{Y: g.GrayAt(x, y)}
}

// Barrier values stored in a Mask.
const (
	Passable uint8 = 0
	Barrier  uint8 = 255
)

// Mask is a binarized edge map. Every value is either Passable or Barrier;
// region growth never enters a Barrier pixel.
type Mask struct {
	*Gray
}

// Blocked reports whether (x, y) is a barrier pixel.
func (m *Mask) Blocked(x, y int) bool {
	return m.Pix[y*m.Width+x] != Passable
}

// BarrierCount returns the number of barrier pixels in the mask.
func (m *Mask) BarrierCount() int {
	n := 0
	for _, v := range m.Pix {
		if v != Passable {
			n++
		}
	}
	return n
}
