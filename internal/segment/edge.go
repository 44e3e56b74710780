package segment

import "math"

// DefaultEdgeThreshold is the gradient magnitude at which a pixel becomes a
// barrier.
const DefaultEdgeThreshold uint8 = 32

var (
	sobelX = [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// DetectEdges turns a smoothed grayscale buffer into a barrier mask.
//
// Parameters:
//   - gray: Smoothed grayscale buffer.
//   - threshold: Magnitudes at or above this value become barriers.
//     DefaultEdgeThreshold (32) is used by the standard pipeline.
//
// Returns a Mask whose values are exclusively Passable (0) or Barrier (255),
// border pixels included.
//
// # Algorithm
//
//  1. Gradient computation: Sobel operators for X and Y gradients on the
//     interior, magnitude = sqrt(Gx² + Gy²) saturated to 255
//  2. Border repair: outer rows and columns copy the nearest interior
//     row or column
//  3. Binarization: magnitude < threshold -> 0, otherwise -> 255
func DetectEdges(gray *Gray, threshold uint8) *Mask {
	return Binarize(GradientMagnitude(gray), threshold)
}

// GradientMagnitude computes the Sobel gradient magnitude of every interior
// pixel (x in [1,W-2], y in [1,H-2]).
//
// The magnitude is computed in floating point and saturated to 255 rather
// than wrapped. Border rows are then replicated from rows 1 and H-2, followed
// by border columns from columns 1 and W-2, so corners take the value of the
// nearest interior corner. Buffers without an interior (W<3 or H<3) yield an
// all-zero result.
func GradientMagnitude(gray *Gray) *Gray {
	w, h := gray.Width, gray.Height
	out := NewGray(w, h)
	if w < 3 || h < 3 {
		return out
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var gx, gy int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := int(gray.Pix[(y+ky)*w+x+kx])
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			out.Pix[y*w+x] = saturate(math.Sqrt(float64(gx*gx + gy*gy)))
		}
	}

	replicateBorder(out)
	return out
}

// replicateBorder overwrites the outer ring of g with its nearest interior
// neighbors: rows first, then columns.
func replicateBorder(g *Gray) {
	w, h := g.Width, g.Height
	copy(g.Pix[0:w], g.Pix[w:2*w])
	copy(g.Pix[(h-1)*w:h*w], g.Pix[(h-2)*w:(h-1)*w])
	for y := 0; y < h; y++ {
		row := y * w
		g.Pix[row] = g.Pix[row+1]
		g.Pix[row+w-1] = g.Pix[row+w-2]
	}
}

// Binarize maps every value below threshold to Passable and every other
// value to Barrier.
func Binarize(g *Gray, threshold uint8) *Mask {
	mask := &Mask{Gray: NewGray(g.Width, g.Height)}
	for i, v := range g.Pix {
		if v >= threshold {
			mask.Pix[i] = Barrier
		}
	}
	return mask
}

// saturate truncates a non-negative magnitude to 8 bits, clamping at 255.
func saturate(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
