package segment

// ToGrayscale converts an RGB image to a single-channel buffer.
//
// Each output value is the unweighted channel mean (R+G+B)/3 with integer
// floor division, so gray input (R=G=B=v) maps to v exactly.
func ToGrayscale(img *Image) *Gray {
	gray := NewGray(img.Width, img.Height)
	for i := range gray.Pix {
		p := img.Pix[i*3 : i*3+3]
		sum := uint32(p[0]) + uint32(p[1]) + uint32(p[2])
		gray.Pix[i] = uint8(sum / 3)
	}
	return gray
}

// Smooth applies one 3×3 mean filter pass.
//
// Only interior pixels are averaged (integer-truncated sum of 9 neighbors);
// the 1-pixel border is copied from the input unchanged. Images narrower or
// shorter than 3 pixels have no interior and are returned as a copy.
func Smooth(src *Gray) *Gray {
	dst := src.Clone()
	w, h := src.Width, src.Height
	if w < 3 || h < 3 {
		return dst
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sum int
			for ky := -1; ky <= 1; ky++ {
				row := (y + ky) * w
				sum += int(src.Pix[row+x-1]) + int(src.Pix[row+x]) + int(src.Pix[row+x+1])
			}
			dst.Pix[y*w+x] = uint8(sum / 9)
		}
	}
	return dst
}

// SmoothN applies Smooth the given number of times. Zero passes returns a copy.
func SmoothN(src *Gray, passes int) *Gray {
	out := src.Clone()
	for i := 0; i < passes; i++ {
		out = Smooth(out)
	}
	return out
}
