package segment

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeedCount is the number of seed sampling attempts per run.
const DefaultSeedCount = 1024

// MaxSeedCount bounds the sampling attempts a Config may request.
const MaxSeedCount = 1 << 20

// Source is a uniform random generator returning values in [0, 1).
//
// distuv.Uniform with Min=0 and Max=1 satisfies it; tests may supply any
// deterministic implementation.
type Source interface {
	Rand() float64
}

// NewSource returns a reproducible unit-uniform Source driven by a PCG stream
// seeded with seed.
func NewSource(seed uint64) Source {
	return distuv.Uniform{
		Min: 0,
		Max: 1,
		Src: rand.NewPCG(seed, seed^0x9E3779B97F4A7C15),
	}
}

// Seed is the origin pixel of a region together with its fill color.
//
// Active is cleared when another region's growth overwrites the origin pixel;
// inactive seeds take no further part in growth.
type Seed struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Color  RGB  `json:"color"`
	Active bool `json:"active"`
}

// PlaceSeeds makes exactly count sampling attempts and returns the live seeds.
//
// Each attempt draws x = floor(u*W) and y = floor(u*H). An attempt is
// discarded, without re-sampling, when it lands on a barrier pixel or on a
// pixel already claimed by an earlier seed, so fewer than count seeds may be
// returned. A live seed draws three channel values (u*0.9+0.1)*255, truncated,
// which keeps every channel in [25, 254] and away from Background. The seed
// pixel is painted into regions immediately.
func PlaceSeeds(mask *Mask, regions *Image, count int, src Source) []Seed {
	w, h := regions.Width, regions.Height
	// live seeds never outnumber pixels
	seeds := make([]Seed, 0, max(0, min(count, w*h)))

	for i := 0; i < count; i++ {
		x := sampleIndex(src, w)
		y := sampleIndex(src, h)
		if mask.Blocked(x, y) || !regions.RGBAt(x, y).IsBackground() {
			continue
		}

		c := RGB{
			R: seedChannel(src),
			G: seedChannel(src),
			B: seedChannel(src),
		}
		regions.SetRGB(x, y, c)
		seeds = append(seeds, Seed{X: x, Y: y, Color: c, Active: true})
	}

	return seeds
}

// sampleIndex maps a uniform draw onto [0, n).
func sampleIndex(src Source, n int) int {
	i := int(src.Rand() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// seedChannel draws one fill color channel in [25, 254].
func seedChannel(src Source) uint8 {
	return uint8((src.Rand()*0.9 + 0.1) * 255)
}
