package imaging

import (
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/cellseg-mcp/internal/segment"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// Point represents a pixel position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RegionColor describes one grown region by its false color.
type RegionColor struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`

	// Area is the number of pixels painted with this color.
	Area int `json:"area"`

	// Seed is the origin of the first surviving seed with this color.
	Seed Point `json:"seed"`

	// NearestLab is the CIE76 distance to the closest other region color.
	// Values below ~2.3 are hard to tell apart by eye. Zero when the
	// palette has a single entry.
	NearestLab float64 `json:"nearest_lab"`
}

// RegionPalette lists every region color present in res.Regions, sorted by
// area in descending order. Ties are broken by hex value so the order is
// stable across runs.
func RegionPalette(res *segment.Result) []RegionColor {
	areas := make(map[segment.RGB]int)
	for i := 0; i+2 < len(res.Regions.Pix); i += 3 {
		c := segment.RGB{R: res.Regions.Pix[i], G: res.Regions.Pix[i+1], B: res.Regions.Pix[i+2]}
		if !c.IsBackground() {
			areas[c]++
		}
	}

	origins := make(map[segment.RGB]Point, len(areas))
	for _, s := range res.Seeds {
		if !s.Active {
			continue
		}
		if _, ok := origins[s.Color]; !ok {
			origins[s.Color] = Point{X: s.X, Y: s.Y}
		}
	}

	palette := make([]RegionColor, 0, len(areas))
	labs := make([]colorful.Color, 0, len(areas))
	for c, area := range areas {
		cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
		h, s, l := cf.Hsl()
		palette = append(palette, RegionColor{
			Hex:  strings.ToUpper(cf.Hex()),
			RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
			HSL:  HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
			Area: area,
			Seed: origins[c],
		})
		labs = append(labs, cf)
	}

	for i := range palette {
		nearest := math.Inf(1)
		for j := range labs {
			if i != j {
				nearest = math.Min(nearest, labs[i].DistanceCIE76(labs[j]))
			}
		}
		if math.IsInf(nearest, 1) {
			nearest = 0
		}
		palette[i].NearestLab = math.Round(nearest*100) / 100
	}

	sort.Slice(palette, func(i, j int) bool {
		if palette[i].Area != palette[j].Area {
			return palette[i].Area > palette[j].Area
		}
		return palette[i].Hex < palette[j].Hex
	})

	return palette
}
