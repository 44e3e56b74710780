package imaging

import (
	"testing"

	"github.com/ironsheep/cellseg-mcp/internal/segment"
)

// createTestResult builds a 4x2 segmentation result by hand:
//
//	A A A B
//	A A . B
//
// A is the larger region. A third seed lost its conflict and owns nothing.
func createTestResult() *segment.Result {
	a := segment.RGB{R: 255, G: 0, B: 0}
	b := segment.RGB{R: 0, G: 0, B: 255}
	lost := segment.RGB{R: 40, G: 40, B: 40}

	regions := segment.NewBlankImage(4, 2)
	for _, p := range [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}} {
		regions.SetRGB(p[0], p[1], a)
	}
	regions.SetRGB(3, 0, b)
	regions.SetRGB(3, 1, b)

	mask := &segment.Mask{Gray: segment.NewGray(4, 2)}
	mask.SetGray(2, 1, segment.Barrier)

	return &segment.Result{
		Regions: regions,
		Count:   segment.CountRegions(regions),
		Mask:    mask,
		Seeds: []segment.Seed{
			{X: 1, Y: 0, Color: a, Active: true},
			{X: 3, Y: 1, Color: b, Active: true},
			{X: 0, Y: 1, Color: lost, Active: false},
		},
	}
}

func TestRegionPalette(t *testing.T) {
	palette := RegionPalette(createTestResult())

	if len(palette) != 2 {
		t.Fatalf("palette size: got %d, want 2", len(palette))
	}

	tests := []struct {
		hex  string
		area int
		seed Point
		hsl  HSLColor
	}{
		{"#FF0000", 5, Point{X: 1, Y: 0}, HSLColor{H: 0, S: 100, L: 50}},
		{"#0000FF", 2, Point{X: 3, Y: 1}, HSLColor{H: 240, S: 100, L: 50}},
	}

	for i, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			rc := palette[i]
			if rc.Hex != tt.hex {
				t.Errorf("Hex: got %s, want %s", rc.Hex, tt.hex)
			}
			if rc.Area != tt.area {
				t.Errorf("Area: got %d, want %d", rc.Area, tt.area)
			}
			if rc.Seed != tt.seed {
				t.Errorf("Seed: got %+v, want %+v", rc.Seed, tt.seed)
			}
			if rc.HSL != tt.hsl {
				t.Errorf("HSL: got %+v, want %+v", rc.HSL, tt.hsl)
			}
			if rc.NearestLab <= 0 {
				t.Errorf("NearestLab: got %v, want > 0 for distinct colors", rc.NearestLab)
			}
		})
	}

	if palette[0].NearestLab != palette[1].NearestLab {
		t.Errorf("distance should be symmetric: %v vs %v", palette[0].NearestLab, palette[1].NearestLab)
	}
}

func TestRegionPalette_Empty(t *testing.T) {
	res := &segment.Result{
		Regions: segment.NewBlankImage(3, 3),
		Mask:    &segment.Mask{Gray: segment.NewGray(3, 3)},
	}
	if palette := RegionPalette(res); len(palette) != 0 {
		t.Errorf("blank regions: got %d colors, want 0", len(palette))
	}
}

func TestRegionPalette_SingleRegion(t *testing.T) {
	regions := segment.NewBlankImage(2, 2)
	c := segment.RGB{R: 30, G: 60, B: 90}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			regions.SetRGB(x, y, c)
		}
	}

	palette := RegionPalette(&segment.Result{Regions: regions})
	if len(palette) != 1 {
		t.Fatalf("palette size: got %d, want 1", len(palette))
	}
	if palette[0].Hex != "#1E3C5A" || palette[0].Area != 4 {
		t.Errorf("got %s area %d, want #1E3C5A area 4", palette[0].Hex, palette[0].Area)
	}
	if palette[0].NearestLab != 0 {
		t.Errorf("NearestLab: got %v, want 0 for a single region", palette[0].NearestLab)
	}
}
