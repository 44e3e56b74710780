package segment

import "testing"

func TestGrowRegions_AdjacentSeedsMerge(t *testing.T) {
	mask := &Mask{Gray: NewGray(4, 4)}
	regions := NewBlankImage(4, 4)
	a := RGB{R: 50, G: 60, B: 70}
	b := RGB{R: 80, G: 90, B: 100}
	seeds := paintSeeds(regions, Seed{X: 1, Y: 1, Color: a}, Seed{X: 2, Y: 1, Color: b})

	GrowRegions(mask, regions, seeds)

	if !seeds[0].Active {
		t.Error("first seed should survive")
	}
	if seeds[1].Active {
		t.Error("second seed should be deactivated by the conflict")
	}
	if got := ActiveSeeds(seeds); got != 1 {
		t.Errorf("ActiveSeeds: got %d, want 1", got)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if regions.RGBAt(x, y) != a {
				t.Fatalf("(%d,%d): got %+v, want %+v", x, y, regions.RGBAt(x, y), a)
			}
		}
	}
	if got := CountRegions(regions); got != 1 {
		t.Errorf("CountRegions: got %d, want 1", got)
	}
}

func TestGrowRegions_RingSeparatesSeeds(t *testing.T) {
	// 6x6 mask with a closed barrier ring from (1,1) to (4,4)
	mask := &Mask{Gray: NewGray(6, 6)}
	for i := 1; i <= 4; i++ {
		mask.SetGray(i, 1, Barrier)
		mask.SetGray(i, 4, Barrier)
		mask.SetGray(1, i, Barrier)
		mask.SetGray(4, i, Barrier)
	}

	regions := NewBlankImage(6, 6)
	inside := RGB{R: 200, G: 30, B: 30}
	outside := RGB{R: 30, G: 200, B: 30}
	seeds := paintSeeds(regions, Seed{X: 2, Y: 2, Color: inside}, Seed{X: 0, Y: 0, Color: outside})

	GrowRegions(mask, regions, seeds)

	if ActiveSeeds(seeds) != 2 {
		t.Fatalf("both seeds should survive, got %d", ActiveSeeds(seeds))
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			got := regions.RGBAt(x, y)
			switch {
			case mask.Blocked(x, y):
				if !got.IsBackground() {
					t.Errorf("barrier (%d,%d) painted %+v", x, y, got)
				}
			case x >= 2 && x <= 3 && y >= 2 && y <= 3:
				if got != inside {
					t.Errorf("inside (%d,%d): got %+v, want %+v", x, y, got, inside)
				}
			default:
				if got != outside {
					t.Errorf("outside (%d,%d): got %+v, want %+v", x, y, got, outside)
				}
			}
		}
	}
	if got := CountRegions(regions); got != 2 {
		t.Errorf("CountRegions: got %d, want 2", got)
	}
}

func TestGrowRegions_SobelRing(t *testing.T) {
	gray := createRingGray(12, 12, 3, 8)
	mask := DetectEdges(gray, DefaultEdgeThreshold)

	regions := NewBlankImage(12, 12)
	inside := RGB{R: 120, G: 40, B: 40}
	outside := RGB{R: 40, G: 120, B: 40}
	seeds := paintSeeds(regions, Seed{X: 5, Y: 5, Color: inside}, Seed{X: 0, Y: 0, Color: outside})

	GrowRegions(mask, regions, seeds)

	if ActiveSeeds(seeds) != 2 {
		t.Fatalf("both seeds should survive, got %d", ActiveSeeds(seeds))
	}
	if got := regions.RGBAt(6, 6); got != inside {
		t.Errorf("(6,6): got %+v, want inside color", got)
	}
	if got := regions.RGBAt(11, 11); got != outside {
		t.Errorf("(11,11): got %+v, want outside color", got)
	}
	assertBarriersUnpainted(t, mask, regions)
	assertConnectedToSeeds(t, regions, seeds)
}

func TestGrowRegions_InactiveSeedSkipped(t *testing.T) {
	mask := &Mask{Gray: NewGray(5, 1)}
	regions := NewBlankImage(5, 1)
	c := RGB{R: 99, G: 99, B: 99}
	seeds := paintSeeds(regions, Seed{X: 0, Y: 0, Color: c})
	seeds[0].Active = false

	GrowRegions(mask, regions, seeds)

	for x := 1; x < 5; x++ {
		if !regions.RGBAt(x, 0).IsBackground() {
			t.Errorf("(%d,0) painted by an inactive seed", x)
		}
	}
}

func TestGrowRegions_BarrierBlocksGrowth(t *testing.T) {
	// Vertical wall at x=2 splits a 5x3 image
	mask := &Mask{Gray: NewGray(5, 3)}
	for y := 0; y < 3; y++ {
		mask.SetGray(2, y, Barrier)
	}
	regions := NewBlankImage(5, 3)
	c := RGB{R: 70, G: 80, B: 90}
	seeds := paintSeeds(regions, Seed{X: 0, Y: 1, Color: c})

	GrowRegions(mask, regions, seeds)

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			got := regions.RGBAt(x, y)
			if x < 2 && got != c {
				t.Errorf("(%d,%d): got %+v, want seed color", x, y, got)
			}
			if x >= 2 && !got.IsBackground() {
				t.Errorf("(%d,%d): got %+v, want background", x, y, got)
			}
		}
	}
}

func TestGrowRegions_SinglePixelWide(t *testing.T) {
	mask := &Mask{Gray: NewGray(1, 6)}
	regions := NewBlankImage(1, 6)
	c := RGB{R: 33, G: 44, B: 55}
	seeds := paintSeeds(regions, Seed{X: 0, Y: 3, Color: c})

	GrowRegions(mask, regions, seeds)

	for y := 0; y < 6; y++ {
		if regions.RGBAt(0, y) != c {
			t.Errorf("(0,%d): got %+v, want %+v", y, regions.RGBAt(0, y), c)
		}
	}
}

func TestGrowRegions_NoSeeds(t *testing.T) {
	mask := &Mask{Gray: NewGray(4, 4)}
	regions := NewBlankImage(4, 4)

	GrowRegions(mask, regions, nil)
	assertBlank(t, regions)
}

func TestGrowRegions_SameColorTreatedAsOwned(t *testing.T) {
	// Two separate seeds with the same color in one open area: the second
	// seed's pixel matches the first seed's color and is not a conflict.
	mask := &Mask{Gray: NewGray(6, 1)}
	regions := NewBlankImage(6, 1)
	c := RGB{R: 61, G: 62, B: 63}
	seeds := paintSeeds(regions, Seed{X: 0, Y: 0, Color: c}, Seed{X: 5, Y: 0, Color: c})

	GrowRegions(mask, regions, seeds)

	if ActiveSeeds(seeds) != 2 {
		t.Errorf("ActiveSeeds: got %d, want 2", ActiveSeeds(seeds))
	}
	for x := 0; x < 6; x++ {
		if regions.RGBAt(x, 0) != c {
			t.Errorf("(%d,0): got %+v, want %+v", x, regions.RGBAt(x, 0), c)
		}
	}
}
