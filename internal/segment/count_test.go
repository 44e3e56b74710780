package segment

import "testing"

func TestCountRegions(t *testing.T) {
	tests := []struct {
		name         string
		colors       []RGB
		wantCount    int
		wantDistinct int
	}{
		{"blank", nil, 0, 0},
		{"one region", []RGB{{R: 30, G: 40, B: 50}}, 1, 1},
		{"two regions", []RGB{{R: 30, G: 40, B: 50}, {R: 31, G: 40, B: 50}}, 2, 2},
		// Same red channel collapses into one bucket
		{"red collision", []RGB{{R: 30, G: 40, B: 50}, {R: 30, G: 90, B: 90}}, 1, 2},
		// Red 0 is the background bucket even when other channels are set
		{"zero red ignored", []RGB{{R: 0, G: 200, B: 200}, {R: 128, G: 1, B: 1}}, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regions := NewBlankImage(8, 4)
			for i, c := range tt.colors {
				regions.SetRGB(i, i, c)
				regions.SetRGB(i+1, i, c)
			}

			if got := CountRegions(regions); got != tt.wantCount {
				t.Errorf("CountRegions: got %d, want %d", got, tt.wantCount)
			}
			if got := CountDistinctColors(regions); got != tt.wantDistinct {
				t.Errorf("CountDistinctColors: got %d, want %d", got, tt.wantDistinct)
			}
		})
	}
}

func TestCountRegions_Bounded(t *testing.T) {
	// Every possible red value present at least once
	regions := NewBlankImage(256, 1)
	for x := 0; x < 256; x++ {
		regions.SetRGB(x, 0, RGB{R: uint8(x), G: 1, B: 1})
	}

	if got := CountRegions(regions); got != MaxCount {
		t.Errorf("CountRegions: got %d, want %d", got, MaxCount)
	}
	if got := CountDistinctColors(regions); got != 256 {
		t.Errorf("CountDistinctColors: got %d, want 256", got)
	}
}
