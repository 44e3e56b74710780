package segment

import "testing"

func TestToGrayscale_GrayInput(t *testing.T) {
	for _, v := range []uint8{0, 1, 31, 32, 128, 254, 255} {
		img := createUniformImage(4, 4, RGB{R: v, G: v, B: v})
		gray := ToGrayscale(img)
		for i, got := range gray.Pix {
			if got != v {
				t.Fatalf("value %d: pixel %d got %d", v, i, got)
			}
		}
	}
}

func TestToGrayscale_FloorMean(t *testing.T) {
	tests := []struct {
		c    RGB
		want uint8
	}{
		{RGB{R: 255, G: 0, B: 0}, 85},
		{RGB{R: 255, G: 255, B: 0}, 170},
		{RGB{R: 1, G: 1, B: 0}, 0}, // 2/3 floors to 0
		{RGB{R: 2, G: 2, B: 1}, 1}, // 5/3 floors to 1
		{RGB{R: 255, G: 255, B: 255}, 255},
	}

	for _, tt := range tests {
		img := createUniformImage(1, 1, tt.c)
		if got := ToGrayscale(img).Pix[0]; got != tt.want {
			t.Errorf("ToGrayscale(%+v): got %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestSmooth_ConstantInterior(t *testing.T) {
	gray := createUniformGray(8, 6, 77)
	smoothed := Smooth(gray)

	for i, v := range smoothed.Pix {
		if v != 77 {
			t.Fatalf("pixel %d: got %d, want 77", i, v)
		}
	}
}

func TestSmooth_BorderUntouched(t *testing.T) {
	gray := NewGray(5, 5)
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i * 10)
	}
	smoothed := Smooth(gray)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x != 0 && y != 0 && x != 4 && y != 4 {
				continue
			}
			if smoothed.GrayAt(x, y) != gray.GrayAt(x, y) {
				t.Errorf("border (%d,%d): got %d, want %d", x, y, smoothed.GrayAt(x, y), gray.GrayAt(x, y))
			}
		}
	}
}

func TestSmooth_Spot(t *testing.T) {
	gray := NewGray(5, 5)
	gray.SetGray(2, 2, 90)
	smoothed := Smooth(gray)

	// 90/9 = 10 spreads over the 3x3 neighborhood
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if got := smoothed.GrayAt(x, y); got != 10 {
				t.Errorf("(%d,%d): got %d, want 10", x, y, got)
			}
		}
	}
}

func TestSmooth_TruncatesMean(t *testing.T) {
	gray := NewGray(3, 3)
	gray.SetGray(1, 1, 17) // 17/9 = 1.88
	if got := Smooth(gray).GrayAt(1, 1); got != 1 {
		t.Errorf("center: got %d, want 1", got)
	}
}

func TestSmooth_NoInterior(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"1x1", 1, 1},
		{"2x5", 2, 5},
		{"7x2", 7, 2},
		{"1x10", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gray := NewGray(tt.width, tt.height)
			for i := range gray.Pix {
				gray.Pix[i] = uint8(i * 13)
			}
			smoothed := Smooth(gray)
			for i := range gray.Pix {
				if smoothed.Pix[i] != gray.Pix[i] {
					t.Fatalf("pixel %d changed: got %d, want %d", i, smoothed.Pix[i], gray.Pix[i])
				}
			}
		})
	}
}

func TestSmoothN(t *testing.T) {
	gray := NewGray(7, 7)
	gray.SetGray(3, 3, 255)

	zero := SmoothN(gray, 0)
	if zero.GrayAt(3, 3) != 255 {
		t.Error("zero passes should leave the buffer unchanged")
	}
	zero.SetGray(0, 0, 1)
	if gray.GrayAt(0, 0) != 0 {
		t.Error("SmoothN should not alias its input")
	}

	one := SmoothN(gray, 1)
	two := SmoothN(gray, 2)
	if one.GrayAt(3, 3) != 28 { // 255/9
		t.Errorf("one pass center: got %d, want 28", one.GrayAt(3, 3))
	}
	if one.GrayAt(1, 1) != 0 {
		t.Errorf("one pass (1,1): got %d, want 0", one.GrayAt(1, 1))
	}
	if two.GrayAt(1, 1) != 3 { // 28/9
		t.Errorf("two passes (1,1): got %d, want 3", two.GrayAt(1, 1))
	}
}
