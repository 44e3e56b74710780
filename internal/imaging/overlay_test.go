package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestOverlay(t *testing.T) {
	res := createTestResult()
	img := createSolidImage(4, 2, color.RGBA{0, 0, 0, 255})

	out, err := Overlay(img, res, "#00FF00", 1, false)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if out.Width != 4 || out.Height != 2 || out.MimeType != "image/png" {
		t.Errorf("got %dx%d %s", out.Width, out.Height, out.MimeType)
	}
	if out.Labeled != 0 {
		t.Errorf("Labeled: got %d, want 0", out.Labeled)
	}

	decoded := decodeBase64PNG(t, out.ImageBase64)
	tests := []struct {
		x, y    int
		r, g, b uint32
	}{
		{2, 1, 0, 255, 0}, // barrier, fully tinted
		{0, 0, 0, 0, 0},   // untouched
	}
	for _, tt := range tests {
		r, g, b, _ := decoded.At(tt.x, tt.y).RGBA()
		if r>>8 != tt.r || g>>8 != tt.g || b>>8 != tt.b {
			t.Errorf("(%d,%d): got (%d,%d,%d), want (%d,%d,%d)", tt.x, tt.y, r>>8, g>>8, b>>8, tt.r, tt.g, tt.b)
		}
	}
}

func TestOverlay_HalfOpacity(t *testing.T) {
	res := createTestResult()
	img := createSolidImage(4, 2, color.RGBA{0, 0, 0, 255})

	// Invalid hex falls back to red
	out, err := Overlay(img, res, "not-a-color", 0.5, false)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	r, g, b, _ := decodeBase64PNG(t, out.ImageBase64).At(2, 1).RGBA()
	if r>>8 != 128 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("blended barrier: got (%d,%d,%d), want (128,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestOverlay_Labels(t *testing.T) {
	res := createTestResult()
	out, err := Overlay(createSolidImage(4, 2, color.RGBA{}), res, DefaultOverlayColor, 0.4, true)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if out.Labeled != 2 {
		t.Errorf("Labeled: got %d, want 2", out.Labeled)
	}
}

func TestOverlay_LabelsSkipLostOrigins(t *testing.T) {
	res := createTestResult()
	// The blue region keeps its pixels but no surviving seed
	res.Seeds[1].Active = false

	out, err := Overlay(createSolidImage(4, 2, color.RGBA{}), res, DefaultOverlayColor, 0.4, true)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if out.Labeled != 1 {
		t.Errorf("Labeled: got %d, want 1", out.Labeled)
	}
}

func TestOverlay_Errors(t *testing.T) {
	res := createTestResult()

	if _, err := Overlay(createSolidImage(5, 5, color.RGBA{}), res, DefaultOverlayColor, 0.5, false); err == nil {
		t.Error("size mismatch should fail")
	}
	if _, err := Overlay(createSolidImage(4, 2, color.RGBA{}), res, DefaultOverlayColor, 1.5, false); err == nil {
		t.Error("opacity above 1 should fail")
	}
}

func TestDrawLabel_Clipped(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	fg := color.NRGBA{255, 255, 255, 255}
	bg := color.NRGBA{0, 0, 0, 180}

	// Must not panic when the label runs off every edge
	drawLabel(img, 2, 2, "7234", fg, bg)
	drawLabel(img, -5, -5, "9", fg, bg)

	if img.NRGBAAt(2, 2) != fg {
		t.Errorf("(2,2): got %+v, want label foreground", img.NRGBAAt(2, 2))
	}
}
