package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// MimeTypePNG is the MIME type of every image this package returns inline.
const MimeTypePNG = "image/png"

// EncodePNGBase64 encodes img as PNG and returns it base64-encoded for
// embedding in a JSON tool result.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// SavePNG writes img to path as a PNG file, creating parent directories as
// needed. A leading "~" is expanded; the extension of path is not checked.
func SavePNG(path string, img image.Image) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save %q: %w", path, err)
	}
	return nil
}
