package imaging

import (
	"fmt"
	"image"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
)

// ImageCache keeps decoded source images keyed by path so that repeated
// segmentation runs over the same file skip the decode step.
//
// ImageCache is safe for concurrent use. Cached images are never mutated by
// this module; every pipeline run converts its input into a fresh buffer.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
// A leading "~" in path is expanded to the user's home directory.
//
// Decoding goes through disintegration/imaging with EXIF auto-orientation, so
// JPEG photos are segmented in their displayed orientation. PNG, JPEG, GIF,
// TIFF and BMP are supported.
func (c *ImageCache) Load(path string) (image.Image, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	img, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err = imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %q: %w", path, err)
	}
	log.WithFields(log.Fields{
		"path":   path,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("Image decoded")

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict drops path from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	if expanded, err := ExpandPath(path); err == nil {
		path = expanded
	}
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ExpandPath expands a leading "~" in path to the current user's home
// directory. Other paths are returned unchanged.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %q: %w", path, err)
	}
	return expanded, nil
}

// ImageInfo describes a source image before segmentation.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the lower-case format name derived from the file extension,
	// or "unknown".
	Format string `json:"format"`

	// HasAlpha is true for image types carrying an alpha channel. Alpha is
	// discarded when the image is converted for segmentation.
	HasAlpha bool `json:"has_alpha"`

	// BufferBytes is the size of the RGB buffer the pipeline will allocate
	// for this image (width × height × 3).
	BufferBytes int `json:"buffer_bytes"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// Stains lists the most prominent colors of the source, heaviest first.
	// On stained micrographs these are typically the background, the
	// cytoplasm and the nuclei.
	Stains []StainColor `json:"stains"`
}

// StainColor is a prominent source color and the share of the image it
// covers (0-1).
type StainColor struct {
	Hex    string  `json:"hex"`
	Weight float64 `json:"weight"`
}

// stainCount is the number of prominent colors LoadImageInfo reports.
const stainCount = 3

func findStains(img image.Image) []StainColor {
	stains := make([]StainColor, 0, stainCount)
	for _, c := range dominantcolor.FindWeight(img, stainCount) {
		stains = append(stains, StainColor{
			Hex:    fmt.Sprintf("#%02X%02X%02X", c.RGBA.R, c.RGBA.G, c.RGBA.B),
			Weight: math.Round(c.Weight*1000) / 1000,
		})
	}
	sort.SliceStable(stains, func(i, j int) bool { return stains[i].Weight > stains[j].Weight })
	return stains
}

// LoadImageInfo loads path through cache and reports its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	path, err = ExpandPath(path)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	b := img.Bounds()
	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		BufferBytes:   b.Dx() * b.Dy() * 3,
		FileSizeBytes: stat.Size(),
		Stains:        findStains(img),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns only the dimensions of the image at path.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &DimensionsResult{Width: b.Dx(), Height: b.Dy()}, nil
}
