// Package imaging connects decoded image files to the segmentation pipeline.
//
// It owns everything on the image.Image side of the boundary: loading and
// caching source files, cropping and rescaling before a run, converting to
// the packed RGB buffer the segment package works on, and turning results
// back into PNG output and JSON-friendly summaries.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the
// top-left corner. For regions, (x1,y1) is inclusive and (x2,y2) is
// exclusive. Images whose bounds do not start at the origin are rebased to
// (0,0) on conversion.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Every other function is
// stateless; cached images are never mutated.
//
// # Color Representation
//
// Region colors are reported as:
//   - Hex: 6-character format "#RRGGBB"
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Performance Considerations
//
// Segmentation time grows with image area and the region buffer is held in
// memory until the result is encoded. Use Prepare with a scale below 1 for
// large micrographs, and Evict() or Clear() to release cached sources in
// long-running processes.
package imaging
