// Package server implements the MCP (Model Context Protocol) server for cell
// segmentation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the segmentation
// pipeline through the MCP protocol, so that an MCP client can count and
// outline cells in microscope images.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Segmentation:
//   - image_segment: Count cells and return the region image
//   - image_edge_mask: Preview the boundary mask
//   - image_region_stats: Per-region area and color measurements
//   - image_segment_overlay: Source image with boundaries and region numbers
//
// Every segmentation tool accepts an optional crop (x1, y1, x2, y2), a scale
// factor, and the pipeline parameters seed, seed_count, blur_passes and
// edge_threshold. Omitted parameters take the pipeline defaults; an omitted
// seed takes the server's default seed.
//
// # Image Caching
//
// Decoded source images are cached by path for the lifetime of the server
// process. Segmentation results are not cached; with a fixed seed a repeated
// call reproduces the same result.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Logging
//
// Diagnostics go through logrus to stderr so they never mix with protocol
// traffic on stdout.
package server
