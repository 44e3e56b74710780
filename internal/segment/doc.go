// Package segment implements edge-bounded region segmentation and cell counting.
//
// The pipeline takes an RGB raster and produces a false-colored region buffer in
// which every connected, edge-bounded area receives one fill color, together
// with a count of those areas ("cells"). It performs no file I/O and touches no
// graphics API; callers decode images and consume the results.
//
// # Stages
//
//	RGB image -> grayscale -> smoothed grayscale -> barrier mask
//	          -> seeds -> region buffer -> count
//
// Each stage consumes the previous one completely and allocates its own output.
// Nothing is cached between runs.
//
// # Determinism
//
// Randomness enters only through the Source passed to Run or PlaceSeeds. Use
// NewSource with a fixed seed for reproducible output.
//
// # Known Approximations
//
//   - Region identity is color equality. Two seeds drawing the same color are
//     indistinguishable to the grower.
//   - CountRegions counts distinct red values, not distinct colors, and can
//     under-count when regions share a red channel. CountDistinctColors gives
//     the exact figure.
//   - Sampling attempts that land on barriers are not retried, so the number of
//     live seeds is at most Config.SeedCount.
//
// # Thread Safety
//
// Functions in this package hold no shared state. Concurrent runs are safe as
// long as each uses its own buffers and its own Source.
package segment
