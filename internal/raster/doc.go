// Package raster turns a trajectory into a density image.
//
// A render runs three passes over a [Trajectory]:
//
//   - [SearchEdges]: a bounded sampling run that finds the bounding box of
//     the projected trajectory
//   - [Accumulate]: the full run, binning every visited point into a
//     [Histogram] scaled so the box fits the canvas without distortion
//   - [ToneMap]: the normalized histogram mapped through a palette
//
// The trajectory is reset before and after the edge search, so both passes
// observe the same orbit. Accumulation is sequential; tone mapping fans
// out across rows.
package raster
