// Package export writes rendered attractors to disk: PNG density images,
// downscaled thumbnails, captions and SVG trajectory traces.
package export
