package raster

import (
	"image"
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/palette"
)

const (
	discreteSamples = 50000
	discreteSkip    = 500
)

// Scan configures the edge search and transient skip of a system. The
// edge search runs max(Floor, n/Divisor) steps for an n-step render.
type Scan struct {
	Floor   int
	Divisor int
	Skip    int
}

func (s Scan) Samples(n int) int {
	if s.Divisor <= 0 {
		return s.Floor
	}
	return max(s.Floor, n/s.Divisor)
}

// DiscreteScan suits fast iterated maps: a fixed sample and a transient skip.
func DiscreteScan() Scan {
	return Scan{Floor: discreteSamples, Skip: discreteSkip}
}

// ContinuousScan samples at least floor steps, or a tenth of the render.
func ContinuousScan(floor int) Scan {
	return Scan{Floor: floor, Divisor: 10}
}

// Rasterize runs the edge search and the accumulation pass.
func Rasterize(t Trajectory, scan Scan, n, w, h int, progress ProgressFunc) *Histogram {
	b := SearchEdges(t, scan.Samples(n), scan.Skip)
	return Accumulate(t, n, w, h, scan.Skip, b, progress)
}

// ScaleFactor normalizes exposure across iteration counts and image sizes.
func ScaleFactor(n, w, h int) float64 {
	return math.Sqrt(10_000_000.0/float64(n)) * float64(w*h) / (1024.0 * 1024.0) * 100.0
}

// ToneMap converts a normalized w×h density grid to an opaque RGBA image.
func ToneMap(grid []float64, w, h, n int, plt palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	factor := ScaleFactor(n, w, h)

	dynamo.ParallelFor(h, 16, func(start, end int) {
		for row := start; row < end; row++ {
			off := row * img.Stride
			for col := 0; col < w; col++ {
				v := grid[row*w+col]
				r, g, b := plt.Color(v, v, factor)
				i := off + col*4
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, 255
			}
		}
	})

	return img
}
