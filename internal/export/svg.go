package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/attractor/internal/raster"
)

type Point struct {
	X, Y float64
}

// Trace rewinds t, advances it n steps and collects the projections after
// the first skip. Non-finite points are left out.
func Trace(t raster.Trajectory, n, skip int) []Point {
	t.Reset()
	points := make([]Point, 0, max(0, n-skip))
	for i := 0; i < n; i++ {
		t.Step()
		if i < skip {
			continue
		}
		x, y := t.Project()
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		points = append(points, Point{x, y})
	}
	t.Reset()
	return points
}

// TraceSVG draws points as a single polyline scaled into a width×height
// viewport with ten percent padding. Fewer than two points yield "".
func TraceSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="0.5" stroke-opacity="0.6" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func WriteSVG(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
