package analysis

import (
	"fmt"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/export"
)

// PortraitASCII plots points on a width×height character grid with ten
// percent padding, drawing the axes where they cross the view.
func PortraitASCII(points []export.Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
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
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := blankCanvas(width, height)
	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	return canvasString(canvas)
}

// PoincareSection steps a and records state components (recordX, recordY)
// at each upward crossing of state component crossIdx through threshold.
// a is rewound on return.
func PoincareSection(a attractor.Attractor, crossIdx int, threshold float64, recordX, recordY, steps int) ([]export.Point, error) {
	dim := a.Dim()
	for _, idx := range []int{crossIdx, recordX, recordY} {
		if idx < 0 || idx >= dim {
			return nil, fmt.Errorf("analysis: state index %d of %d", idx, dim)
		}
	}
	defer a.Reset()

	a.Reset()
	points := make([]export.Point, 0)
	prev := a.State().X[crossIdx]
	for i := 0; i < steps; i++ {
		a.Step()
		x := a.State().X
		if !x.IsValid() {
			return points, ErrUnbounded
		}
		curr := x[crossIdx]
		if prev < threshold && curr >= threshold {
			points = append(points, export.Point{X: x[recordX], Y: x[recordY]})
		}
		prev = curr
	}
	return points, nil
}
