package viz

import (
	"math"
	"strings"

	"github.com/san-kum/attractor/internal/export"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid addressed in Braille sub-pixels: Width*2
// by Height*4.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Lit counts the lit sub-pixels.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := int(r - brailleBlank); bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// DensityCanvas downsamples a normalized w×h density grid onto a cols×rows
// canvas. A sub-pixel is lit when the densest cell it covers exceeds
// threshold.
func DensityCanvas(grid []float64, w, h, cols, rows int, threshold float64) *Canvas {
	c := NewCanvas(cols, rows)
	subW, subH := cols*2, rows*4
	peak := make([]float64, subW*subH)
	for y := 0; y < h; y++ {
		sy := y * subH / h
		for x := 0; x < w; x++ {
			sx := x * subW / w
			i := sy*subW + sx
			peak[i] = math.Max(peak[i], grid[y*w+x])
		}
	}
	for sy := 0; sy < subH; sy++ {
		for sx := 0; sx < subW; sx++ {
			if peak[sy*subW+sx] > threshold {
				c.Set(sx, sy)
			}
		}
	}
	return c
}

// TraceCanvas joins consecutive points with lines, fitted to the canvas.
// The vertical axis points up.
func TraceCanvas(points []export.Point, cols, rows int) *Canvas {
	c := NewCanvas(cols, rows)
	if len(points) == 0 {
		return c
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	subW, subH := float64(cols*2-1), float64(rows*4-1)
	project := func(p export.Point) (int, int) {
		return int((p.X - minX) / spanX * subW), int(subH - (p.Y-minY)/spanY*subH)
	}

	x0, y0 := project(points[0])
	c.Set(x0, y0)
	for _, p := range points[1:] {
		x1, y1 := project(p)
		c.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
