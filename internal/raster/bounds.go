package raster

import "math"

// Bounds is the bounding box of a projected trajectory. Top/Bottom are the
// minimum/maximum of the vertical coordinate.
type Bounds struct {
	Left, Right, Top, Bottom float64
}

func emptyBounds() Bounds {
	return Bounds{
		Left:   math.Inf(1),
		Right:  math.Inf(-1),
		Top:    math.Inf(1),
		Bottom: math.Inf(-1),
	}
}

func (b *Bounds) extend(x, y float64) {
	b.Left = math.Min(b.Left, x)
	b.Right = math.Max(b.Right, x)
	b.Top = math.Min(b.Top, y)
	b.Bottom = math.Max(b.Bottom, y)
}

func (b Bounds) Center() (float64, float64) {
	return (b.Right + b.Left) * 0.5, (b.Bottom + b.Top) * 0.5
}

func (b Bounds) Width() float64  { return b.Right - b.Left }
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// Scale returns the uniform factor that fits the box into a w×h canvas.
// Axes with zero, inverted or non-finite extent do not constrain the scale;
// ok is false when neither axis does.
func (b Bounds) Scale(w, h int) (m float64, ok bool) {
	m = math.Inf(1)
	for _, axis := range [2]struct{ size, span float64 }{
		{float64(w), b.Width()},
		{float64(h), b.Height()},
	} {
		if !(axis.span > 0) || math.IsInf(axis.span, 0) {
			continue
		}
		s := axis.size / axis.span
		if math.IsInf(s, 0) || math.IsNaN(s) {
			continue
		}
		if s < m {
			m, ok = s, true
		}
	}
	if !ok {
		return 0, false
	}
	return m, true
}

// Degenerate reports whether the box carries no usable extent.
func (b Bounds) Degenerate() bool {
	_, ok := b.Scale(1, 1)
	return !ok
}
