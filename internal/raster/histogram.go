package raster

import "math"

// Trajectory is a dynamical system that can be rewound, advanced one step
// and projected onto the image plane.
type Trajectory interface {
	Reset()
	Step()
	Project() (x, y float64)
}

// ProgressFunc receives accumulation progress in steps.
type ProgressFunc func(done, total int)

const ProgressInterval = 1 << 16

// Histogram is a dense row-major grid of visit counts.
type Histogram struct {
	W, H    int
	Counts  []uint64
	Max     uint64
	Total   uint64
	Dropped uint64
	Bounds  Bounds
	Scale   float64
}

func NewHistogram(w, h int) *Histogram {
	return &Histogram{W: w, H: h, Counts: make([]uint64, w*h)}
}

func (h *Histogram) At(col, row int) uint64 {
	return h.Counts[row*h.W+col]
}

func (h *Histogram) add(col, row int) {
	i := row*h.W + col
	h.Counts[i]++
	if h.Counts[i] > h.Max {
		h.Max = h.Counts[i]
	}
	h.Total++
}

// Normalize divides every cell by the maximum count.
func (h *Histogram) Normalize() []float64 {
	grid := make([]float64, len(h.Counts))
	if h.Max == 0 {
		return grid
	}
	inv := 1.0 / float64(h.Max)
	for i, c := range h.Counts {
		grid[i] = float64(c) * inv
	}
	return grid
}

// Occupied returns the number of non-empty cells.
func (h *Histogram) Occupied() int {
	n := 0
	for _, c := range h.Counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// SearchEdges runs samples steps from the initial condition and returns the
// bounding box of the projections after the first skip steps. The
// trajectory is rewound before returning.
func SearchEdges(t Trajectory, samples, skip int) Bounds {
	t.Reset()
	b := emptyBounds()
	for i := 0; i < samples; i++ {
		t.Step()
		if i < skip {
			continue
		}
		x, y := t.Project()
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		b.extend(x, y)
	}
	t.Reset()
	return b
}

// Accumulate runs n steps from the initial condition and bins every step
// after the first skip. Points outside the canvas are clamped to the
// border; points with a NaN coordinate are counted as dropped. With a
// degenerate box every finite point lands on the center pixel.
func Accumulate(t Trajectory, n, w, h, skip int, b Bounds, progress ProgressFunc) *Histogram {
	hist := NewHistogram(w, h)
	hist.Bounds = b
	m, _ := b.Scale(w, h)
	hist.Scale = m
	wc, hc := b.Center()
	halfW, halfH := float64(w/2), float64(h/2)
	maxCol, maxRow := float64(w-1), float64(h-1)

	t.Reset()
	for i := 0; i < n; i++ {
		t.Step()
		if progress != nil && i%ProgressInterval == 0 {
			progress(i, n)
		}
		if i < skip {
			continue
		}
		x, y := t.Project()
		col := clampf(math.Round((x-wc)*m)+halfW, maxCol)
		row := clampf(math.Round((y-hc)*m)+halfH, maxRow)
		if math.IsNaN(col) || math.IsNaN(row) {
			hist.Dropped++
			continue
		}
		hist.add(int(col), int(row))
	}
	if progress != nil {
		progress(n, n)
	}
	return hist
}

func clampf(v, hi float64) float64 {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
