package analysis

import "github.com/san-kum/attractor/internal/raster"

// Coverage is the fraction of non-empty histogram cells.
func Coverage(h *raster.Histogram) float64 {
	if len(h.Counts) == 0 {
		return 0
	}
	return float64(h.Occupied()) / float64(len(h.Counts))
}

// Profiles returns the visit totals per column and per row, each scaled so
// the largest entry is 1.
func Profiles(h *raster.Histogram) (cols, rows []float64) {
	cols = make([]float64, h.W)
	rows = make([]float64, h.H)
	for r := 0; r < h.H; r++ {
		for c := 0; c < h.W; c++ {
			v := float64(h.At(c, r))
			cols[c] += v
			rows[r] += v
		}
	}
	return unitMax(cols), unitMax(rows)
}

func unitMax(v []float64) []float64 {
	peak := 0.0
	for _, x := range v {
		peak = max(peak, x)
	}
	if peak == 0 {
		return v
	}
	for i := range v {
		v[i] /= peak
	}
	return v
}
