package analysis

import (
	"context"
	"errors"
	"math/rand"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/raster"
)

var ErrNotFound = errors.New("analysis: no attractor found")

type SearchOptions struct {
	MaxTries    int
	Steps       int // Lyapunov steps per candidate
	Transient   int
	Iterations  int // histogram iterations per candidate
	Size        int // histogram side
	MinExponent float64
	MinCoverage float64
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxTries:    500,
		Steps:       20_000,
		Transient:   1_000,
		Iterations:  100_000,
		Size:        128,
		MinExponent: 0.005,
		MinCoverage: 0.05,
	}
}

type Candidate struct {
	Try      int
	Exponent float64
	Coverage float64
}

// Search redraws the coefficients of a until its trajectory is bounded,
// has a positive Lyapunov exponent above MinExponent and fills at least
// MinCoverage of a Size×Size histogram. On success a holds the accepted
// coefficients; otherwise it holds the last rejected draw.
func Search(ctx context.Context, a attractor.Attractor, rng *rand.Rand, opts SearchOptions) (Candidate, error) {
	for try := 1; try <= opts.MaxTries; try++ {
		if err := ctx.Err(); err != nil {
			return Candidate{}, err
		}

		a.ChangeRandomCoefs(rng)
		ly, err := LyapunovExponent(a, opts.Steps, opts.Transient, 1e-8)
		if err != nil || ly.Exponent < opts.MinExponent {
			continue
		}

		hist := raster.Rasterize(a, a.Scan(), opts.Iterations, opts.Size, opts.Size, nil)
		if hist.Dropped > 0 {
			continue
		}
		cov := Coverage(hist)
		if cov < opts.MinCoverage {
			continue
		}
		return Candidate{Try: try, Exponent: ly.Exponent, Coverage: cov}, nil
	}
	return Candidate{}, ErrNotFound
}
