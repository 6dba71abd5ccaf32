package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/dynamo"
)

// ErrUnbounded reports a trajectory that left every finite bound.
var ErrUnbounded = errors.New("analysis: trajectory unbounded")

const (
	escapeRadius  = 1e6
	minSeparation = 1e-300
	runningPoints = 100
)

type Lyapunov struct {
	// Exponent is per iteration for maps and per unit time for flows.
	Exponent float64
	// Running holds the estimate as it converges, sampled evenly.
	Running []float64
}

// LyapunovExponent estimates the largest Lyapunov exponent of a with the
// two-trajectory method: a twin starts d0 away after the transient and is
// pulled back to distance d0 after every step. a is rewound on return.
func LyapunovExponent(a attractor.Attractor, steps, transient int, d0 float64) (Lyapunov, error) {
	defer a.Reset()
	if steps <= 0 || d0 <= 0 {
		return Lyapunov{}, fmt.Errorf("analysis: steps=%d d0=%g must be positive", steps, d0)
	}

	a.Reset()
	for i := 0; i < transient; i++ {
		a.Step()
	}
	if escaped(a.State().X) {
		return Lyapunov{}, ErrUnbounded
	}

	twin, err := attractor.FromRecord(attractor.ToRecord(a))
	if err != nil {
		return Lyapunov{}, err
	}
	twin.State().X[0] += d0

	every := max(1, steps/runningPoints)
	running := make([]float64, 0, runningPoints+1)
	sumLog := 0.0

	for i := 1; i <= steps; i++ {
		a.Step()
		twin.Step()

		x, xp := a.State().X, twin.State().X
		if escaped(x) || escaped(xp) {
			return Lyapunov{}, ErrUnbounded
		}

		sep := math.Max(xp.Sub(x).Norm(), minSeparation)
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}

		if i%every == 0 {
			running = append(running, perUnit(a.State(), sumLog/float64(i)))
		}
	}

	return Lyapunov{
		Exponent: perUnit(a.State(), sumLog/float64(steps)),
		Running:  running,
	}, nil
}

func perUnit(s *dynamo.State, perStep float64) float64 {
	if dt, ok := s.DtValue(); ok && dt > 0 {
		return perStep / dt
	}
	return perStep
}

func escaped(x dynamo.Vector) bool {
	return !x.IsValid() || x.Norm() > escapeRadius
}
