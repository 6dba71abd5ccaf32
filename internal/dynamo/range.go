package dynamo

import (
	"fmt"
	"math/rand"
)

// Range is an inclusive interval [Start, End].
type Range struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

func R(start, end float64) Range { return Range{Start: start, End: end} }

func (r Range) Contains(v float64) bool { return v >= r.Start && v <= r.End }

func (r Range) Span() float64 { return r.End - r.Start }

func (r Range) Clamp(v float64) float64 {
	if v < r.Start {
		return r.Start
	}
	if v > r.End {
		return r.End
	}
	return v
}

// Sample draws uniformly from the interval.
func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Start + rng.Float64()*(r.End-r.Start)
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Start, r.End)
}

func (r Range) describe(i int, v float64) string {
	return fmt.Sprintf("index %d value %g not in %s", i, v, r)
}
