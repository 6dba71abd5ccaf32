package attractor

import (
	"fmt"
	"math/rand"
)

type entry struct {
	key  string
	name string
	ctor func() Attractor
}

// catalog keeps presentation order; keys are stable identifiers for
// config files and the command line.
var catalog = []entry{
	{"trigonometric", "Trigonometric Attractor", func() Attractor { return NewTrigonometric() }},
	{"clifford", "Clifford Attractor", func() Attractor { return NewClifford() }},
	{"quadratic", "Quadratic Attractor", func() Attractor { return NewQuadratic() }},
	{"polar", "Polar Attractor", func() Attractor { return NewPolar() }},
	{"symmetric", "Symmetric Attractor", func() Attractor { return NewSymmetric() }},
	{"duffing", "Duffing Attractor", func() Attractor { return NewDuffing() }},
	{"lorenz", "Lorenz Attractor", func() Attractor { return NewLorenz() }},
	{"double_pendulum", "DoublePendulum", func() Attractor { return NewDoublePendulum() }},
}

func Keys() []string {
	keys := make([]string, len(catalog))
	for i, e := range catalog {
		keys[i] = e.key
	}
	return keys
}

// New constructs the variant registered under key with default parameters.
func New(key string) (Attractor, error) {
	for _, e := range catalog {
		if e.key == key {
			return e.ctor(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAttractor, key)
}

// NewByName constructs a variant from its display name.
func NewByName(name string) (Attractor, error) {
	key, ok := KeyFor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttractor, name)
	}
	return New(key)
}

func KeyFor(name string) (string, bool) {
	for _, e := range catalog {
		if e.name == name {
			return e.key, true
		}
	}
	return "", false
}

// NewRandom constructs a variant and redraws its coefficients.
func NewRandom(key string, rng *rand.Rand) (Attractor, error) {
	a, err := New(key)
	if err != nil {
		return nil, err
	}
	a.ChangeRandomCoefs(rng)
	return a, nil
}
