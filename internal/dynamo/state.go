package dynamo

import (
	"fmt"
	"math/rand"
)

const defaultInit = 0.5

// State is the phase-space point of an attractor together with its initial
// condition and simulated clock. Dt is nil for discrete maps.
type State struct {
	N       int      `json:"n"`
	X       Vector   `json:"x"`
	InitX   Vector   `json:"init_x"`
	XRange  Range    `json:"x_range"`
	Time    float64  `json:"time"`
	Dt      *float64 `json:"dt"`
	DtRange *float64 `json:"dt_range"`
}

func NewState(n int, xRange Range, dt *float64) *State {
	s := &State{
		N:      n,
		X:      make(Vector, n),
		InitX:  make(Vector, n),
		XRange: xRange,
	}
	for i := 0; i < n; i++ {
		s.X[i] = defaultInit
		s.InitX[i] = defaultInit
	}
	if dt != nil {
		step := *dt
		bound := step * 100
		s.Dt = &step
		s.DtRange = &bound
	}
	return s
}

// Step returns a pointer suitable for NewState's dt argument.
func Step(dt float64) *float64 { return &dt }

// SetInit rewinds the trajectory to the initial condition.
func (s *State) SetInit() {
	s.Time = 0
	if len(s.X) != len(s.InitX) {
		s.X = make(Vector, len(s.InitX))
	}
	copy(s.X, s.InitX)
}

func (s *State) SetRandomInit(rng *rand.Rand) {
	init := make(Vector, s.N)
	for i := range init {
		init[i] = s.XRange.Sample(rng)
	}
	s.InitX = init
}

func (s *State) InitValues() Vector { return s.InitX }

func (s *State) SetInitValue(i int, v float64) error {
	if i < 0 || i >= len(s.InitX) {
		return fmt.Errorf("init index %d of %d: %w", i, len(s.InitX), ErrDimensionMismatch)
	}
	if !s.XRange.Contains(v) {
		return &BoundsError{Index: i, Value: v, Range: s.XRange}
	}
	s.InitX[i] = v
	return nil
}

// DtValue reports the fixed step of a continuous system.
func (s *State) DtValue() (float64, bool) {
	if s.Dt == nil {
		return 0, false
	}
	return *s.Dt, true
}

func (s *State) SetDt(v float64) error {
	if s.Dt == nil {
		return ErrNoTimeStep
	}
	bound := Range{Start: 0, End: *s.DtRange}
	if !bound.Contains(v) {
		return &BoundsError{Index: 0, Value: v, Range: bound}
	}
	*s.Dt = v
	return nil
}

func (s *State) Xs() Vector { return s.X }

func (s *State) SetXs(v Vector) {
	if len(v) != s.N {
		panic(fmt.Sprintf("dynamo: SetXs with %d components on %d-dimensional state", len(v), s.N))
	}
	s.X = v
}

func (s *State) XY() (float64, float64) {
	s.require(2)
	return s.X[0], s.X[1]
}

func (s *State) SetXY(x, y float64) {
	s.require(2)
	s.X[0] = x
	s.X[1] = y
}

func (s *State) XYZ() (float64, float64, float64) {
	s.require(3)
	return s.X[0], s.X[1], s.X[2]
}

func (s *State) SetXYZ(x, y, z float64) {
	s.require(3)
	s.X[0] = x
	s.X[1] = y
	s.X[2] = z
}

func (s *State) require(n int) {
	if len(s.X) < n {
		panic(fmt.Sprintf("dynamo: state has %d components, need %d", len(s.X), n))
	}
}

// Validate checks the structural invariants of a decoded State.
func (s *State) Validate() error {
	if s.N <= 0 || len(s.X) != s.N || len(s.InitX) != s.N {
		return fmt.Errorf("n=%d len(x)=%d len(init_x)=%d: %w", s.N, len(s.X), len(s.InitX), ErrDimensionMismatch)
	}
	if (s.Dt == nil) != (s.DtRange == nil) {
		return fmt.Errorf("dt and dt_range must both be set or absent: %w", ErrDimensionMismatch)
	}
	return nil
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.X = s.X.Clone()
	c.InitX = s.InitX.Clone()
	if s.Dt != nil {
		dt, bound := *s.Dt, *s.DtRange
		c.Dt, c.DtRange = &dt, &bound
	}
	return &c
}
