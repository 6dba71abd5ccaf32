package dynamo

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewState(t *testing.T) {
	s := NewState(3, R(0, 20), Step(0.0001))

	if s.N != 3 || len(s.X) != 3 || len(s.InitX) != 3 {
		t.Fatalf("unexpected dimensions: %+v", s)
	}
	for i := range s.X {
		if s.X[i] != 0.5 || s.InitX[i] != 0.5 {
			t.Errorf("component %d: expected 0.5 default", i)
		}
	}
	dt, ok := s.DtValue()
	if !ok || dt != 0.0001 {
		t.Errorf("dt = %v (%v), want 0.0001", dt, ok)
	}
	if *s.DtRange != 0.0001*100 {
		t.Errorf("dt_range = %v, want 100*dt", *s.DtRange)
	}

	discrete := NewState(2, R(-1, 1), nil)
	if _, ok := discrete.DtValue(); ok {
		t.Error("discrete state should not have a time step")
	}
	if discrete.DtRange != nil {
		t.Error("discrete state should not have a dt range")
	}
}

func TestState_SetInit(t *testing.T) {
	s := NewState(2, R(-1, 1), Step(0.01))
	s.SetXY(3, 4)
	s.Time = 12

	s.SetInit()

	x, y := s.XY()
	if x != 0.5 || y != 0.5 || s.Time != 0 {
		t.Errorf("SetInit did not rewind: (%v, %v) t=%v", x, y, s.Time)
	}

	s.X[0] = 9
	if s.InitX[0] != 0.5 {
		t.Error("X must not alias InitX after SetInit")
	}
}

func TestState_SetRandomInit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewState(4, R(-6.28, 6.28), nil)

	for i := 0; i < 200; i++ {
		s.SetRandomInit(rng)
		if len(s.InitX) != 4 {
			t.Fatalf("random init has %d components", len(s.InitX))
		}
		for _, v := range s.InitX {
			if !s.XRange.Contains(v) {
				t.Fatalf("value %v outside %v", v, s.XRange)
			}
		}
	}
}

func TestState_SetInitValue(t *testing.T) {
	s := NewState(2, R(-1, 1), nil)

	if err := s.SetInitValue(1, -0.25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.InitX[1] != -0.25 {
		t.Errorf("init_x[1] = %v", s.InitX[1])
	}

	err := s.SetInitValue(0, 2)
	if !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	var be *BoundsError
	if !errors.As(err, &be) || be.Value != 2 {
		t.Errorf("expected BoundsError carrying the value, got %v", err)
	}

	if err := s.SetInitValue(5, 0); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestState_SetDt(t *testing.T) {
	s := NewState(2, R(-1, 1), Step(0.0005))

	if err := s.SetDt(0.01); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetDt(0.06); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected bound violation above 100*dt, got %v", err)
	}
	if err := s.SetDt(-1); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected bound violation for negative dt, got %v", err)
	}

	discrete := NewState(2, R(-1, 1), nil)
	if err := discrete.SetDt(0.1); !errors.Is(err, ErrNoTimeStep) {
		t.Errorf("expected ErrNoTimeStep, got %v", err)
	}
}

func TestState_AccessorsPanicOnDimension(t *testing.T) {
	s := NewState(2, R(-1, 1), nil)

	defer func() {
		if recover() == nil {
			t.Error("XYZ on a 2-dimensional state should panic")
		}
	}()
	s.XYZ()
}

func TestState_Validate(t *testing.T) {
	s := NewState(2, R(-1, 1), Step(0.01))
	if err := s.Validate(); err != nil {
		t.Fatalf("fresh state invalid: %v", err)
	}

	bad := s.Clone()
	bad.InitX = Vector{1}
	if err := bad.Validate(); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}

	half := s.Clone()
	half.DtRange = nil
	if err := half.Validate(); err == nil {
		t.Error("dt without dt_range should be rejected")
	}
}

func TestState_Clone(t *testing.T) {
	s := NewState(2, R(-1, 1), Step(0.01))
	c := s.Clone()
	c.X[0] = 7
	*c.Dt = 0.5

	if s.X[0] == 7 {
		t.Error("clone aliases X")
	}
	if *s.Dt == 0.5 {
		t.Error("clone aliases Dt")
	}
}
