package dynamo

import (
	"math"
	"testing"
)

func TestVector_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		vec   Vector
		valid bool
	}{
		{"empty", Vector{}, true},
		{"normal", Vector{1.0, 2.0, 3.0}, true},
		{"with NaN", Vector{1.0, math.NaN()}, false},
		{"with +Inf", Vector{1.0, math.Inf(1)}, false},
		{"with -Inf", Vector{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vec.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVector_NormSub(t *testing.T) {
	a := Vector{4, 6}
	b := Vector{1, 2}
	if got := a.Sub(b).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("|a-b| = %v, want 5", got)
	}

	c := a.Clone()
	c[0] = 100
	if a[0] != 4 {
		t.Error("Clone should not alias")
	}
}

func TestRange(t *testing.T) {
	r := R(-2, 3)
	if !r.Contains(-2) || !r.Contains(3) || r.Contains(3.0001) {
		t.Error("Contains should be inclusive on both ends")
	}
	if r.Clamp(10) != 3 || r.Clamp(-10) != -2 || r.Clamp(1) != 1 {
		t.Error("Clamp mismatch")
	}
	if r.Span() != 5 {
		t.Errorf("Span = %v, want 5", r.Span())
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 64, 1023} {
		hits := make([]int, n)
		ParallelFor(n, 8, func(start, end int) {
			for i := start; i < end; i++ {
				hits[i]++
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, h)
			}
		}
	}
}
