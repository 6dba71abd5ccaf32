package dynamo

import "math"

type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v Vector) Sub(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] - other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

// System is an autonomous or time-forced ODE dX/dt = f(X, t).
type System interface {
	Derive(x Vector, t float64) Vector
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x Vector, t float64, dt float64) Vector
}
