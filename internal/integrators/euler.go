package integrators

import "github.com/san-kum/attractor/internal/dynamo"

// Euler is the explicit first-order method x' = x + dt*f(x, t).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.Vector, t float64, dt float64) dynamo.Vector {
	dx := dyn.Derive(x, t)
	result := make(dynamo.Vector, len(x))
	for i := range x {
		result[i] = x[i] + dx[i]*dt
	}
	return result
}
