package integrators

import "github.com/san-kum/attractor/internal/dynamo"

type RK4 struct {
	k1, k2, k3, k4 dynamo.Vector
	scratch        dynamo.Vector
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.Vector, n)
		r.k2 = make(dynamo.Vector, n)
		r.k3 = make(dynamo.Vector, n)
		r.k4 = make(dynamo.Vector, n)
		r.scratch = make(dynamo.Vector, n)
	}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.Vector, t, dt float64) dynamo.Vector {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, dyn.Derive(x, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, dyn.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, dyn.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, dyn.Derive(r.scratch, t+dt))

	result := make(dynamo.Vector, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
