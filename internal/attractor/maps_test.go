package attractor

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/attractor/internal/dynamo"
)

const eps = 1e-12

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

func TestTrigonometricMap(t *testing.T) {
	x, y := trigonometricMap(fill(1, 8), 0, 0)
	if !near(x, math.Sin(1)) || !near(y, math.Cos(1)) {
		t.Errorf("expected (sin 1, cos 1), got (%f, %f)", x, y)
	}
}

func TestCliffordMap(t *testing.T) {
	x, y := cliffordMap(fill(1, 8), 0, 0)
	if !near(x, 1) || !near(y, 1) {
		t.Errorf("expected (1, 1), got (%f, %f)", x, y)
	}

	c := []float64{2, 1, 0, 0, 0, 0, 3, 1}
	x, y = cliffordMap(c, math.Pi, math.Pi/2)
	if !near(x, 2) || !near(y, 0) {
		t.Errorf("expected (2, 0), got (%f, %f)", x, y)
	}
}

func TestQuadraticMapConstant(t *testing.T) {
	c := make([]float64, 12)
	c[5], c[11] = 0.5, 0.5

	for _, p := range [][2]float64{{0, 0}, {3, -7}, {0.5, 0.5}} {
		x, y := quadraticMap(c, p[0], p[1])
		if x != 0.5 || y != 0.5 {
			t.Errorf("from %v expected (0.5, 0.5), got (%f, %f)", p, x, y)
		}
	}
}

func TestPolarMap(t *testing.T) {
	x, y := polarMap(fill(1, 5), 0, 0)
	u, v := math.Tanh(1), math.Sin(1)
	if !near(x, u*math.Cos(v)) || !near(y, u*math.Sin(v)+1) {
		t.Errorf("got (%f, %f)", x, y)
	}
}

func TestSymmetricMapDefault(t *testing.T) {
	// p = z^2 = 0.25, scalar = 2 - 2*0.25 = 1.5
	x, y := symmetricMap([]float64{3, 2, -2, 0, 0, 0}, 0.5, 0)
	if !near(x, 0.75) || !near(y, 0) {
		t.Errorf("expected (0.75, 0), got (%f, %f)", x, y)
	}
}

func TestSymmetricMapRotation(t *testing.T) {
	// a4 alone rotates: z' = i*a4*z^2
	x, y := symmetricMap([]float64{3, 0, 0, 0, 1, 0}, 1, 0)
	if !near(x, 0) || !near(y, 1) {
		t.Errorf("expected (0, 1), got (%f, %f)", x, y)
	}
}

func TestIpow(t *testing.T) {
	z := complex(0.3, -1.1)
	for k := 0; k < 12; k++ {
		got := ipow(z, k)
		want := cmplx.Pow(z, complex(float64(k), 0))
		if cmplx.Abs(got-want) > 1e-9 {
			t.Errorf("z^%d: expected %v, got %v", k, want, got)
		}
	}
}

func TestLorenzField(t *testing.T) {
	dx := lorenzField([]float64{10, 28, 8.0 / 3}, dynamo.Vector{1, 2, 3})
	want := dynamo.Vector{10, 1*(28-3) - 2, 2 - 8}
	for i := range want {
		if !near(dx[i], want[i]) {
			t.Errorf("component %d: expected %f, got %f", i, want[i], dx[i])
		}
	}
}

func TestDuffingField(t *testing.T) {
	dx := duffingField([]float64{0.5, 0.5, 0.5}, dynamo.Vector{2, 1}, 0)
	// y, x - x^3 - a0*y + a1*cos(0)
	if !near(dx[0], 1) || !near(dx[1], 2-8-0.5+0.5) {
		t.Errorf("got %v", dx)
	}
}

func TestDuffingUsesTime(t *testing.T) {
	c := []float64{0, 1, 1}
	a := duffingField(c, dynamo.Vector{0, 0}, 0)
	b := duffingField(c, dynamo.Vector{0, 0}, math.Pi)
	if !near(a[1], 1) || !near(b[1], -1) {
		t.Errorf("expected forcing +1 then -1, got %f and %f", a[1], b[1])
	}
}

func TestPendulumFieldAtRest(t *testing.T) {
	dx := pendulumField([]float64{1, 1, 1, 1, 9.8}, dynamo.Vector{0, 0, 0, 0})
	for i, v := range dx {
		if math.Abs(v) > 1e-10 {
			t.Errorf("component %d: expected 0 at rest, got %f", i, v)
		}
	}
}

func TestPendulumFieldRestoring(t *testing.T) {
	dx := pendulumField([]float64{1, 1, 1, 1, 9.8}, dynamo.Vector{0.1, 0.1, 0, 0})
	if dx[2] >= 0 {
		t.Errorf("expected upper bob to accelerate back, got %f", dx[2])
	}
}

func TestDoublePendulumWrapsAngles(t *testing.T) {
	p := NewDoublePendulum()
	p.state.InitX = dynamo.Vector{3, -3, 40, -40}
	p.Reset()
	for i := 0; i < 20000; i++ {
		p.Step()
		if math.Abs(p.state.X[0]) >= twoPi || math.Abs(p.state.X[1]) >= twoPi {
			t.Fatalf("step %d: angles not wrapped: %v", i, p.state.X)
		}
	}
}

func TestDoublePendulumProjection(t *testing.T) {
	p := NewDoublePendulum()
	p.coefs[2], p.coefs[3] = 1.5, 0.5
	p.state.X = dynamo.Vector{0, 0, 0, 0}
	x, y := p.Project()
	if !near(x, 0) || !near(y, 2) {
		t.Errorf("expected hanging bob at (0, 2), got (%f, %f)", x, y)
	}
}

func TestContinuousStepAdvancesTime(t *testing.T) {
	for _, a := range []Attractor{NewDuffing(), NewLorenz(), NewDoublePendulum()} {
		dt, _ := a.State().DtValue()
		for i := 0; i < 10; i++ {
			a.Step()
		}
		if math.Abs(a.State().Time-10*dt) > 1e-15 {
			t.Errorf("%s: expected time %g, got %g", a.Name(), 10*dt, a.State().Time)
		}
		a.Reset()
		if a.State().Time != 0 {
			t.Errorf("%s: reset left time %g", a.Name(), a.State().Time)
		}
	}
}
