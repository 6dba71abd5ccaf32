package attractor

import (
	"image"
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/integrators"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
)

const twoPi = 2 * math.Pi

// DoublePendulum integrates two point masses on rigid rods with RK4 and
// traces the lower bob. The state is (theta1, theta2, omega1, omega2);
// a0, a1 are the masses, a2, a3 the rod lengths and a4 gravity.
type DoublePendulum struct {
	base
	integ dynamo.Integrator
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		base: base{
			name: "DoublePendulum",
			mapStr: "m = a1/a0, l = a3/a2, g = a4/a2, d = theta1 - theta2\n" +
				"dw1/dt = -((1+m)*g*sin(theta1) + m*l*w2^2*sin(d) + m*cos(d)*(w1^2*sin(d) - g*sin(theta2))) / (1 + m*sin(d)^2)\n" +
				"dw2/dt = ((1+m)*(w1^2*sin(d) - g*sin(theta2)) + cos(d)*((1+m)*g*sin(theta1) + m*l*w2^2*sin(d))) / (l*(1 + m*sin(d)^2))\n" +
				"(x, y) = (a2*sin(theta1) + a3*sin(theta2), a2*cos(theta1) + a3*cos(theta2))",
			ranges: []dynamo.Range{
				dynamo.R(0.1, 2),
				dynamo.R(0.1, 2),
				dynamo.R(0.1, 2),
				dynamo.R(0.1, 2),
				dynamo.R(0, 10),
			},
			speeds:  fill(0.001, 5),
			coefs:   []float64{1, 1, 1, 1, 9.8},
			state:   dynamo.NewState(4, dynamo.R(-twoPi, twoPi), dynamo.Step(0.0005)),
			scan:    raster.ContinuousScan(50_000),
			caching: true,
		},
		integ: integrators.NewRK4(),
	}
}

func pendulumField(c []float64, v dynamo.Vector) dynamo.Vector {
	th1, th2, w1, w2 := v[0], v[1], v[2], v[3]
	m := c[1] / c[0]
	l := c[3] / c[2]
	g := c[4] / c[2]
	ds, dc := math.Sincos(th1 - th2)
	s1, s2 := math.Sin(th1), math.Sin(th2)
	den := 1 + m*ds*ds

	a := (1+m)*g*s1 + m*l*w2*w2*ds
	b := w1*w1*ds - g*s2
	return dynamo.Vector{
		w1,
		w2,
		-(a + m*dc*b) / den,
		((1+m)*b + dc*a) / (l * den),
	}
}

func (p *DoublePendulum) Derive(x dynamo.Vector, _ float64) dynamo.Vector {
	return pendulumField(p.coefs, x)
}

func (p *DoublePendulum) StateDim() int { return 4 }

func (p *DoublePendulum) Step() {
	dt := *p.state.Dt
	next := p.integ.Step(p, p.state.X, p.state.Time, dt)
	next[0] = math.Mod(next[0], twoPi)
	next[1] = math.Mod(next[1], twoPi)
	p.state.SetXs(next)
	p.state.Time += dt
}

func (p *DoublePendulum) Project() (float64, float64) {
	s1, c1 := math.Sincos(p.state.X[0])
	s2, c2 := math.Sincos(p.state.X[1])
	return p.coefs[2]*s1 + p.coefs[3]*s2, p.coefs[2]*c1 + p.coefs[3]*c2
}

func (p *DoublePendulum) GenImage(n, w, h int, plt palette.Palette) *image.RGBA {
	return p.render(p, n, w, h, plt)
}

func (p *DoublePendulum) SaveImage(path string, n, w, h int, plt palette.Palette) error {
	return p.save(p, path, n, w, h, plt)
}
