package attractor

import (
	"image"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/integrators"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
)

// Lorenz is the 1963 convection model, drawn in the x-z plane.
type Lorenz struct {
	base
	integ dynamo.Integrator
}

func NewLorenz() *Lorenz {
	return &Lorenz{
		base: base{
			name:   "Lorenz Attractor",
			mapStr: "dx/dt = a0*(y - x)\ndy/dt = x*(a1 - z) - y\ndz/dt = x*y - a2*z",
			ranges: []dynamo.Range{dynamo.R(-20, 20), dynamo.R(-30, 30), dynamo.R(-5, 5)},
			speeds: fill(0.001, 3),
			coefs:  fill(0.5, 3),
			state:  dynamo.NewState(3, dynamo.R(0, 20), dynamo.Step(0.0001)),
			scan:   raster.ContinuousScan(100_000),
		},
		integ: integrators.NewEuler(),
	}
}

func lorenzField(c []float64, v dynamo.Vector) dynamo.Vector {
	x, y, z := v[0], v[1], v[2]
	return dynamo.Vector{
		c[0] * (y - x),
		x*(c[1]-z) - y,
		x*y - c[2]*z,
	}
}

func (l *Lorenz) Derive(x dynamo.Vector, _ float64) dynamo.Vector {
	return lorenzField(l.coefs, x)
}

func (l *Lorenz) StateDim() int { return 3 }

func (l *Lorenz) Step() {
	dt := *l.state.Dt
	l.state.SetXs(l.integ.Step(l, l.state.X, l.state.Time, dt))
	l.state.Time += dt
}

func (l *Lorenz) Project() (float64, float64) {
	x, _, z := l.state.XYZ()
	return x, z
}

func (l *Lorenz) GenImage(n, w, h int, plt palette.Palette) *image.RGBA {
	return l.render(l, n, w, h, plt)
}

func (l *Lorenz) SaveImage(path string, n, w, h int, plt palette.Palette) error {
	return l.save(l, path, n, w, h, plt)
}
