package attractor

import (
	"image"
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/integrators"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
)

// Duffing is the forced, damped double-well oscillator integrated with
// explicit Euler. a0 is the damping, a1 the forcing amplitude and a2 its
// angular frequency.
type Duffing struct {
	base
	integ dynamo.Integrator
}

func NewDuffing() *Duffing {
	return &Duffing{
		base: base{
			name:   "Duffing Attractor",
			mapStr: "dx/dt = y\ndy/dt = x - x^3 - a0*y + a1*cos(a2*t)",
			ranges: []dynamo.Range{dynamo.R(-1, 1), dynamo.R(-1, 1), dynamo.R(-5, 5)},
			speeds: fill(0.001, 3),
			coefs:  fill(0.5, 3),
			state:  dynamo.NewState(2, dynamo.R(-1, 1), dynamo.Step(0.0005)),
			scan:   raster.ContinuousScan(100_000),
		},
		integ: integrators.NewEuler(),
	}
}

func duffingField(c []float64, x dynamo.Vector, t float64) dynamo.Vector {
	return dynamo.Vector{
		x[1],
		x[0] - x[0]*x[0]*x[0] - c[0]*x[1] + c[1]*math.Cos(c[2]*t),
	}
}

func (d *Duffing) Derive(x dynamo.Vector, t float64) dynamo.Vector {
	return duffingField(d.coefs, x, t)
}

func (d *Duffing) StateDim() int { return 2 }

func (d *Duffing) Step() {
	dt := *d.state.Dt
	d.state.SetXs(d.integ.Step(d, d.state.X, d.state.Time, dt))
	d.state.Time += dt
}

func (d *Duffing) Project() (float64, float64) { return d.state.XY() }

func (d *Duffing) GenImage(n, w, h int, plt palette.Palette) *image.RGBA {
	return d.render(d, n, w, h, plt)
}

func (d *Duffing) SaveImage(path string, n, w, h int, plt palette.Palette) error {
	return d.save(d, path, n, w, h, plt)
}
