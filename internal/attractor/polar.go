package attractor

import (
	"image"
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
)

type Polar struct {
	base
}

func NewPolar() *Polar {
	return &Polar{base{
		name: "Polar Attractor",
		mapStr: "u = a0*sin(a1*y) + a2*tanh(1 - y^2)\n" +
			"v = a3*(sin(a0*(2 + x^2)/(2 - y^2)) - x) + a4*x/cosh(x + y)\n" +
			"x' = u*cos(v)\ny' = u*sin(v) + 1",
		ranges:  repeat(dynamo.R(-3, 3), 5),
		speeds:  fill(0.001, 5),
		coefs:   fill(1, 5),
		state:   dynamo.NewState(2, dynamo.R(-1, 1), nil),
		scan:    raster.DiscreteScan(),
		caching: true,
	}}
}

func polarMap(c []float64, x, y float64) (float64, float64) {
	u := c[0]*math.Sin(c[1]*y) + c[2]*math.Tanh(1-y*y)
	v := c[3]*(math.Sin(c[0]*(2+x*x)/(2-y*y))-x) + c[4]*x/math.Cosh(x+y)
	sv, cv := math.Sincos(v)
	return u * cv, u*sv + 1
}

func (p *Polar) Step() {
	x, y := p.state.XY()
	p.state.SetXY(polarMap(p.coefs, x, y))
}

func (p *Polar) Project() (float64, float64) { return p.state.XY() }

func (p *Polar) GenImage(n, w, h int, plt palette.Palette) *image.RGBA {
	return p.render(p, n, w, h, plt)
}

func (p *Polar) SaveImage(path string, n, w, h int, plt palette.Palette) error {
	return p.save(p, path, n, w, h, plt)
}
