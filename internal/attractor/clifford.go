package attractor

import (
	"image"
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
)

type Clifford struct {
	base
}

func NewClifford() *Clifford {
	return &Clifford{base{
		name:   "Clifford Attractor",
		mapStr: "x' = a0*sin(a1*y) + a2*cos(a3*x)\ny' = a4*sin(a5*x) + a6*cos(a7*y)",
		ranges: repeat(dynamo.R(-2, 2), 8),
		speeds: fill(0.001, 8),
		coefs:  fill(1, 8),
		state:  dynamo.NewState(2, dynamo.R(-2, 2), nil),
		scan:   raster.DiscreteScan(),
	}}
}

func cliffordMap(c []float64, x, y float64) (float64, float64) {
	return c[0]*math.Sin(c[1]*y) + c[2]*math.Cos(c[3]*x),
		c[4]*math.Sin(c[5]*x) + c[6]*math.Cos(c[7]*y)
}

func (c *Clifford) Step() {
	x, y := c.state.XY()
	c.state.SetXY(cliffordMap(c.coefs, x, y))
}

func (c *Clifford) Project() (float64, float64) { return c.state.XY() }

func (c *Clifford) GenImage(n, w, h int, plt palette.Palette) *image.RGBA {
	return c.render(c, n, w, h, plt)
}

func (c *Clifford) SaveImage(path string, n, w, h int, plt palette.Palette) error {
	return c.save(c, path, n, w, h, plt)
}
