package attractor

import (
	"image"
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
)

type Trigonometric struct {
	base
}

func NewTrigonometric() *Trigonometric {
	return &Trigonometric{base{
		name:   "Trigonometric Attractor",
		mapStr: "x' = sin(a0*x^2 + a1*x*y + a2*y^2 + a3)\ny' = cos(a4*x^2 + a5*x*y + a6*y^2 + a7)",
		ranges: repeat(dynamo.R(-5, 5), 8),
		speeds: fill(0.001, 8),
		coefs:  fill(1, 8),
		state:  dynamo.NewState(2, dynamo.R(-1, 1), nil),
		scan:   raster.DiscreteScan(),
	}}
}

func trigonometricMap(c []float64, x, y float64) (float64, float64) {
	xx, xy, yy := x*x, x*y, y*y
	return math.Sin(c[0]*xx + c[1]*xy + c[2]*yy + c[3]),
		math.Cos(c[4]*xx + c[5]*xy + c[6]*yy + c[7])
}

func (t *Trigonometric) Step() {
	x, y := t.state.XY()
	t.state.SetXY(trigonometricMap(t.coefs, x, y))
}

func (t *Trigonometric) Project() (float64, float64) { return t.state.XY() }

func (t *Trigonometric) GenImage(n, w, h int, plt palette.Palette) *image.RGBA {
	return t.render(t, n, w, h, plt)
}

func (t *Trigonometric) SaveImage(path string, n, w, h int, plt palette.Palette) error {
	return t.save(t, path, n, w, h, plt)
}
