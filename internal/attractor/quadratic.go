package attractor

import (
	"image"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
)

// Quadratic is the general two-dimensional quadratic map. Its twelve
// coefficients are usually found by random search.
type Quadratic struct {
	base
}

func NewQuadratic() *Quadratic {
	return &Quadratic{base{
		name:    "Quadratic Attractor",
		mapStr:  "x' = a0*x^2 + a1*x + a2*x*y + a3*y + a4*y^2 + a5\ny' = a6*x^2 + a7*x + a8*x*y + a9*y + a10*y^2 + a11",
		ranges:  repeat(dynamo.R(-1.5, 1.5), 12),
		speeds:  fill(0.001, 12),
		coefs:   fill(1, 12),
		state:   dynamo.NewState(2, dynamo.R(-1, 1), nil),
		scan:    raster.DiscreteScan(),
		caching: true,
	}}
}

func quadraticMap(c []float64, x, y float64) (float64, float64) {
	xx, xy, yy := x*x, x*y, y*y
	return c[0]*xx + c[1]*x + c[2]*xy + c[3]*y + c[4]*yy + c[5],
		c[6]*xx + c[7]*x + c[8]*xy + c[9]*y + c[10]*yy + c[11]
}

func (q *Quadratic) Step() {
	x, y := q.state.XY()
	q.state.SetXY(quadraticMap(q.coefs, x, y))
}

func (q *Quadratic) Project() (float64, float64) { return q.state.XY() }

func (q *Quadratic) GenImage(n, w, h int, plt palette.Palette) *image.RGBA {
	return q.render(q, n, w, h, plt)
}

func (q *Quadratic) SaveImage(path string, n, w, h int, plt palette.Palette) error {
	return q.save(q, path, n, w, h, plt)
}
