package attractor

import (
	"image"
	"math"
	"math/rand"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
)

// Symmetric is the complex map with k-fold rotational symmetry, k = int(a0).
type Symmetric struct {
	base
}

func NewSymmetric() *Symmetric {
	return &Symmetric{base{
		name:   "Symmetric Attractor",
		mapStr: "p = z^(a0 - 1)\nz' = (a1 + a2*|z|^2 + a3*Re(z*p) + a4*i*z)*z + a5*p",
		ranges: []dynamo.Range{
			dynamo.R(3, 25),
			dynamo.R(-5, 5),
			dynamo.R(-5, 5),
			dynamo.R(-0.5, 0.5),
			dynamo.R(-1, 1),
			dynamo.R(-1.5, 1.5),
		},
		speeds:  []float64{1, 0.001, 0.001, 0.001, 0.001, 0.001},
		coefs:   []float64{3, 2, -2, 0, 0, 0},
		state:   dynamo.NewState(2, dynamo.R(-1, 1), nil),
		scan:    raster.DiscreteScan(),
		caching: true,
	}}
}

// ipow raises z to a non-negative integer power by repeated squaring.
func ipow(z complex128, k int) complex128 {
	r := complex(1, 0)
	for k > 0 {
		if k&1 == 1 {
			r *= z
		}
		z *= z
		k >>= 1
	}
	return r
}

func symmetricMap(c []float64, x, y float64) (float64, float64) {
	z := complex(x, y)
	p := ipow(z, int(c[0])-1)
	scalar := c[1] + c[2]*(x*x+y*y) + c[3]*real(z*p)
	z = (complex(scalar, 0)+complex(0, c[4])*z)*z + complex(c[5], 0)*p
	return real(z), imag(z)
}

func (s *Symmetric) Step() {
	x, y := s.state.XY()
	s.state.SetXY(symmetricMap(s.coefs, x, y))
}

func (s *Symmetric) Project() (float64, float64) { return s.state.XY() }

// ChangeRandomCoefs draws an integer symmetry order and opposite-signed
// linear and cubic terms, which keeps most draws bounded.
func (s *Symmetric) ChangeRandomCoefs(rng *rand.Rand) {
	sign := 1.0
	if rng.Intn(2) == 0 {
		sign = -1
	}
	coefs := make([]float64, len(s.ranges))
	coefs[0] = math.Round(s.ranges[0].Sample(rng))
	coefs[1] = sign * dynamo.R(1, 5).Sample(rng)
	coefs[2] = -sign * dynamo.R(1, 5).Sample(rng)
	for i := 3; i < len(coefs); i++ {
		coefs[i] = s.ranges[i].Sample(rng)
	}
	s.coefs = coefs
	s.invalidate()
}

func (s *Symmetric) GenImage(n, w, h int, plt palette.Palette) *image.RGBA {
	return s.render(s, n, w, h, plt)
}

func (s *Symmetric) SaveImage(path string, n, w, h int, plt palette.Palette) error {
	return s.save(s, path, n, w, h, plt)
}
