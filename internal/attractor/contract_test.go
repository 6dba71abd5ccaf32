package attractor_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/palette"
)

// bits compares trajectories that may have diverged to NaN.
func bits(v dynamo.Vector) []uint64 {
	out := make([]uint64, len(v))
	for i, x := range v {
		out[i] = math.Float64bits(x)
	}
	return out
}

var _ = Describe("Catalog", func() {
	It("lists every variant once", func() {
		keys := attractor.Keys()
		Expect(keys).To(HaveLen(8))
		Expect(keys).To(ContainElements("trigonometric", "clifford", "quadratic", "polar",
			"symmetric", "duffing", "lorenz", "double_pendulum"))
	})

	It("rejects unknown keys and names", func() {
		_, err := attractor.New("henon")
		Expect(err).To(MatchError(attractor.ErrUnknownAttractor))
		_, err = attractor.NewByName("Henon Attractor")
		Expect(err).To(MatchError(attractor.ErrUnknownAttractor))
	})

	It("maps display names back to keys", func() {
		for _, key := range attractor.Keys() {
			a, err := attractor.New(key)
			Expect(err).NotTo(HaveOccurred())
			got, ok := attractor.KeyFor(a.Name())
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(key))
		}
	})
})

var _ = Describe("Attractor contract", func() {
	for _, key := range attractor.Keys() {
		key := key

		Context(key, func() {
			var a attractor.Attractor

			BeforeEach(func() {
				var err error
				a, err = attractor.New(key)
				Expect(err).NotTo(HaveOccurred())
			})

			It("has consistent shapes", func() {
				Expect(a.Coefs()).To(HaveLen(len(a.CoefRanges())))
				Expect(a.Speeds()).To(HaveLen(len(a.Coefs())))
				Expect(a.State().X).To(HaveLen(a.Dim()))
				Expect(a.State().InitX).To(HaveLen(a.Dim()))
				for i, r := range a.CoefRanges() {
					Expect(r.Contains(a.Coefs()[i])).To(BeTrue(), "default coefficient %d outside %v", i, r)
				}
			})

			It("is deterministic", func() {
				b, _ := attractor.New(key)
				for i := 0; i < 500; i++ {
					a.Step()
					b.Step()
				}
				Expect(bits(a.State().X)).To(Equal(bits(b.State().X)))
			})

			It("rewinds on Reset", func() {
				init := a.State().InitX.Clone()
				for i := 0; i < 100; i++ {
					a.Step()
				}
				a.Reset()
				Expect(a.State().X).To(Equal(init))
				Expect(a.State().Time).To(BeZero())
			})

			It("range-checks SetCoef", func() {
				r := a.CoefRanges()[0]
				before := a.Coefs()[0]

				err := a.SetCoef(0, r.End+1)
				Expect(err).To(MatchError(dynamo.ErrParameterBounds))
				Expect(a.Coefs()[0]).To(Equal(before))

				Expect(a.SetCoef(len(a.Coefs()), r.Start)).To(MatchError(dynamo.ErrDimensionMismatch))
				Expect(a.SetCoef(0, r.Start)).To(Succeed())
				Expect(a.Coefs()[0]).To(Equal(r.Start))
			})

			It("range-checks initial values", func() {
				xr := a.State().XRange
				Expect(a.SetInitValue(0, xr.End+1)).To(MatchError(dynamo.ErrParameterBounds))
				Expect(a.SetInitValue(0, xr.Start)).To(Succeed())
				Expect(a.State().InitX[0]).To(Equal(xr.Start))
			})

			It("draws random coefficients inside their ranges", func() {
				rng := rand.New(rand.NewSource(7))
				for trial := 0; trial < 50; trial++ {
					a.ChangeRandomCoefs(rng)
					for i, r := range a.CoefRanges() {
						Expect(r.Contains(a.Coefs()[i])).To(BeTrue(), "coefficient %d = %g outside %v", i, a.Coefs()[i], r)
					}
				}
			})

			It("draws random initial conditions inside the state range", func() {
				a.SetRandomInit(rand.New(rand.NewSource(3)))
				for _, v := range a.State().InitX {
					Expect(a.State().XRange.Contains(v)).To(BeTrue())
				}
			})

			It("accepts a time step only when continuous", func() {
				dt, ok := a.State().DtValue()
				if !ok {
					Expect(a.SetDt(0.01)).To(MatchError(dynamo.ErrNoTimeStep))
					return
				}
				Expect(a.SetDt(dt * 2)).To(Succeed())
				Expect(a.SetDt(dt * 1000)).To(MatchError(dynamo.ErrParameterBounds))
			})

			It("renders an opaque image of the requested size", func() {
				img := a.GenImage(20_000, 48, 32, palette.Default())
				Expect(img.Bounds().Dx()).To(Equal(48))
				Expect(img.Bounds().Dy()).To(Equal(32))
				for i := 3; i < len(img.Pix); i += 4 {
					Expect(img.Pix[i]).To(Equal(uint8(255)))
				}
			})

			It("survives a record round trip", func() {
				a.ChangeRandomCoefs(rand.New(rand.NewSource(11)))
				a.SetRandomInit(rand.New(rand.NewSource(12)))

				b, err := attractor.FromRecord(attractor.ToRecord(a))
				Expect(err).NotTo(HaveOccurred())
				Expect(b.Name()).To(Equal(a.Name()))
				Expect(b.Coefs()).To(Equal(a.Coefs()))
				Expect(b.State().InitX).To(Equal(a.State().InitX))

				for i := 0; i < 200; i++ {
					a.Step()
					b.Step()
				}
				Expect(bits(b.State().X)).To(Equal(bits(a.State().X)))
			})
		})
	}
})

var _ = Describe("Symmetric sampling", func() {
	It("draws an integer order and opposite-signed a1, a2", func() {
		a := attractor.NewSymmetric()
		rng := rand.New(rand.NewSource(1))
		for trial := 0; trial < 200; trial++ {
			a.ChangeRandomCoefs(rng)
			c := a.Coefs()
			Expect(c[0]).To(Equal(math.Round(c[0])))
			Expect(c[0]).To(BeNumerically(">=", 3))
			Expect(c[0]).To(BeNumerically("<=", 25))
			Expect(math.Abs(c[1])).To(BeNumerically(">=", 1))
			Expect(math.Abs(c[2])).To(BeNumerically(">=", 1))
			Expect(c[1] * c[2]).To(BeNumerically("<", 0))
		}
	})
})
