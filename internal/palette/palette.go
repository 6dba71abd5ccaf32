// Package palette maps normalized histogram densities to RGB colors.
//
// Each channel follows a cosine model
//
//	c(v) = baseline + amplitude*cos(2π*(frequency*phase(v) + offset))
//
// scaled by a power-law brightness curve. Phase and brightness are
// independent power curves of the same density so low-density regions
// can be tinted differently from dense cores.
package palette

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel holds baseline, amplitude, frequency and phase offset.
type Channel [4]float64

func (c Channel) Baseline() float64  { return c[0] }
func (c Channel) Amplitude() float64 { return c[1] }
func (c Channel) Frequency() float64 { return c[2] }
func (c Channel) Offset() float64    { return c[3] }

func (c Channel) eval(phase, bright float64) uint8 {
	v := (c[0] + c[1]*math.Cos((c[2]*phase+c[3])*2*math.Pi)) * bright
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Max(0, math.Min(255, v)))
}

type Palette struct {
	R           Channel `json:"r" yaml:"r"`
	G           Channel `json:"g" yaml:"g"`
	B           Channel `json:"b" yaml:"b"`
	ColVer1     float64 `json:"colver1" yaml:"colver1"`
	ColVer2     float64 `json:"colver2" yaml:"colver2"`
	Brightness1 float64 `json:"brightness1" yaml:"brightness1"`
	Brightness2 float64 `json:"brightness2" yaml:"brightness2"`
}

func Default() Palette {
	return Palette{
		R:           Channel{0.5, 0.25, 1.0, 0.0},
		G:           Channel{0.5, 0.25, 1.0, 0.33},
		B:           Channel{0.5, 0.25, 1.0, 0.67},
		ColVer1:     0.3,
		ColVer2:     5.0,
		Brightness1: 0.4,
		Brightness2: 20.0,
	}
}

// Random returns the default curves with randomized channels.
func Random(rng *rand.Rand) Palette {
	p := Default()
	p.ChangeRandom(rng)
	return p
}

func (p *Palette) ChangeRandom(rng *rand.Rand) {
	p.R = randomChannel(rng)
	p.G = randomChannel(rng)
	p.B = randomChannel(rng)
}

func randomChannel(rng *rand.Rand) Channel {
	return Channel{
		0.5 + rng.Float64()*0.5,
		rng.Float64() * 0.5,
		0.5 + rng.Float64(),
		rng.Float64(),
	}
}

func (p Palette) Phase(v float64) float64 {
	return math.Pow(v, p.ColVer1) * p.ColVer2
}

func (p Palette) Brightness(v float64) float64 {
	return math.Pow(v, p.Brightness1) * p.Brightness2
}

// Color maps density v (phase input) and b (brightness input) to RGB.
// factor rescales exposure for the iteration count and image size.
func (p Palette) Color(v, b, factor float64) (uint8, uint8, uint8) {
	phase := p.Phase(v)
	bright := p.Brightness(b) * factor
	return p.R.eval(phase, bright), p.G.eval(phase, bright), p.B.eval(phase, bright)
}

// Swatch returns the hex color for density v at unit exposure.
func (p Palette) Swatch(v, factor float64) string {
	r, g, b := p.Color(v, v, factor)
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}

// Ramp samples n swatches across densities (0, 1].
func (p Palette) Ramp(n int, factor float64) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = p.Swatch(float64(i+1)/float64(n), factor)
	}
	return out
}
