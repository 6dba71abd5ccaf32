package attractor

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/export"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
)

// Attractor is a dynamical system that renders itself as a density image.
// Implementations are not safe for concurrent use.
type Attractor interface {
	raster.Trajectory

	Name() string
	MapStr() string
	Dim() int

	// Coefs returns the live coefficient slice.
	Coefs() []float64
	SetCoef(i int, v float64) error
	CoefRanges() []dynamo.Range
	Speeds() []float64
	ChangeRandomCoefs(rng *rand.Rand)

	State() *dynamo.State
	SetInitValue(i int, v float64) error
	SetRandomInit(rng *rand.Rand)
	SetDt(v float64) error

	Scan() raster.Scan
	Caching() bool
	ParamChanged(flag bool)
	SetProgress(fn raster.ProgressFunc)

	GenImage(n, w, h int, plt palette.Palette) *image.RGBA
	SaveImage(path string, n, w, h int, plt palette.Palette) error

	core() *base
}

type densityCache struct {
	valid   bool
	n, w, h int
	grid    []float64
}

func (c *densityCache) matches(n, w, h int) bool {
	return c.valid && c.n == n && c.w == w && c.h == h
}

type base struct {
	name     string
	mapStr   string
	ranges   []dynamo.Range
	speeds   []float64
	coefs    []float64
	state    *dynamo.State
	scan     raster.Scan
	caching  bool
	cache    densityCache
	progress raster.ProgressFunc
}

func (b *base) core() *base { return b }

func (b *base) Name() string { return b.name }
func (b *base) MapStr() string { return b.mapStr }
func (b *base) Dim() int { return b.state.N }
func (b *base) Coefs() []float64 { return b.coefs }
func (b *base) State() *dynamo.State { return b.state }
func (b *base) Scan() raster.Scan { return b.scan }
func (b *base) Caching() bool { return b.caching }
func (b *base) Reset() { b.state.SetInit() }
func (b *base) SetProgress(fn raster.ProgressFunc) { b.progress = fn }

func (b *base) CoefRanges() []dynamo.Range {
	out := make([]dynamo.Range, len(b.ranges))
	copy(out, b.ranges)
	return out
}

func (b *base) Speeds() []float64 {
	out := make([]float64, len(b.speeds))
	copy(out, b.speeds)
	return out
}

func (b *base) SetCoef(i int, v float64) error {
	if i < 0 || i >= len(b.coefs) {
		return fmt.Errorf("%s: coefficient %d of %d: %w", b.name, i, len(b.coefs), dynamo.ErrDimensionMismatch)
	}
	if !b.ranges[i].Contains(v) {
		return &dynamo.BoundsError{Index: i, Value: v, Range: b.ranges[i]}
	}
	b.coefs[i] = v
	b.invalidate()
	return nil
}

// ChangeRandomCoefs redraws every coefficient uniformly from its range.
func (b *base) ChangeRandomCoefs(rng *rand.Rand) {
	coefs := make([]float64, len(b.ranges))
	for i, r := range b.ranges {
		coefs[i] = r.Sample(rng)
	}
	b.coefs = coefs
	b.invalidate()
}

func (b *base) SetInitValue(i int, v float64) error {
	if err := b.state.SetInitValue(i, v); err != nil {
		return err
	}
	b.invalidate()
	return nil
}

func (b *base) SetRandomInit(rng *rand.Rand) {
	b.state.SetRandomInit(rng)
	b.invalidate()
}

func (b *base) SetDt(v float64) error {
	if err := b.state.SetDt(v); err != nil {
		return err
	}
	b.invalidate()
	return nil
}

// ParamChanged(true) discards the cached density grid. A grid becomes
// valid only by rendering, so ParamChanged(false) leaves the cache as is.
func (b *base) ParamChanged(flag bool) {
	if flag {
		b.invalidate()
	}
}

func (b *base) invalidate() {
	b.cache = densityCache{}
}

// density leaves the trajectory rewound to its initial condition.
func (b *base) density(t raster.Trajectory, n, w, h int) []float64 {
	if b.caching && b.cache.matches(n, w, h) {
		return b.cache.grid
	}
	grid := raster.Rasterize(t, b.scan, n, w, h, b.progress).Normalize()
	t.Reset()
	if b.caching {
		b.cache = densityCache{valid: true, n: n, w: w, h: h, grid: grid}
	}
	return grid
}

func (b *base) render(t raster.Trajectory, n, w, h int, plt palette.Palette) *image.RGBA {
	if n <= 0 || w <= 0 || h <= 0 {
		panic(fmt.Sprintf("attractor: render needs positive sizes, got n=%d w=%d h=%d", n, w, h))
	}
	return raster.ToneMap(b.density(t, n, w, h), w, h, n, plt)
}

func (b *base) save(t raster.Trajectory, path string, n, w, h int, plt palette.Palette) error {
	if err := export.WritePNG(path, b.render(t, n, w, h, plt)); err != nil {
		return fmt.Errorf("save %s: %w", b.name, err)
	}
	return nil
}

func fill(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func repeat(r dynamo.Range, n int) []dynamo.Range {
	out := make([]dynamo.Range, n)
	for i := range out {
		out[i] = r
	}
	return out
}
