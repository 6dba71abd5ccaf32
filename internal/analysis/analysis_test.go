package analysis

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/export"
	"github.com/san-kum/attractor/internal/raster"
)

func preset(t *testing.T, key, name string) attractor.Attractor {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ApplyPreset(config.GetPreset(key, name))
	a, err := cfg.NewAttractor(cfg.Rand())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func fixedPoint(t *testing.T) attractor.Attractor {
	t.Helper()
	a, _ := attractor.New("quadratic")
	for i := range a.Coefs() {
		a.Coefs()[i] = 0
	}
	a.Coefs()[5], a.Coefs()[11] = 0.5, 0.5
	a.ParamChanged(true)
	return a
}

func TestLyapunovChaoticClifford(t *testing.T) {
	a := preset(t, "clifford", "classic")
	ly, err := LyapunovExponent(a, 20_000, 1_000, 1e-8)
	if err != nil {
		t.Fatal(err)
	}
	if ly.Exponent <= 0 {
		t.Errorf("expected positive exponent, got %f", ly.Exponent)
	}
	if len(ly.Running) == 0 || ly.Running[len(ly.Running)-1] != ly.Exponent {
		t.Errorf("running estimate does not end at the exponent")
	}
}

func TestLyapunovLorenzPerUnitTime(t *testing.T) {
	a := preset(t, "lorenz", "classic")
	ly, err := LyapunovExponent(a, 100_000, 10_000, 1e-8)
	if err != nil {
		t.Fatal(err)
	}
	// about 0.9 for the classic parameters
	if ly.Exponent < 0.3 || ly.Exponent > 1.5 {
		t.Errorf("expected exponent near 0.9, got %f", ly.Exponent)
	}
}

func TestLyapunovFixedPoint(t *testing.T) {
	ly, err := LyapunovExponent(fixedPoint(t), 1_000, 10, 1e-8)
	if err != nil {
		t.Fatal(err)
	}
	if ly.Exponent >= 0 {
		t.Errorf("expected negative exponent, got %f", ly.Exponent)
	}
}

func TestLyapunovUnbounded(t *testing.T) {
	a, _ := attractor.New("quadratic")
	_, err := LyapunovExponent(a, 1_000, 10, 1e-8)
	if !errors.Is(err, ErrUnbounded) {
		t.Errorf("expected ErrUnbounded, got %v", err)
	}
	if a.State().X[0] != 0.5 {
		t.Error("attractor not rewound")
	}
}

func TestCoverageAndProfiles(t *testing.T) {
	h := raster.NewHistogram(4, 2)
	h.Counts = []uint64{
		1, 0, 0, 3,
		0, 0, 0, 1,
	}
	if got := Coverage(h); got != 3.0/8 {
		t.Errorf("expected coverage 3/8, got %f", got)
	}

	cols, rows := Profiles(h)
	wantCols := []float64{0.25, 0, 0, 1}
	for i := range wantCols {
		if cols[i] != wantCols[i] {
			t.Errorf("col %d: expected %f, got %f", i, wantCols[i], cols[i])
		}
	}
	if rows[0] != 1 || rows[1] != 0.25 {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestSearchFindsChaos(t *testing.T) {
	a, _ := attractor.New("clifford")
	opts := DefaultSearchOptions()
	opts.Iterations = 50_000
	opts.Size = 64

	c, err := Search(context.Background(), a, rand.New(rand.NewSource(1)), opts)
	if err != nil {
		t.Fatal(err)
	}
	if c.Exponent < opts.MinExponent || c.Coverage < opts.MinCoverage {
		t.Errorf("accepted candidate below thresholds: %+v", c)
	}
}

func TestSearchGivesUp(t *testing.T) {
	a, _ := attractor.New("trigonometric")
	opts := DefaultSearchOptions()
	opts.MaxTries = 3
	opts.Steps = 100
	opts.MinExponent = math.Inf(1)

	_, err := Search(context.Background(), a, rand.New(rand.NewSource(1)), opts)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a, _ := attractor.New("clifford")
	if _, err := Search(ctx, a, rand.New(rand.NewSource(1)), DefaultSearchOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBifurcation(t *testing.T) {
	a := fixedPoint(t)
	data, err := Bifurcation(a, 5, 5, 10, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 5 {
		t.Fatalf("expected 5 parameter values, got %d", len(data))
	}
	// x' = a5 once the other terms vanish
	for _, p := range data {
		if len(p.Values) != 1 || math.Abs(p.Values[0]-p.Param) > 1e-12 {
			t.Errorf("param %f: expected single value, got %v", p.Param, p.Values)
		}
	}
	if a.Coefs()[5] != 0.5 {
		t.Errorf("coefficient not restored: %f", a.Coefs()[5])
	}

	if _, err := Bifurcation(a, 12, 5, 10, 50); err == nil {
		t.Error("expected error for out of range coefficient")
	}
}

func TestBifurcationToASCII(t *testing.T) {
	if BifurcationToASCII(nil, 10, 5) != "" {
		t.Error("expected empty output")
	}
	out := BifurcationToASCII([]BifurcationPoint{
		{Param: 0, Values: []float64{0}},
		{Param: 1, Values: []float64{1, -1}},
	}, 10, 5)
	if strings.Count(out, "\n") != 5 {
		t.Errorf("expected 5 rows, got %q", out)
	}
	if strings.Count(out, "•") != 3 {
		t.Errorf("expected 3 dots, got %q", out)
	}
}

func TestPortraitASCII(t *testing.T) {
	out := PortraitASCII([]export.Point{{X: -1, Y: -1}, {X: 1, Y: 1}}, 20, 10)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if strings.Count(out, "•") != 2 {
		t.Errorf("expected 2 dots in\n%s", out)
	}
	if !strings.Contains(out, "│") || !strings.Contains(out, "─") {
		t.Errorf("expected axes in\n%s", out)
	}
}

func TestPoincareSection(t *testing.T) {
	a := preset(t, "lorenz", "classic")
	// z crossing 27 upward, record (x, y)
	points, err := PoincareSection(a, 2, 27, 0, 1, 200_000)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) < 10 {
		t.Errorf("expected recurring crossings, got %d", len(points))
	}
	if a.State().Time != 0 {
		t.Error("attractor not rewound")
	}

	if _, err := PoincareSection(a, 3, 0, 0, 1, 10); err == nil {
		t.Error("expected error for bad state index")
	}
}
