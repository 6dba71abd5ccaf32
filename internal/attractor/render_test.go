package attractor

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/attractor/internal/palette"
)

func TestTrigonometricRender(t *testing.T) {
	plt := palette.Default()
	a := NewTrigonometric()
	img := a.GenImage(100_000, 256, 256, plt)

	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] != 255 {
			t.Fatalf("pixel %d not opaque", i/4)
		}
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("expected a non-black image")
	}

	again := NewTrigonometric().GenImage(100_000, 256, 256, plt)
	if !bytes.Equal(img.Pix, again.Pix) {
		t.Error("renders of identical attractors differ")
	}
}

func TestQuadraticFixedPointRender(t *testing.T) {
	a := NewQuadratic()
	for i := range a.coefs {
		a.coefs[i] = 0
	}
	a.coefs[5], a.coefs[11] = 0.5, 0.5
	a.ParamChanged(true)

	img := a.GenImage(10_000, 64, 64, palette.Default())
	center := img.PixOffset(32, 32)
	if img.Pix[center] == 0 && img.Pix[center+1] == 0 && img.Pix[center+2] == 0 {
		t.Error("expected the fixed point to light the center pixel")
	}
	corner := img.PixOffset(0, 0)
	if img.Pix[corner] != 0 || img.Pix[corner+1] != 0 || img.Pix[corner+2] != 0 {
		t.Error("expected corners to stay black")
	}
}

func countingRender(a Attractor, n, w, h int) int {
	calls := 0
	a.SetProgress(func(done, total int) { calls++ })
	a.GenImage(n, w, h, palette.Default())
	return calls
}

func TestCachingVariantReusesGrid(t *testing.T) {
	a := NewSymmetric()

	if countingRender(a, 5000, 32, 32) == 0 {
		t.Fatal("first render did not accumulate")
	}
	if n := countingRender(a, 5000, 32, 32); n != 0 {
		t.Errorf("expected cached render, got %d progress calls", n)
	}
	if countingRender(a, 5000, 48, 32) == 0 {
		t.Error("resized render reused a stale grid")
	}
	if countingRender(a, 6000, 48, 32) == 0 {
		t.Error("render with new iteration count reused a stale grid")
	}

	if err := a.SetCoef(1, 1.5); err != nil {
		t.Fatal(err)
	}
	if countingRender(a, 6000, 48, 32) == 0 {
		t.Error("SetCoef did not invalidate the grid")
	}

	a.ParamChanged(false)
	if n := countingRender(a, 6000, 48, 32); n != 0 {
		t.Errorf("ParamChanged(false) discarded a valid grid (%d calls)", n)
	}
	a.ParamChanged(true)
	if countingRender(a, 6000, 48, 32) == 0 {
		t.Error("ParamChanged(true) did not invalidate the grid")
	}
}

func TestNonCachingVariantRecomputes(t *testing.T) {
	a := NewClifford()
	countingRender(a, 5000, 32, 32)
	if countingRender(a, 5000, 32, 32) == 0 {
		t.Error("expected a fresh accumulation")
	}
}

func TestPaletteChangeReusesGrid(t *testing.T) {
	a := NewPolar()
	first := a.GenImage(20_000, 64, 64, palette.Default())

	calls := 0
	a.SetProgress(func(int, int) { calls++ })
	plt := palette.Default()
	plt.Brightness2 = 5
	second := a.GenImage(20_000, 64, 64, plt)

	if calls != 0 {
		t.Errorf("palette change re-ran accumulation (%d calls)", calls)
	}
	if bytes.Equal(first.Pix, second.Pix) {
		t.Error("palette change had no visible effect")
	}
}

func TestSaveImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clifford.png")
	if err := NewClifford().SaveImage(path, 20_000, 40, 30, palette.Default()); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestSaveImageBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "x.png")
	if err := NewClifford().SaveImage(path, 1000, 8, 8, palette.Default()); err == nil {
		t.Error("expected an error for an unwritable path")
	}
}

func TestRenderRejectsEmptyCanvas(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a zero-width render")
		}
	}()
	NewTrigonometric().GenImage(1000, 0, 10, palette.Default())
}

func TestRenderRewindsTrajectory(t *testing.T) {
	for _, a := range []Attractor{NewQuadratic(), NewTrigonometric()} {
		init := a.State().InitX.Clone()
		a.GenImage(10_000, 32, 32, palette.Default())

		s := a.State()
		if !s.X.IsValid() || s.Time != 0 {
			t.Errorf("%s: state after render x=%v time=%g", a.Name(), s.X, s.Time)
		}
		for i := range init {
			if s.X[i] != init[i] {
				t.Errorf("%s: x%d = %g after render, want %g", a.Name(), i, s.X[i], init[i])
			}
		}
	}
}
