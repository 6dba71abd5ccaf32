package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/export"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
	"github.com/san-kum/attractor/internal/storage"
	"github.com/san-kum/attractor/internal/viz"
)

const (
	previewCols      = 64
	previewRows      = 24
	previewThreshold = 0.02
)

// buildConfig layers the job: defaults, then --config, then the positional
// attractor key, then --preset, then any flag set on the command line.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Attractor = args[0]
	}
	if preset != "" {
		p := config.GetPreset(cfg.Attractor, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (have %v)", preset, cfg.Attractor, config.ListPresets(cfg.Attractor))
		}
		cfg.ApplyPreset(p)
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed("iter") {
		cfg.Iterations = iterations
	}
	if changed("width") {
		cfg.Width = width
	}
	if changed("height") {
		cfg.Height = height
	}
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("coefs") {
		cfg.Coefs = coefs
	}
	if changed("init") {
		cfg.InitState = initState
	}
	if changed("dt") {
		cfg.Dt = dt
	}
	if changed("random-coefs") {
		cfg.RandomCoefs = randomCoefs
	}
	if changed("random-init") {
		cfg.RandomInit = randomInit
	}
	if changed("random-palette") {
		cfg.RandomPalette = randomPalette
	}
	if changed("out") {
		cfg.Output = outPath
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func renderAttractor(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	rng := cfg.Rand()
	a, err := cfg.NewAttractor(rng)
	if err != nil {
		return err
	}
	plt := cfg.ResolvePalette(rng)
	return renderAndWrite(a, cfg, plt)
}

// renderAndWrite is shared by render and params render.
func renderAndWrite(a attractor.Attractor, cfg *config.Config, plt palette.Palette) error {
	fmt.Println(styles.Title.Render(a.Name()))
	fmt.Println(styles.Subtle.Render(a.MapStr()))
	fmt.Println(styles.KV("coefs", formatFloats(a.Coefs()), 8))
	fmt.Println(styles.KV("seed", cfg.Seed, 8))

	img, elapsed, err := renderImage(a, cfg, plt)
	if err != nil {
		return err
	}

	out := cfg.OutputPath()
	if caption {
		export.Caption(img, a.Name()+"  "+formatFloats(a.Coefs()), color.White)
	}
	if err := writePNG(out, img); err != nil {
		return err
	}

	var thumb *image.RGBA
	if thumbSize > 0 {
		thumb = export.Thumbnail(img, thumbSize)
		if err := writePNG(thumbPath(out), thumb); err != nil {
			return err
		}
	}

	fmt.Printf("rendered %d iterations at %dx%d in %s\n", cfg.Iterations, cfg.Width, cfg.Height, viz.FormatElapsed(elapsed))
	fmt.Println(styles.Success.Render("wrote " + out))
	if thumb != nil {
		fmt.Println(styles.Success.Render("wrote " + thumbPath(out)))
	}

	if saveRun {
		st := storage.New(dataDir)
		run := storage.Run{
			Meta: storage.RunMetadata{
				Attractor:  cfg.Attractor,
				Seed:       cfg.Seed,
				Iterations: cfg.Iterations,
				Width:      cfg.Width,
				Height:     cfg.Height,
				Elapsed:    elapsed,
				Palette:    plt,
				Metrics: map[string]float64{
					"lit_fraction": litFraction(img),
				},
			},
			Attractor: a,
			Image:     img,
		}
		if thumb != nil {
			run.Thumb = thumb
		}
		runID, err := st.Save(run)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if preview {
		fmt.Println()
		fmt.Print(imagePreview(img))
	}
	return nil
}

// renderImage runs GenImage either in the progress view or inline.
func renderImage(a attractor.Attractor, cfg *config.Config, plt palette.Palette) (*image.RGBA, time.Duration, error) {
	var img *image.RGBA
	job := func(progress raster.ProgressFunc) error {
		a.SetProgress(progress)
		defer a.SetProgress(nil)
		img = a.GenImage(cfg.Iterations, cfg.Width, cfg.Height, plt)
		return nil
	}

	if showProgress {
		elapsed, err := viz.RunProgress("rendering "+a.Name(), job, viz.CurrentTheme, os.Stdout)
		if err != nil {
			return nil, elapsed, err
		}
		return img, elapsed, nil
	}

	start := time.Now()
	if err := job(nil); err != nil {
		return nil, 0, err
	}
	return img, time.Since(start), nil
}

func renderBatch(cmd *cobra.Command, args []string) error {
	cfgs := make([]*config.Config, len(args))
	for i, path := range args {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano() + int64(i)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfgs[i] = cfg
	}

	elapsed := make([]time.Duration, len(cfgs))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(batchLimit(jobs))
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := cfg.Rand()
			a, err := cfg.NewAttractor(rng)
			if err != nil {
				return fmt.Errorf("%s: %w", args[i], err)
			}
			start := time.Now()
			img := a.GenImage(cfg.Iterations, cfg.Width, cfg.Height, cfg.ResolvePalette(rng))
			elapsed[i] = time.Since(start)
			return writePNG(cfg.OutputPath(), img)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, cfg := range cfgs {
		fmt.Printf("%-24s %-16s %s  %s\n", args[i], cfg.Attractor, viz.FormatElapsed(elapsed[i]), cfg.OutputPath())
	}
	return nil
}

// batchLimit caps concurrent renders; zero or less means one per cpu.
func batchLimit(jobs int) int {
	if jobs <= 0 {
		return runtime.NumCPU()
	}
	return jobs
}

func paramsInit(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	a, err := cfg.NewAttractor(cfg.Rand())
	if err != nil {
		return err
	}

	out := outPath
	if out == "" {
		out = cfg.Attractor + ".json"
	}
	if err := storage.SaveParams(out, a); err != nil {
		return err
	}
	fmt.Println(styles.Success.Render("wrote " + out))
	return nil
}

func paramsShow(cmd *cobra.Command, args []string) error {
	a, err := storage.LoadParams(args[0])
	if err != nil {
		return err
	}
	printAttractor(a)
	return nil
}

func paramsRender(cmd *cobra.Command, args []string) error {
	a, err := storage.LoadParams(args[0])
	if err != nil {
		return err
	}
	key, _ := attractor.KeyFor(a.Name())

	cfg := config.DefaultConfig()
	cfg.Attractor = key
	cfg.Iterations = iterations
	cfg.Width = width
	cfg.Height = height
	cfg.Output = outPath
	cfg.Seed = time.Now().UnixNano()
	if err := cfg.Validate(); err != nil {
		return err
	}

	plt := palette.Default()
	if randomPalette {
		plt = palette.Random(cfg.Rand())
	}
	return renderAndWrite(a, cfg, plt)
}

func printAttractor(a attractor.Attractor) {
	s := a.State()
	fmt.Println(styles.Title.Render(a.Name()))
	fmt.Println(styles.Subtle.Render(a.MapStr()))
	fmt.Println(styles.KV("dim", a.Dim(), 8))
	fmt.Println(styles.KV("coefs", formatFloats(a.Coefs()), 8))
	fmt.Println(styles.KV("init", formatFloats(s.InitX), 8))
	fmt.Println(styles.KV("x range", fmt.Sprintf("[%g, %g]", s.XRange.Start, s.XRange.End), 8))
	if step, ok := s.DtValue(); ok {
		fmt.Println(styles.KV("dt", step, 8))
	}
	fmt.Println(styles.KV("caching", a.Caching(), 8))
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return export.WritePNG(path, img)
}

func thumbPath(out string) string {
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "_thumb" + ext
}

func formatFloats(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4g", x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// imageLevels reduces img to per-pixel brightness in [0, 1].
func imageLevels(img image.Image) ([]float64, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	levels := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			levels[y*w+x] = float64(max(r, g, bl)) / 0xffff
		}
	}
	return levels, w, h
}

func litFraction(img image.Image) float64 {
	levels, _, _ := imageLevels(img)
	if len(levels) == 0 {
		return 0
	}
	lit := 0
	for _, v := range levels {
		if v > 0 {
			lit++
		}
	}
	return float64(lit) / float64(len(levels))
}

func imagePreview(img image.Image) string {
	levels, w, h := imageLevels(img)
	return viz.DensityCanvas(levels, w, h, previewCols, previewRows, previewThreshold).String()
}
