package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/attractor/internal/analysis"
	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/export"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/raster"
	"github.com/san-kum/attractor/internal/storage"
	"github.com/san-kum/attractor/internal/viz"
)

const (
	lyapunovSteps     = 20_000
	lyapunovTransient = 1_000
	lyapunovD0        = 1e-8
)

func listAttractors(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tDIM\tCOEFS\tKIND\tCACHE")
	for _, key := range attractor.Keys() {
		a, err := attractor.New(key)
		if err != nil {
			return err
		}
		kind := "map"
		if _, ok := a.State().DtValue(); ok {
			kind = "flow"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%v\n", key, a.Name(), a.Dim(), len(a.Coefs()), kind, a.Caching())
		if verbose {
			for _, line := range strings.Split(a.MapStr(), "\n") {
				fmt.Fprintf(w, "\t  %s\t\t\t\t\n", line)
			}
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	keys := attractor.Keys()
	if len(args) > 0 {
		keys = args[:1]
	}
	found := false
	for _, key := range keys {
		names := config.ListPresets(key)
		if len(names) == 0 {
			continue
		}
		found = true
		fmt.Printf("presets for %s:\n", key)
		for _, name := range names {
			p := config.GetPreset(key, name)
			fmt.Printf("  %-10s %s\n", name, formatFloats(p.Coefs))
		}
	}
	if !found && len(args) > 0 {
		fmt.Printf("no presets for attractor: %s\n", args[0])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tATTRACTOR\tTIME\tITER\tSIZE\tELAPSED\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%s\t%d\n",
			run.ID,
			run.Attractor,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Iterations,
			run.Width, run.Height,
			viz.FormatElapsed(run.Elapsed),
			run.Seed,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	a, err := st.LoadParams(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("render: %d iterations at %dx%d in %s\n\n", meta.Iterations, meta.Width, meta.Height, viz.FormatElapsed(meta.Elapsed))
	printAttractor(a)
	fmt.Printf("\npalette: %s\n", paletteStrip(meta.Palette, 24, 1))

	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range meta.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}

	if preview {
		f, err := os.Open(st.ImagePath(runID))
		if err != nil {
			return err
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			return fmt.Errorf("%s: %w", st.ImagePath(runID), err)
		}
		fmt.Println()
		fmt.Print(imagePreview(img))
	}
	return nil
}

// analysisAttractor builds the attractor for the analysis commands.
func analysisAttractor(cmd *cobra.Command, args []string) (*config.Config, attractor.Attractor, error) {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	a, err := cfg.NewAttractor(cfg.Rand())
	if err != nil {
		return nil, nil, err
	}
	return cfg, a, nil
}

func searchAttractor(cmd *cobra.Command, args []string) error {
	cfg, a, err := analysisAttractor(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := analysis.DefaultSearchOptions()
	opts.MaxTries = maxTries
	fmt.Printf("searching %s (seed %d, up to %d tries)...\n", a.Name(), cfg.Seed, opts.MaxTries)

	found, err := analysis.Search(ctx, a, cfg.Rand(), opts)
	if errors.Is(err, analysis.ErrNotFound) {
		fmt.Println(styles.Warning.Render(err.Error()))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(styles.Success.Render(fmt.Sprintf("found after %d tries", found.Try)))
	fmt.Println(styles.KV("coefs", formatFloats(a.Coefs()), 10))
	fmt.Println(styles.KV("lyapunov", fmt.Sprintf("%.5f", found.Exponent), 10))
	fmt.Println(styles.KV("coverage", fmt.Sprintf("%.1f%%", found.Coverage*100), 10))

	ly, err := analysis.LyapunovExponent(a, lyapunovSteps, lyapunovTransient, lyapunovD0)
	if err == nil {
		fmt.Println(styles.KV("converge", viz.Sparkline(ly.Running, 40), 10))
	}

	out := outPath
	if out == "" {
		out = cfg.Attractor + "_found.json"
	}
	if err := storage.SaveParams(out, a); err != nil {
		return err
	}
	fmt.Println(styles.Success.Render("wrote " + out))
	return nil
}

func profileAttractor(cmd *cobra.Command, args []string) error {
	cfg, a, err := analysisAttractor(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("density profile: %s\n", a.Name())
	fmt.Printf("iterations: %d, grid: %dx%d\n\n", cfg.Iterations, cfg.Width, cfg.Height)

	hist := raster.Rasterize(a, a.Scan(), cfg.Iterations, cfg.Width, cfg.Height, nil)
	a.Reset()

	b := hist.Bounds
	fmt.Printf("bounds: x [%.4f, %.4f]  y [%.4f, %.4f]\n", b.Left, b.Right, b.Top, b.Bottom)
	fmt.Printf("coverage: %.2f%%  peak: %d  dropped: %d\n\n", analysis.Coverage(hist)*100, hist.Max, hist.Dropped)

	cols, rows := analysis.Profiles(hist)
	for _, p := range []struct {
		data    []float64
		caption string
	}{
		{cols, "column density"},
		{rows, "row density"},
	} {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	ly, err := analysis.LyapunovExponent(a, lyapunovSteps, lyapunovTransient, lyapunovD0)
	if errors.Is(err, analysis.ErrUnbounded) {
		fmt.Println(styles.Warning.Render("trajectory unbounded, no lyapunov estimate"))
		return nil
	}
	if err != nil {
		return err
	}
	graph := asciigraph.Plot(ly.Running,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("largest lyapunov exponent"),
	)
	fmt.Println(graph)
	fmt.Printf("\nlyapunov exponent: %.6f\n", ly.Exponent)
	return nil
}

func traceAttractor(cmd *cobra.Command, args []string) error {
	cfg, a, err := analysisAttractor(cmd, args)
	if err != nil {
		return err
	}
	points := export.Trace(a, traceSteps, traceSkip)
	if len(points) == 0 {
		return fmt.Errorf("%s: no finite points in %d steps", a.Name(), traceSteps)
	}

	if asciiOnly {
		fmt.Printf("trace: %s, %d points\n\n", a.Name(), len(points))
		fmt.Print(viz.TraceCanvas(points, previewCols, previewRows).String())
		return nil
	}

	out := outPath
	if out == "" {
		out = cfg.Attractor + ".svg"
	}
	svg := export.TraceSVG(points, cfg.Width, cfg.Height, string(viz.CurrentTheme.Primary))
	if err := export.WriteSVG(out, svg); err != nil {
		return err
	}
	fmt.Println(styles.Success.Render(fmt.Sprintf("wrote %s (%d points)", out, len(points))))
	return nil
}

func bifurcationDiagram(cmd *cobra.Command, args []string) error {
	_, a, err := analysisAttractor(cmd, args)
	if err != nil {
		return err
	}
	data, err := analysis.Bifurcation(a, coefIndex, sweepSteps, 500, 200)
	if err != nil {
		return err
	}

	r := a.CoefRanges()[coefIndex]
	fmt.Printf("bifurcation: %s, a%d in [%g, %g]\n\n", a.Name(), coefIndex, r.Start, r.End)
	fmt.Print(analysis.BifurcationToASCII(data, 80, 24))
	return nil
}

func poincareSection(cmd *cobra.Command, args []string) error {
	_, a, err := analysisAttractor(cmd, args)
	if err != nil {
		return err
	}
	if _, ok := a.State().DtValue(); !ok {
		return fmt.Errorf("%s is a map, sections need a flow", a.Name())
	}

	points, err := analysis.PoincareSection(a, crossIndex, crossLevel, 0, 1, crossSteps)
	if err != nil {
		return err
	}
	fmt.Printf("poincare section: %s, x%d = %g upward, %d crossings\n\n", a.Name(), crossIndex, crossLevel, len(points))
	if len(points) == 0 {
		return nil
	}
	fmt.Print(analysis.PortraitASCII(points, 80, 24))
	return nil
}

func showPalette(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("random-palette") {
		cfg.RandomPalette = randomPalette
	}
	plt := cfg.ResolvePalette(cfg.Rand())

	for _, factor := range []float64{1, 10, 100} {
		fmt.Printf("exposure %-5g %s\n", factor, paletteStrip(plt, 32, factor))
	}
	fmt.Println()

	data, err := yaml.Marshal(struct {
		Palette palette.Palette `yaml:"palette"`
	}{plt})
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func paletteStrip(p palette.Palette, n int, factor float64) string {
	var sb strings.Builder
	for _, hex := range p.Ramp(n, factor) {
		sb.WriteString(viz.Swatch(hex, 1))
	}
	return sb.String()
}
