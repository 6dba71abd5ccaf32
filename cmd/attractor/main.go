package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/viz"
)

var (
	dataDir   string
	themeName string
	styles    viz.Styles

	iterations    int
	width         int
	height        int
	seed          int64
	configFile    string
	preset        string
	coefs         []float64
	initState     []float64
	dt            float64
	randomCoefs   bool
	randomInit    bool
	randomPalette bool
	outPath       string
	thumbSize     int
	saveRun       bool
	showProgress  bool
	caption       bool
	preview       bool
	verbose       bool

	jobs       int
	maxTries   int
	traceSteps int
	traceSkip  int
	asciiOnly  bool
	coefIndex  int
	sweepSteps int
	crossIndex int
	crossLevel float64
	crossSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "attractor",
		Short:         "chaotic attractor density renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viz.SetTheme(themeName)
			styles = viz.NewStyles(viz.CurrentTheme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".attractor", "run store directory")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "nebula", fmt.Sprintf("output theme %v", viz.ThemeNames()))

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list available attractors",
		RunE:  listAttractors,
	}
	listCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show map formulas")

	renderCmd := &cobra.Command{
		Use:   "render [attractor]",
		Short: "render an attractor to png",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderAttractor,
	}
	addJobFlags(renderCmd)
	addOutputFlags(renderCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [config.yaml...]",
		Short: "render several job files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE:  renderBatch,
	}
	batchCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "concurrent renders (0 = one per cpu)")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "save, inspect and render parameter files",
	}
	paramsInitCmd := &cobra.Command{
		Use:   "init [attractor]",
		Short: "write the parameters of an attractor to json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  paramsInit,
	}
	addJobFlags(paramsInitCmd)
	paramsInitCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <attractor>.json)")
	paramsShowCmd := &cobra.Command{
		Use:   "show [file]",
		Short: "print a parameter file",
		Args:  cobra.ExactArgs(1),
		RunE:  paramsShow,
	}
	paramsRenderCmd := &cobra.Command{
		Use:   "render [file]",
		Short: "render from a parameter file",
		Args:  cobra.ExactArgs(1),
		RunE:  paramsRender,
	}
	addSizeFlags(paramsRenderCmd)
	addOutputFlags(paramsRenderCmd)
	paramsRenderCmd.Flags().BoolVar(&randomPalette, "random-palette", false, "randomize the palette")
	paramsCmd.AddCommand(paramsInitCmd, paramsShowCmd, paramsRenderCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [attractor]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved renders",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved render",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&preview, "preview", false, "print a braille preview of the image")

	searchCmd := &cobra.Command{
		Use:   "search [attractor]",
		Short: "search random coefficients for a chaotic attractor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  searchAttractor,
	}
	addJobFlags(searchCmd)
	searchCmd.Flags().IntVar(&maxTries, "tries", 500, "maximum candidates")
	searchCmd.Flags().StringVarP(&outPath, "out", "o", "", "parameter file for the result (default <attractor>_found.json)")

	profileCmd := &cobra.Command{
		Use:   "profile [attractor]",
		Short: "plot density profiles and lyapunov convergence",
		Args:  cobra.MaximumNArgs(1),
		RunE:  profileAttractor,
	}
	addJobFlags(profileCmd)

	traceCmd := &cobra.Command{
		Use:   "trace [attractor]",
		Short: "export a trajectory trace as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  traceAttractor,
	}
	addJobFlags(traceCmd)
	traceCmd.Flags().IntVar(&traceSteps, "steps", 5000, "trajectory steps")
	traceCmd.Flags().IntVar(&traceSkip, "skip", 100, "transient steps left out")
	traceCmd.Flags().StringVarP(&outPath, "out", "o", "", "svg file (default <attractor>.svg)")
	traceCmd.Flags().BoolVar(&asciiOnly, "ascii", false, "print to the terminal instead")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation [attractor]",
		Short: "sweep one coefficient across its range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  bifurcationDiagram,
	}
	addJobFlags(bifurcationCmd)
	bifurcationCmd.Flags().IntVar(&coefIndex, "coef", 0, "coefficient index")
	bifurcationCmd.Flags().IntVar(&sweepSteps, "steps", 80, "parameter values")

	sectionCmd := &cobra.Command{
		Use:   "section [attractor]",
		Short: "poincare section of a continuous attractor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  poincareSection,
	}
	addJobFlags(sectionCmd)
	sectionCmd.Flags().IntVar(&crossIndex, "cross", 2, "state component defining the plane")
	sectionCmd.Flags().Float64Var(&crossLevel, "level", 27, "plane position")
	sectionCmd.Flags().IntVar(&crossSteps, "steps", 500_000, "integration steps")

	paletteCmd := &cobra.Command{
		Use:   "palette",
		Short: "print palette swatches",
		RunE:  showPalette,
	}
	paletteCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	paletteCmd.Flags().BoolVar(&randomPalette, "random-palette", false, "randomize the palette")
	paletteCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	rootCmd.AddCommand(listCmd, renderCmd, batchCmd, paramsCmd, presetsCmd, runsCmd, showCmd,
		searchCmd, profileCmd, traceCmd, bifurcationCmd, sectionCmd, paletteCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.NewStyles(viz.CurrentTheme).Error.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// addJobFlags registers the flags that select and configure an attractor.
func addJobFlags(cmd *cobra.Command) {
	addSizeFlags(cmd)
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset coefficients")
	cmd.Flags().Float64SliceVar(&coefs, "coefs", nil, "coefficients a0,a1,...")
	cmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state x0,x1,...")
	cmd.Flags().Float64Var(&dt, "dt", 0, "time step of continuous attractors")
	cmd.Flags().BoolVar(&randomCoefs, "random-coefs", false, "randomize coefficients")
	cmd.Flags().BoolVar(&randomInit, "random-init", false, "randomize the initial state")
	cmd.Flags().BoolVar(&randomPalette, "random-palette", false, "randomize the palette")
}

func addSizeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&iterations, "iter", "n", config.DefaultIterations, "iterations")
	cmd.Flags().IntVar(&width, "width", config.DefaultSize, "image width")
	cmd.Flags().IntVar(&height, "height", config.DefaultSize, "image height")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output png (default <attractor>.png)")
	cmd.Flags().IntVar(&thumbSize, "thumb", 0, "also write a thumbnail with this longest side")
	cmd.Flags().BoolVar(&saveRun, "save-run", false, "keep the render in the run store")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "show a progress view")
	cmd.Flags().BoolVar(&caption, "caption", false, "stamp the attractor name onto the image")
	cmd.Flags().BoolVar(&preview, "preview", false, "print a braille preview")
}
