package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/LucasVChaves/cloth-sim/internal/config"
	"github.com/LucasVChaves/cloth-sim/internal/export"
	"github.com/LucasVChaves/cloth-sim/internal/metrics"
	"github.com/LucasVChaves/cloth-sim/internal/sim"
	"github.com/LucasVChaves/cloth-sim/internal/storage"
	"github.com/LucasVChaves/cloth-sim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	frames     int
	dt         float64
	outFile    string

	gridWidth  int
	gridHeight int
	spacing    float64
	gravityY   float64
	stiffness  float64
	tear       float64
	iterations int
	cutRadius  float64

	theme string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "interactive 2D cloth simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			if theme != "" {
				if !validTheme(theme) {
					return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
				}
				viz.SetTheme(theme)
			}
			return viz.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")
	rootCmd.Flags().StringVar(&theme, "theme", "", "mesh color theme")
	addConfigFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record metrics",
		RunE:  runHeadless,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/60.0, "frame time in seconds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "simulate and write the final cloth state as SVG",
		RunE:  exportSVG,
	}
	addConfigFlags(exportSVGCmd)
	exportSVGCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	exportSVGCmd.Flags().Float64Var(&dt, "dt", 1.0/60.0, "frame time in seconds")
	exportSVGCmd.Flags().StringVar(&outFile, "out", "cloth.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark grid sizes",
		RunE:  benchGrids,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
	cmd.Flags().IntVar(&gridWidth, "width", config.DefaultWidth, "grid width (particles)")
	cmd.Flags().IntVar(&gridHeight, "height", config.DefaultHeight, "grid height (particles)")
	cmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "particle spacing")
	cmd.Flags().Float64Var(&gravityY, "gravity", config.DefaultGravityY, "downward gravity")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "constraint stiffness (0,1]")
	cmd.Flags().Float64Var(&tear, "tear", config.DefaultTearThreshold, "tear threshold (>1)")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "solver iterations per frame")
	cmd.Flags().Float64Var(&cutRadius, "cut-radius", config.DefaultCutRadius, "cut disc radius (>0)")
}

func validTheme(name string) bool {
	for _, n := range viz.ThemeNames() {
		if n == name {
			return true
		}
	}
	return false
}

// buildConfig layers preset, config file, and changed CLI flags, then
// validates the result before anything touches the physics core.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("width") {
		cfg.Width = gridWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = gridHeight
	}
	if cmd.Flags().Changed("spacing") {
		cfg.Spacing = spacing
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Gravity.Y = gravityY
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Stiffness = stiffness
	}
	if cmd.Flags().Changed("tear") {
		cfg.TearThreshold = tear
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = iterations
	}
	if cmd.Flags().Changed("cut-radius") {
		cfg.CutRadius = cutRadius
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("simulating %dx%d cloth for %d frames...\n", cfg.Width, cfg.Height, frames)
	start := time.Now()

	result, err := sim.Run(context.Background(), cfg, frames, dt, metrics.Defaults())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, dt, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Final))
	for name := range result.Final {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Final[name])
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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tFRAMES\tDT\tSPRINGS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%.4fs\t%.0f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Width,
			run.Config.Height,
			run.Frames,
			run.Dt,
			run.Metrics["springs"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n\n", meta.Config.Width, meta.Config.Height)

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		data := series[name]
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}

	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(series[name][i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	out := struct {
		*storage.RunMetadata
		Times  []float64            `json:"times"`
		Series map[string][]float64 `json:"series"`
	}{meta, times, series}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if frames <= 0 || dt <= 0 {
		return fmt.Errorf("frames and dt must be positive")
	}

	s := sim.New(cfg)
	for i := 0; i < frames; i++ {
		s.Update(cfg, sim.PointerState{}, dt)
	}

	svg := export.SnapshotToSVG(s.Snapshot(), 1200, 800)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func benchGrids(cmd *cobra.Command, args []string) error {
	grids := []struct{ w, h int }{
		{16, 10},
		{32, 20},
		{40, 25},
		{64, 40},
	}
	const benchFrames = 300

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tPARTICLES\tFRAMES\tTIME\tFRAMES/SEC")

	for _, g := range grids {
		cfg := config.DefaultConfig()
		cfg.Width = g.w
		cfg.Height = g.h

		start := time.Now()
		if _, err := sim.Run(context.Background(), cfg, benchFrames, 1.0/60.0, nil); err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n",
			g.w, g.h, g.w*g.h, benchFrames, elapsed,
			float64(benchFrames)/elapsed.Seconds())
	}

	return w.Flush()
}
