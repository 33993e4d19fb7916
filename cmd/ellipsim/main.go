package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ellipsim/ellipsim/internal/christoffel"
	"github.com/ellipsim/ellipsim/internal/config"
	"github.com/ellipsim/ellipsim/internal/experiment"
	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/sim"
	"github.com/ellipsim/ellipsim/internal/storage"
	"github.com/ellipsim/ellipsim/internal/transport"
	"github.com/ellipsim/ellipsim/internal/viz"
)

var (
	dataDir    string
	semiA      float64
	semiB      float64
	dt         float64
	duration   float64
	theta      float64
	omega      float64
	seed       int64
	integrator string
	particles  int
	mass       float64
	damping    float64
	coupling   float64
	gain       float64
	pairRange  float64
	cutoff     float64
	noise      float64
	configFile string
	preset     string
	// gamma command
	samples int
	chart   string
	// packing command
	numDisks   int
	diskRadius float64
	fraction   float64
	// transport command
	fromAngle float64
	toAngle   float64
	vInit     float64
	// export-svg
	svgOut    string
	svgWidth  int
	svgHeight int
	// ensemble
	numRuns int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ellipsim",
		Short: "particle dynamics on elliptic curves",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ellipsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addShapeFlags(runCmd)
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addShapeFlags(liveCmd)
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
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
		RunE:  exportJSONRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render run trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	perimeterCmd := &cobra.Command{
		Use:   "perimeter",
		Short: "compare perimeter estimates",
		RunE:  perimeterReport,
	}
	addShapeFlags(perimeterCmd)

	packingCmd := &cobra.Command{
		Use:   "packing",
		Short: "disk packing along the curve",
		RunE:  packingReport,
	}
	addShapeFlags(packingCmd)
	packingCmd.Flags().IntVar(&numDisks, "n", 10, "number of disks")
	packingCmd.Flags().Float64Var(&diskRadius, "radius", 0.1, "disk radius")
	packingCmd.Flags().Float64Var(&fraction, "fraction", 0, "target packing fraction (solves for radius)")

	gammaCmd := &cobra.Command{
		Use:   "gamma",
		Short: "cross-check connection coefficient methods",
		RunE:  gammaReport,
	}
	addShapeFlags(gammaCmd)
	gammaCmd.Flags().IntVar(&samples, "samples", 16, "number of sample angles")
	gammaCmd.Flags().StringVar(&chart, "chart", "eccentric", "chart: eccentric or polar")

	transportCmd := &cobra.Command{
		Use:   "transport",
		Short: "parallel-transport a tangent vector",
		RunE:  transportReport,
	}
	addShapeFlags(transportCmd)
	transportCmd.Flags().Float64Var(&fromAngle, "from", 0, "start angle")
	transportCmd.Flags().Float64Var(&toAngle, "to", math.Pi/2, "end angle")
	transportCmd.Flags().Float64Var(&vInit, "v", 1.0, "initial tangent component")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [model]",
		Short: "run many seeded replicas in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	addShapeFlags(ensembleCmd)
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of replicas")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addShapeFlags(compareCmd)
	compareCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	compareCmd.Flags().Float64Var(&theta, "theta", 0.5, "initial angle")
	compareCmd.Flags().Float64Var(&omega, "omega", 1.0, "initial angular velocity")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd,
		perimeterCmd, packingCmd, gammaCmd, transportCmd,
		presetsCmd, ensembleCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addShapeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&semiA, "a", config.DefaultA, "semi-major axis")
	cmd.Flags().Float64Var(&semiB, "b", config.DefaultB, "semi-minor axis")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	cmd.Flags().Float64Var(&theta, "theta", 0.5, "initial angle")
	cmd.Flags().Float64Var(&omega, "omega", 1.0, "initial angular velocity")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().IntVar(&particles, "particles", 1, "number of particles (collective models)")
	cmd.Flags().Float64Var(&mass, "mass", 1.0, "particle mass")
	cmd.Flags().Float64Var(&damping, "damping", 0.0, "damping coefficient")
	cmd.Flags().Float64Var(&coupling, "coupling", 1.0, "coupling strength (collective models)")
	cmd.Flags().Float64Var(&gain, "gain", 1.0, "forcing gain (curvature)")
	cmd.Flags().Float64Var(&pairRange, "range", 0, "interaction range, 0 = unlimited (attractive)")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 1.0, "separation clamp (repulsive)")
	cmd.Flags().Float64Var(&noise, "noise", 0, "velocity noise amplitude (vicsek)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves preset, config file, and CLI flags, in increasing
// precedence, into one run configuration.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Model = model
	}

	flagFloat := func(name string, dst *float64, val float64) {
		if cmd.Flags().Changed(name) {
			*dst = val
		}
	}
	flagFloat("a", &cfg.A, semiA)
	flagFloat("b", &cfg.B, semiB)
	flagFloat("dt", &cfg.Dt, dt)
	flagFloat("time", &cfg.Duration, duration)
	flagFloat("theta", &cfg.InitState.Theta, theta)
	flagFloat("omega", &cfg.InitState.Omega, omega)
	flagFloat("mass", &cfg.Mass, mass)
	flagFloat("damping", &cfg.Damping, damping)
	flagFloat("coupling", &cfg.Coupling, coupling)
	flagFloat("gain", &cfg.Gain, gain)
	flagFloat("range", &cfg.Range, pairRange)
	flagFloat("cutoff", &cfg.Cutoff, cutoff)
	flagFloat("noise", &cfg.Noise, noise)
	if cmd.Flags().Changed("integrator") || cfg.Integrator == "" {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("particles") {
		cfg.Particles = particles
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := buildConfig(cmd, model)
	if err != nil {
		return err
	}

	shape, err := geom.New(cfg.A, cfg.B)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	dyn, err := registry.GetModel(model, shape, cfg)
	if err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	expCfg := experiment.Config{
		Model:      model,
		Integrator: cfg.Integrator,
		InitState:  cfg.GetInitState(),
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Seed:       cfg.Seed,
	}

	exp := experiment.New(expCfg)
	ms := registry.DefaultMetrics(model, shape, cfg.Mass, dyn)
	if err := exp.Setup(dyn, integ, ms); err != nil {
		return err
	}

	fmt.Printf("running %s on ellipse a=%.3f b=%.3f (e=%.4f)...\n",
		model, shape.A, shape.B, shape.Eccentricity())
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Model:        model,
		Particles:    cfg.NumParticles(),
		A:            shape.A,
		B:            shape.B,
		Eccentricity: shape.Eccentricity(),
		Seed:         cfg.Seed,
		Dt:           cfg.Dt,
		Duration:     cfg.Duration,
		Elapsed:      elapsed.Seconds(),
		Integrator:   cfg.Integrator,
	}
	runID, err := st.Save(meta, shape, cfg.Mass, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.States))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := buildConfig(cmd, model)
	if err != nil {
		return err
	}

	shape, err := geom.New(cfg.A, cfg.B)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	dyn, err := registry.GetModel(model, shape, cfg)
	if err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	m := viz.NewModel(dyn, integ, shape, model, cfg.GetInitState(), cfg.Dt)
	return viz.Run(m)
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tA\tB\tECC\tN\tDURATION\tDT\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.3f\t%d\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.A,
			run.B,
			run.Eccentricity,
			run.Particles,
			run.Duration,
			run.Dt,
			run.Integrator,
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

	header, states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s (a=%.2f b=%.2f)\n", meta.Model, meta.A, meta.B)
	fmt.Printf("samples: %d\n\n", len(states))

	maxPlots := 6
	plotted := 0
	for col := 0; col < len(header) && plotted < maxPlots; col++ {
		name := header[col]
		// Angle, angular velocity, and energy columns carry the physics;
		// skip the derived Cartesian columns.
		switch {
		case strings.HasPrefix(name, "theta_dot_"), strings.HasPrefix(name, "theta_"), strings.HasPrefix(name, "energy_"):
		default:
			continue
		}

		data := make([]float64, len(states))
		for i := range states {
			if col < len(states[i]) {
				data[i] = states[i][col]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
		plotted++
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	header, states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, header...)); err != nil {
		return err
	}
	for i, row := range states {
		record := make([]string, 0, len(row)+1)
		record = append(record, fmt.Sprintf("%g", times[i]))
		for _, v := range row {
			record = append(record, fmt.Sprintf("%g", v))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	header, states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, header, states, times)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	header, states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to render")
	}

	shape, err := geom.New(meta.A, meta.B)
	if err != nil {
		return err
	}

	// theta_i columns come first within each particle's 8-column block.
	cols := make([]int, 0, meta.Particles)
	for col, name := range header {
		if strings.HasPrefix(name, "theta_") && !strings.HasPrefix(name, "theta_dot_") {
			cols = append(cols, col)
		}
	}

	angles := make([][]float64, len(cols))
	for p, col := range cols {
		traj := make([]float64, 0, len(states))
		for _, row := range states {
			if col < len(row) {
				traj = append(traj, row[col])
			}
		}
		angles[p] = traj
	}

	svg := viz.OrbitSVG(shape, angles, svgWidth, svgHeight)
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func perimeterReport(cmd *cobra.Command, args []string) error {
	shape, err := geom.New(semiA, semiB)
	if err != nil {
		return err
	}

	ramanujan, err := shape.Perimeter(geom.Ramanujan)
	if err != nil {
		return err
	}
	integral, err := shape.Perimeter(geom.Integral)
	if err != nil {
		return err
	}

	fmt.Printf("ellipse a=%.6f b=%.6f\n", shape.A, shape.B)
	fmt.Printf("eccentricity: %.6f\n\n", shape.Eccentricity())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPERIMETER")
	fmt.Fprintf(w, "ramanujan\t%.9f\n", ramanujan)
	fmt.Fprintf(w, "integral\t%.9f\n", integral)
	fmt.Fprintf(w, "difference\t%.3e\n", math.Abs(ramanujan-integral))
	return w.Flush()
}

func packingReport(cmd *cobra.Command, args []string) error {
	shape, err := geom.New(semiA, semiB)
	if err != nil {
		return err
	}

	perim, err := shape.Perimeter(geom.Ramanujan)
	if err != nil {
		return err
	}
	fmt.Printf("ellipse a=%.4f b=%.4f  perimeter=%.6f\n\n", shape.A, shape.B, perim)

	if fraction > 0 {
		r, err := shape.RadiusForPacking(numDisks, fraction)
		if err != nil {
			return err
		}
		fmt.Printf("radius for %d disks at packing %.4f: %.6f\n", numDisks, fraction, r)
		return nil
	}

	phi, err := shape.PackingFraction(numDisks, diskRadius)
	if err != nil {
		return err
	}
	maxN, err := shape.MaxParticles(diskRadius, 1.0)
	if err != nil {
		return err
	}
	fmt.Printf("packing fraction for %d disks of radius %.4f: %.6f\n", numDisks, diskRadius, phi)
	fmt.Printf("max disks of this radius: %d\n", maxN)
	return nil
}

func gammaReport(cmd *cobra.Command, args []string) error {
	shape, err := geom.New(semiA, semiB)
	if err != nil {
		return err
	}

	if chart != "eccentric" && chart != "polar" {
		return fmt.Errorf("unknown chart: %s (want eccentric or polar)", chart)
	}
	if samples < 1 {
		return fmt.Errorf("samples must be positive, got %d", samples)
	}

	fmt.Printf("connection coefficient on a=%.3f b=%.3f, %s chart\n\n", shape.A, shape.B, chart)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tANALYTIC\tFINITE-DIFF\tAUTODIFF\tSPREAD")

	worst := 0.0
	for i := 0; i < samples; i++ {
		angle := 2 * math.Pi * float64(i) / float64(samples)

		var c christoffel.Comparison
		if chart == "polar" {
			c = christoffel.ComparePolar(shape, angle)
		} else {
			c = christoffel.Compare(shape, angle)
		}
		if c.MaxSpread() > worst {
			worst = c.MaxSpread()
		}

		fmt.Fprintf(w, "%.4f\t%+.8f\t%+.8f\t%+.8f\t%.2e\n",
			angle, c.Analytic, c.FiniteDiff, c.AutoDiff, c.MaxSpread())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmax spread across methods: %.3e\n", worst)
	return nil
}

func transportReport(cmd *cobra.Command, args []string) error {
	shape, err := geom.New(semiA, semiB)
	if err != nil {
		return err
	}

	v := transport.Transport(shape, vInit, fromAngle, toAngle)

	normBefore := math.Abs(vInit) * math.Sqrt(shape.Metric(fromAngle))
	normAfter := math.Abs(v) * math.Sqrt(shape.Metric(toAngle))

	fmt.Printf("transport on a=%.3f b=%.3f\n", shape.A, shape.B)
	fmt.Printf("v(%.4f) = %.9f  ->  v(%.4f) = %.9f\n", fromAngle, vInit, toAngle, v)
	fmt.Printf("metric norm: %.9f -> %.9f (drift %.3e)\n",
		normBefore, normAfter, math.Abs(normAfter-normBefore))

	drift := transport.Holonomy(shape, fromAngle, fromAngle+2*math.Pi)
	fmt.Printf("holonomy defect around full loop: %.3e\n", drift)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := buildConfig(cmd, model)
	if err != nil {
		return err
	}

	shape, err := geom.New(cfg.A, cfg.B)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	dyn, err := registry.GetModel(model, shape, cfg)
	if err != nil {
		return err
	}
	// Resolve the name once so a typo fails before any goroutine starts.
	if _, err := registry.GetIntegrator(cfg.Integrator); err != nil {
		return err
	}
	factory := func() sim.Integrator {
		integ, _ := registry.GetIntegrator(cfg.Integrator)
		return integ
	}

	simCfg := sim.DefaultConfig()
	simCfg.Dt = cfg.Dt
	simCfg.Duration = cfg.Duration

	ens := sim.NewEnsemble(dyn, factory, numRuns, cfg.Seed)

	fmt.Printf("running %d replicas of %s...\n", numRuns, model)
	start := time.Now()

	results, err := ens.Run(context.Background(), cfg.GetInitState(), simCfg)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTEPS\tENERGY DRIFT")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.3e\n", i, r.StepsTaken, r.EnergyDrift)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	model := args[0]
	names := args[1:]

	cfg, err := buildConfig(cmd, model)
	if err != nil {
		return err
	}

	shape, err := geom.New(cfg.A, cfg.B)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tTIME\tENERGY DRIFT")

	for _, name := range names {
		dyn, err := registry.GetModel(model, shape, cfg)
		if err != nil {
			return err
		}
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			return err
		}

		exp := experiment.New(experiment.Config{
			Model:      model,
			Integrator: name,
			InitState:  cfg.GetInitState(),
			Dt:         cfg.Dt,
			Duration:   cfg.Duration,
			Seed:       cfg.Seed,
		})
		ms := registry.DefaultMetrics(model, shape, cfg.Mass, dyn)
		if err := exp.Setup(dyn, integ, ms); err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%d\t%v\t%.3e\n",
			name, len(result.States), elapsed.Round(time.Microsecond),
			result.Metrics["energy_drift"])
	}

	return w.Flush()
}
