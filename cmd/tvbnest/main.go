package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sontheimer/TVB-NEST-v1/internal/analysis"
	"github.com/sontheimer/TVB-NEST-v1/internal/automation"
	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/experiment"
	"github.com/sontheimer/TVB-NEST-v1/internal/export"
	"github.com/sontheimer/TVB-NEST-v1/internal/optim"
	"github.com/sontheimer/TVB-NEST-v1/internal/store"
	"github.com/sontheimer/TVB-NEST-v1/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	regions     int
	topology    string
	proxyIDs    []int
	modelName   string
	integrator  string
	rateSource  string
	dt          float64
	synchronize float64
	duration    float64
	seed        int64
	couplingA   float64

	// sweep
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	transient  float64

	// spectrum / plot
	spectrumRegion int
	plotRegion     int

	// divergence
	perturbation float64

	// export
	svgPath  string
	jsonPath string

	// montecarlo
	trials int

	// optimize
	optimParam  string
	optimMin    float64
	optimMax    float64
	optimSteps  int
	optimMetric string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tvbnest",
		Short: "brain network simulator with proxy-region co-simulation",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tvbnest", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the trace",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&svgPath, "svg", "", "also write an SVG plot to this path")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "also write a JSON dump to this path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal charts",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the coupling strength and chart the settled states",
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.001, "lowest coupling strength")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.05, "highest coupling strength")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "number of strengths")
	sweepCmd.Flags().Float64Var(&transient, "transient", 50.0, "settle time to discard, ms")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeSpectrum,
	}
	spectrumCmd.Flags().IntVar(&spectrumRegion, "region", 0, "region to analyze")

	divergenceCmd := &cobra.Command{
		Use:   "divergence",
		Short: "estimate trajectory divergence under a perturbed start",
		RunE:  runDivergence,
	}
	addConfigFlags(divergenceCmd)
	divergenceCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-6, "initial state offset")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "chart a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotRegion, "region", -1, "single region to chart, -1 for mean field")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-12s %s, %d regions, %d proxies, %.0f ms\n",
					name, p.Model.Name, p.Network.Regions, len(p.Network.ProxyIDs), p.Duration)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted batch of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	montecarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "repeat a configuration across seeds and count stable runs",
		RunE:  runMonteCarlo,
	}
	addConfigFlags(montecarloCmd)
	montecarloCmd.Flags().IntVar(&trials, "trials", 10, "number of seeded trials")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid-search one parameter to minimize a metric",
		RunE:  runOptimize,
	}
	addConfigFlags(optimizeCmd)
	optimizeCmd.Flags().StringVar(&optimParam, "param", "coupling_a", "parameter to search")
	optimizeCmd.Flags().Float64Var(&optimMin, "min", 0.001, "lowest value")
	optimizeCmd.Flags().Float64Var(&optimMax, "max", 0.05, "highest value")
	optimizeCmd.Flags().IntVar(&optimSteps, "steps", 10, "grid points")
	optimizeCmd.Flags().StringVar(&optimMetric, "metric", "dispersion", "metric to minimize")

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, spectrumCmd, divergenceCmd,
		scenarioCmd, montecarloCmd, optimizeCmd, listCmd, plotCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in configuration name")
	cmd.Flags().IntVar(&regions, "regions", 8, "number of regions")
	cmd.Flags().StringVar(&topology, "topology", "ring", "network topology (ring, all_to_all)")
	cmd.Flags().IntSliceVar(&proxyIDs, "proxy", []int{0}, "proxy region ids")
	cmd.Flags().StringVar(&modelName, "model", "reduced_wong_wang", "node model")
	cmd.Flags().StringVar(&integrator, "integrator", "heun", "integration scheme")
	cmd.Flags().StringVar(&rateSource, "rates", "sinusoid", "proxy rate source")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "integration step, ms")
	cmd.Flags().Float64Var(&synchronize, "sync", config.DefaultSynchronize, "proxy exchange interval, ms")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated time, ms")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&couplingA, "coupling", config.DefaultCouplingA, "linear coupling strength")
}

// buildConfig layers preset, config file and changed CLI flags, in that
// order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("regions") {
		cfg.Network.Regions = regions
	}
	if cmd.Flags().Changed("topology") {
		cfg.Network.Topology = topology
	}
	if cmd.Flags().Changed("proxy") {
		cfg.Network.ProxyIDs = proxyIDs
	}
	if cmd.Flags().Changed("model") {
		cfg.Model.Name = modelName
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("rates") {
		cfg.RateSource.Name = rateSource
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("sync") {
		cfg.Synchronize = synchronize
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("coupling") {
		cfg.Coupling.A = couplingA
	}

	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	fmt.Printf("running %s, %d regions, %d proxies...\n",
		cfg.Model.Name, cfg.Network.Regions, len(cfg.Network.ProxyIDs))
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Times))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.ResultToSVG(result, 900, 400)), 0644); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgPath)
	}
	if jsonPath != "" {
		if err := export.ExportJSON(jsonPath, cfg, result); err != nil {
			return err
		}
		fmt.Printf("json: %s\n", jsonPath)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m, err := tui.NewModel(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tui.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping coupling %.4f..%.4f in %d steps...\n", sweepMin, sweepMax, sweepSteps)
	points, err := analysis.CouplingSweep(context.Background(), cfg, experiment.NewRegistry(),
		sweepMin, sweepMax, sweepSteps, transient)
	if err != nil {
		return err
	}

	fmt.Println(analysis.SweepToASCII(points, 70, 20))
	fmt.Printf("coupling %.4f%s%.4f\n", sweepMin, strings.Repeat(" ", 54), sweepMax)
	return nil
}

func analyzeSpectrum(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 || spectrumRegion >= len(states[0]) {
		return fmt.Errorf("no data for spectrumRegion %d", spectrumRegion)
	}

	trace := make([]float64, len(states))
	for i := range states {
		trace[i] = states[i][spectrumRegion]
	}

	ps := analysis.PowerSpectrum(trace)
	plotData := ps
	if len(plotData) > len(ps)/4 {
		plotData = ps[:len(ps)/4]
	}
	fmt.Printf("spectrum: %s, spectrumRegion %d\n\n", meta.ID, spectrumRegion)
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15), asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (spectrumRegion %d)", spectrumRegion))))

	freq, err := analysis.DominantFrequency(trace, meta.Dt)
	if err != nil {
		return err
	}
	fmt.Printf("\ndominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f ms\n", 1000.0/freq)
	}
	return nil
}

func runDivergence(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("running paired simulations, perturbation %.2e...\n", perturbation)
	rate, err := analysis.DivergenceRate(context.Background(), cfg, experiment.NewRegistry(), perturbation)
	if err != nil {
		return err
	}

	fmt.Printf("separation growth rate: %.6f /ms\n", rate)
	if rate > 0 {
		fmt.Println("nearby starts pull apart")
	} else {
		fmt.Println("nearby starts converge")
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	results, err := automation.RunScenario(context.Background(), scenario, experiment.NewRegistry(), st)
	for _, r := range results {
		fmt.Printf("  %s -> %s\n", r.Step, r.RunID)
		for name, val := range r.Metrics {
			fmt.Printf("    %s: %.6f\n", name, val)
		}
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("running %d trials from seed %d...\n", trials, cfg.Seed)
	results, err := automation.RunMonteCarlo(context.Background(),
		&automation.MonteCarloConfig{Base: cfg, NumTrials: trials}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("stable: %d/%d\n", stable, stable+unstable)
	for _, r := range results {
		if !r.Stable {
			fmt.Printf("  seed %d violated bounds (%.2f%% of samples)\n",
				r.Seed, 100*r.Metrics["bound_violations"])
		}
	}
	return nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if optimSteps < 2 {
		return fmt.Errorf("need at least 2 grid points, got %d", optimSteps)
	}

	values := make([]float64, optimSteps)
	stride := (optimMax - optimMin) / float64(optimSteps-1)
	for i := range values {
		values[i] = optimMin + float64(i)*stride
	}

	g := optim.NewGridSearch([]string{optimParam}, [][]float64{values})
	fmt.Printf("searching %s over %d points for lowest %s...\n", optimParam, optimSteps, optimMetric)
	params, best, err := g.Minimize(context.Background(), cfg, experiment.NewRegistry(), optimMetric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f (%s = %.6f)\n", optimParam, params[optimParam], optimMetric, best)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tREGIONS\tPROXIES\tDURATION\tDT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.0fms\t%sms\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Regions,
			len(run.ProxyIDs),
			run.Duration,
			strconv.FormatFloat(run.Dt, 'g', -1, 64),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nmodel: %s\nsamples: %d\n\n", meta.ID, meta.Model, len(states))

	if plotRegion >= 0 {
		if plotRegion >= len(states[0]) {
			return fmt.Errorf("plotRegion %d out of range [0, %d)", plotRegion, len(states[0]))
		}
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][plotRegion]
		}
		caption := fmt.Sprintf("plotRegion %d", plotRegion)
		for _, id := range meta.ProxyIDs {
			if id == plotRegion {
				caption += " (proxy)"
			}
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(caption)))
		return nil
	}

	data := make([]float64, len(states))
	for i := range states {
		sum := 0.0
		for _, v := range states[i] {
			sum += v
		}
		data[i] = sum / float64(len(states[i]))
	}
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("mean field")))
	return nil
}
