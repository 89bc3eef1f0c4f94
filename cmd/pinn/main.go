package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lvb5/solve-PDEs-with-PINN/internal/config"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/efe"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/export"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/nn"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/ode"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/optim"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/orbit"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/storage"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/train"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/units"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	iterations int
	lr         float64
	hidden     int
	seed       int64
	outDir     string
	live       bool
	integrator string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pinn",
		Short: "physics-informed solver for the Schwarzschild vacuum metric",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pinn", "data directory")

	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "train the metric networks",
		RunE:  runTrain,
	}
	trainCmd.Flags().IntVar(&iterations, "iters", config.DefaultIterations, "training iterations")
	trainCmd.Flags().Float64Var(&lr, "lr", config.DefaultLearningRate, "learning rate")
	trainCmd.Flags().IntVar(&hidden, "hidden", config.DefaultHidden, "hidden layer width")
	trainCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	trainCmd.Flags().StringVar(&outDir, "out", config.DefaultOutDir, "plot output directory")
	trainCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	trainCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	trainCmd.Flags().BoolVar(&live, "live", false, "live training view")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "integrate the reference orbit and report energy drift",
		RunE:  runOrbit,
	}
	orbitCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	orbitCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	orbitCmd.Flags().StringVar(&integrator, "integrator", "",
		fmt.Sprintf("reference integrator (%v)", ode.IntegratorNames()))

	evalCmd := &cobra.Command{
		Use:   "eval [run_id]",
		Short: "re-evaluate a stored run against the closed-form solution",
		Args:  cobra.ExactArgs(1),
		RunE:  evalRun,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search over learning rate and orbit weight",
		RunE:  runTune,
	}
	tuneCmd.Flags().IntVar(&iterations, "iters", 50, "iterations per trial")
	tuneCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the evaluation grid of a run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tITERS\tCOLLOCATION")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\n", name, cfg.Iterations, cfg.Collocation)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(trainCmd, orbitCmd, evalCmd, tuneCmd, listCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig builds the effective configuration: defaults, then preset,
// then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("iters") {
		cfg.Iterations = iterations
	}
	if cmd.Flags().Changed("lr") {
		cfg.LearningRate = lr
	}
	if cmd.Flags().Changed("hidden") {
		cfg.Hidden = hidden
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("out") {
		cfg.OutDir = outDir
	}

	return cfg, cfg.Validate()
}

// referenceOrbit integrates the Newtonian system over the configured span.
func referenceOrbit(ctx context.Context, cfg *config.Config) (*ode.Trajectory, ode.State, error) {
	integ, err := ode.NewIntegrator(cfg.Orbit.Integrator)
	if err != nil {
		return nil, nil, err
	}

	x0 := ode.State{cfg.Orbit.X0, cfg.Orbit.Y0, cfg.Orbit.VX0, cfg.Orbit.VY0}
	solver := ode.NewSolver(orbit.NewNewtonian(units.GM), integ)
	tr, err := solver.Run(ctx, x0.Clone(), ode.Config{
		Dt:            cfg.Orbit.Dt,
		Duration:      cfg.Orbit.Duration,
		Tolerance:     cfg.Orbit.Tolerance,
		ValidateState: true,
	})
	if err != nil {
		return nil, nil, err
	}
	return tr, x0, nil
}

func buildProblem(ctx context.Context, cfg *config.Config, rng *rand.Rand) (*train.Problem, error) {
	dom := efe.Domain{RMin: cfg.Domain.RMin, RMax: cfg.Domain.RMax}

	ref, x0, err := referenceOrbit(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("reference orbit: %w", err)
	}

	return &train.Problem{
		Domain: dom,
		Colloc: dom.Sample(cfg.Collocation, rng),
		C:      units.C,
		Ref:    ref,
		X0:     x0,
		OrbitCfg: ode.Config{
			Dt:            cfg.Orbit.Dt,
			Duration:      cfg.Orbit.Duration,
			Tolerance:     cfg.Orbit.Tolerance,
			Adaptive:      true,
			ValidateState: true,
		},
		Weights: train.Weights{
			Residual: cfg.Weights.Residual,
			Boundary: cfg.Weights.Boundary,
			Orbit:    cfg.Weights.Orbit,
		},
	}, nil
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rng := rand.New(rand.NewSource(cfg.Seed))
	netA := nn.New([]int{1, cfg.Hidden, 1}, rng)
	netB := nn.New([]int{1, cfg.Hidden, 1}, rng)

	prob, err := buildProblem(ctx, cfg, rng)
	if err != nil {
		return err
	}

	trainer := train.New(prob, netA, netB, cfg.LearningRate)

	fmt.Printf("training %d iterations (%d+%d parameters)...\n",
		cfg.Iterations, netA.NumParams(), netB.NumParams())
	start := time.Now()

	var tc *train.Context
	if live {
		tc, err = trainLive(ctx, trainer, cfg.Iterations)
	} else {
		trainer.SetCallback(func(c *train.Context) {
			if c.Iter == 1 || c.Iter%100 == 0 || c.Iter == cfg.Iterations {
				fmt.Printf("  iter %5d  loss %.6g\n", c.Iter, c.Loss)
			}
		})
		tc, err = trainer.Run(ctx, cfg.Iterations)
	}
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, train.ErrDiverged) {
			return fmt.Errorf("aborted after %d iterations: %w", tc.Iter, train.ErrDiverged)
		}
		return err
	}
	if tc == nil || len(tc.History) == 0 {
		fmt.Println("no completed iterations, nothing to save")
		return nil
	}

	dom := efe.Domain{RMin: cfg.Domain.RMin, RMax: cfg.Domain.RMax}
	sol := efe.NewAnalytic(units.SchwarzschildRadius)
	ev := train.Evaluate(netA, netB, sol, dom, cfg.GridDr)

	if err := export.SaveAll(cfg.OutDir, tc.History, ev); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, tc.History, netA, netB, ev, elapsed)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final loss: %.6g\n", tc.Loss)
	fmt.Printf("plots: %s\n\n", cfg.OutDir)
	printMetrics(ev)

	if chart := viz.LossChart(tc.History); chart != "" {
		fmt.Println()
		fmt.Println(chart)
	}
	return nil
}

// trainLive runs the trainer in a goroutine and streams progress into the
// bubbletea view. Quitting the view cancels the run.
func trainLive(ctx context.Context, trainer *train.Trainer, iters int) (*train.Context, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(viz.NewModel(iters, cancel))

	trainer.SetCallback(func(c *train.Context) {
		p.Send(viz.ProgressMsg{Iter: c.Iter, Loss: c.Loss})
	})

	type result struct {
		tc  *train.Context
		err error
	}
	done := make(chan result, 1)
	go func() {
		tc, err := trainer.Run(ctx, iters)
		p.Send(viz.DoneMsg{Err: err})
		done <- result{tc, err}
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, err
	}
	res := <-done
	if errors.Is(res.err, context.Canceled) {
		fmt.Println("training cancelled")
		return res.tc, nil
	}
	return res.tc, res.err
}

func runOrbit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if integrator != "" {
		cfg.Orbit.Integrator = integrator
	}

	tr, x0, err := referenceOrbit(context.Background(), cfg)
	if err != nil {
		return err
	}

	sys := orbit.NewNewtonian(units.GM)
	e0 := sys.Energy(x0)
	eN := sys.Energy(tr.States[tr.Len()-1])

	radii := make([]float64, tr.Len())
	for i := range radii {
		x, y := tr.Position(i)
		radii[i] = math.Hypot(x, y)
	}

	fmt.Printf("reference orbit: %d samples over %.2f yr (dt=%.3f)\n",
		tr.Len(), cfg.Orbit.Duration, cfg.Orbit.Dt)
	fmt.Printf("energy drift: %.3e (relative)\n\n", math.Abs(eN-e0)/math.Abs(e0))

	fmt.Println(viz.LossChartWithCaption(radii, "r (AU)"))
	return nil
}

func evalRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	netA, netB, err := st.LoadNetworks(args[0])
	if err != nil {
		return err
	}

	cfg := meta.Config
	dom := efe.Domain{RMin: cfg.Domain.RMin, RMax: cfg.Domain.RMax}
	sol := efe.NewAnalytic(units.SchwarzschildRadius)
	ev := train.Evaluate(netA, netB, sol, dom, cfg.GridDr)

	history, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	if err := export.SaveAll(cfg.OutDir, history, ev); err != nil {
		return err
	}

	fmt.Printf("run: %s (%s)\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("plots: %s\n\n", cfg.OutDir)
	printMetrics(ev)
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base := config.DefaultConfig()
	base.Iterations = iterations
	base.Seed = seed

	prob, err := buildProblem(ctx, base, rand.New(rand.NewSource(base.Seed)))
	if err != nil {
		return err
	}

	gs := optim.NewGridSearch(
		[]string{"learning_rate", "orbit_weight"},
		[][]float64{
			{1e-4, 1e-3, 1e-2},
			{0.1, 1.0, 10.0},
		},
	)

	fmt.Printf("grid search: %d iterations per trial\n", base.Iterations)

	best, score, err := gs.Search(ctx, func(ctx context.Context, params map[string]float64) (float64, error) {
		rng := rand.New(rand.NewSource(base.Seed))
		netA := nn.New([]int{1, base.Hidden, 1}, rng)
		netB := nn.New([]int{1, base.Hidden, 1}, rng)

		p := *prob
		p.Weights.Orbit = params["orbit_weight"]

		tc, err := train.New(&p, netA, netB, params["learning_rate"]).Run(ctx, base.Iterations)
		if err != nil {
			return 0, err
		}
		fmt.Printf("  lr=%.0e w_orbit=%5.1f  loss=%.6g\n",
			params["learning_rate"], params["orbit_weight"], tc.Loss)
		return tc.Loss, nil
	})
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("all trials failed")
	}

	fmt.Printf("\nbest: lr=%.0e w_orbit=%.1f (loss %.6g)\n",
		best["learning_rate"], best["orbit_weight"], score)
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
	fmt.Fprintln(w, "ID\tTIME\tITERS\tELAPSED\tCHI2/DOF A\tCHI2/DOF B")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1fs\t%.4g\t%.4g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Iterations,
			run.Elapsed,
			run.Metrics["chi2_dof_A"],
			run.Metrics["chi2_dof_B"],
		)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	history, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "loss"}); err != nil {
		return err
	}
	for i, l := range history {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(l, 'g', 17, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printMetrics(ev *train.Evaluation) {
	fmt.Println("fit against closed-form solution:")
	for _, m := range []struct {
		name string
		val  float64
	}{
		{"chi2/dof A", ev.Chi2A},
		{"chi2/dof B", ev.Chi2B},
		{"rmse A", ev.RMSEA},
		{"rmse B", ev.RMSEB},
	} {
		fmt.Printf("  %-11s %.6g\n", m.name, m.val)
	}
}
