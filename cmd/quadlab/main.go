package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kasakh/quadlab/internal/analysis"
	"github.com/kasakh/quadlab/internal/config"
	"github.com/kasakh/quadlab/internal/experiment"
	"github.com/kasakh/quadlab/internal/integrand"
	"github.com/kasakh/quadlab/internal/quad"
	"github.com/kasakh/quadlab/internal/storage"
	"github.com/kasakh/quadlab/internal/viz"
)

var (
	dataDir string
	method  string
	n       int
	nMin    int
	nMax    int
	dim     int
	trials  int
	seed    int64
	budget  int
	lower   float64
	upper   float64
	dims    []int
	// Config file and preset
	configFile string
	preset     string
)

// main registers the quadlab commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "quadlab",
		Short: "monte carlo vs grid quadrature convergence lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".quadlab", "data directory")

	estimateCmd := &cobra.Command{
		Use:   "estimate [integrand]",
		Short: "compute one quadrature estimate",
		Args:  cobra.ExactArgs(1),
		RunE:  runEstimate,
	}
	estimateCmd.Flags().StringVar(&method, "method", "montecarlo", "quadrature method")
	estimateCmd.Flags().IntVar(&n, "n", 32, "points per axis")
	estimateCmd.Flags().IntVar(&dim, "dim", 1, "dimensionality")
	estimateCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	estimateCmd.Flags().Float64Var(&lower, "lower", 0, "domain lower bound")
	estimateCmd.Flags().Float64Var(&upper, "upper", 1, "domain upper bound")

	sweepCmd := &cobra.Command{
		Use:   "sweep [integrand]",
		Short: "run a convergence sweep over an N range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&method, "method", "montecarlo", "quadrature method")
	sweepCmd.Flags().IntVar(&nMin, "n-min", config.DefaultNMin, "smallest points per axis")
	sweepCmd.Flags().IntVar(&nMax, "n-max", config.DefaultNMax, "largest points per axis")
	sweepCmd.Flags().IntVar(&dim, "dim", 1, "dimensionality")
	sweepCmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "trials per N (stochastic methods)")
	sweepCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	sweepCmd.Flags().Float64Var(&lower, "lower", 0, "domain lower bound")
	sweepCmd.Flags().Float64Var(&upper, "upper", 1, "domain upper bound")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	compareCmd := &cobra.Command{
		Use:   "compare [integrand]",
		Short: "riemann vs monte carlo error curves",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompare,
	}
	compareCmd.Flags().IntVar(&nMin, "n-min", config.DefaultNMin, "smallest points per axis")
	compareCmd.Flags().IntVar(&nMax, "n-max", config.DefaultNMax, "largest points per axis")
	compareCmd.Flags().IntVar(&dim, "dim", 1, "dimensionality")
	compareCmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "monte carlo trials per N")
	compareCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	compareCmd.Flags().Float64Var(&lower, "lower", 0, "domain lower bound")
	compareCmd.Flags().Float64Var(&upper, "upper", 1, "domain upper bound")

	dimsCmd := &cobra.Command{
		Use:   "dims [integrand]",
		Short: "fixed-budget error across dimensions",
		Args:  cobra.ExactArgs(1),
		RunE:  runDims,
	}
	dimsCmd.Flags().IntSliceVar(&dims, "dims", []int{1, 2, 3, 4, 6}, "dimensions to study")
	dimsCmd.Flags().IntVar(&budget, "budget", config.DefaultBudget, "total samples per dimension")
	dimsCmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "monte carlo trials")
	dimsCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	dimsCmd.Flags().Float64Var(&lower, "lower", 0, "domain lower bound")
	dimsCmd.Flags().Float64Var(&upper, "upper", 1, "domain upper bound")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved error curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run curve to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [integrand]",
		Short: "list available presets for an integrand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for integrand: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [integrand]",
		Short: "watch a monte carlo estimate converge",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&dim, "dim", 1, "dimensionality")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().Float64Var(&lower, "lower", 0, "domain lower bound")
	liveCmd.Flags().Float64Var(&upper, "upper", 1, "domain upper bound")

	rootCmd.AddCommand(estimateCmd, sweepCmd, compareCmd, dimsCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ig, err := integrand.Get(args[0])
	if err != nil {
		return err
	}

	est, err := experiment.GetEstimator(method)
	if err != nil {
		return err
	}

	dom := quad.Domain{Lower: lower, Upper: upper}
	rng := rand.New(rand.NewSource(seed))

	start := time.Now()
	value, err := est.Estimate(ig.F, dom, n, dim, rng)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	truth := ig.True(dom, dim)
	samples, _ := quad.GridSize(dom, n, dim)

	fmt.Println(viz.KV("integrand", "%s", ig.Name))
	fmt.Println(viz.KV("method", "%s", est.Name))
	fmt.Println(viz.KV("samples", "%d (n=%d, dim=%d)", samples, n, dim))
	fmt.Println(viz.KV("estimate", "%.10f", value))
	fmt.Println(viz.KV("true value", "%.10f", truth))
	fmt.Println(viz.KV("abs error", "%.3e", math.Abs(value-truth)))
	fmt.Println(viz.KV("elapsed", "%v", elapsed))

	return nil
}

// buildSweepConfig merges defaults, preset, config file and flags, in
// ascending precedence, the same way the run command layers its
// configuration sources.
func buildSweepConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Integrand = name

	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Integrand = name
		cfg = loaded
	}

	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("n-min") {
		cfg.NMin = nMin
	}
	if cmd.Flags().Changed("n-max") {
		cfg.NMax = nMax
	}
	if cmd.Flags().Changed("dim") {
		cfg.Dim = dim
	}
	if cmd.Flags().Changed("trials") {
		cfg.Trials = trials
	}
	if cmd.Flags().Changed("lower") {
		cfg.Domain.Lower = lower
	}
	if cmd.Flags().Changed("upper") {
		cfg.Domain.Upper = upper
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, cfg.Validate()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildSweepConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(experiment.Config{
		Integrand: cfg.Integrand,
		Method:    cfg.Method,
		Dim:       cfg.Dim,
		Ns:        cfg.GetNs(),
		Trials:    cfg.Trials,
		Seed:      cfg.Seed,
		Domain:    cfg.GetDomain(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s with %s (dim=%d)...\n", cfg.Integrand, cfg.Method, cfg.Dim)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Integrand: cfg.Integrand,
		Method:    cfg.Method,
		Dim:       cfg.Dim,
		Trials:    cfg.Trials,
		Seed:      cfg.Seed,
		Lower:     cfg.Domain.Lower,
		Upper:     cfg.Domain.Upper,
	}

	fit, fitErr := analysis.FitOrder(result.Ns, result.Errors)
	if fitErr == nil {
		meta.FitOrder = fit.Order
		meta.FitR2 = fit.R2
	}

	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	caption := fmt.Sprintf("log10 abs error, %s (%s, dim=%d)", cfg.Integrand, cfg.Method, cfg.Dim)
	fmt.Println(viz.ErrorCurve(caption, result.Errors))
	fmt.Println()

	if fitErr == nil {
		fmt.Printf("fitted order: n^%.2f (r2=%.3f)\n", fit.Order, fit.R2)
	} else {
		fmt.Printf("fit skipped: %v\n", fitErr)
	}

	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	name := args[0]
	dom := quad.Domain{Lower: lower, Upper: upper}
	ns := (&config.Config{NMin: nMin, NMax: nMax}).GetNs()

	curves := make(map[string]*experiment.Result, 2)
	for _, m := range experiment.Methods() {
		exp, err := experiment.New(experiment.Config{
			Integrand: name,
			Method:    m,
			Dim:       dim,
			Ns:        ns,
			Trials:    trials,
			Seed:      seed,
			Domain:    dom,
		})
		if err != nil {
			return err
		}
		curves[m], err = exp.Run(context.Background())
		if err != nil {
			return err
		}
	}

	riemann := curves["riemann"]
	monte := curves["montecarlo"]

	fmt.Printf("comparing methods for %s (dim=%d, trials=%d)\n\n", name, dim, trials)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tSAMPLES\tRIEMANN_ERR\tMONTECARLO_ERR")
	for i := range riemann.Ns {
		fmt.Fprintf(w, "%d\t%d\t%.3e\t%.3e\n",
			riemann.Ns[i], riemann.Samples[i], riemann.Errors[i], monte.Errors[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	caption := fmt.Sprintf("log10 abs error: riemann (green) vs montecarlo (red), dim=%d", dim)
	fmt.Println(viz.CompareCurves(caption, riemann.Errors, monte.Errors))
	fmt.Println()

	for _, m := range []string{"riemann", "montecarlo"} {
		fit, err := analysis.FitOrder(curves[m].Ns, curves[m].Errors)
		if err != nil {
			fmt.Printf("%-12s fit skipped: %v\n", m, err)
			continue
		}
		fmt.Printf("%-12s order n^%.2f (r2=%.3f), mean err %.3e\n",
			m, fit.Order, fit.R2, analysis.MeanAbs(curves[m].Errors))
	}

	return nil
}

func runDims(cmd *cobra.Command, args []string) error {
	dom := quad.Domain{Lower: lower, Upper: upper}

	rows, err := experiment.DimStudy(context.Background(), args[0], dims, budget, trials, seed, dom)
	if err != nil {
		return err
	}

	fmt.Printf("fixed budget %d samples, %s, %d monte carlo trials\n\n", budget, args[0], trials)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIM\tGRID_N\tGRID_SAMPLES\tRIEMANN_ERR\tMC_SAMPLES\tMC_ERR")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.3e\t%d\t%.3e\n",
			row.Dim, row.GridN, row.GridSamples, row.RiemannErr, row.MonteSamples, row.MonteErr)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tINTEGRAND\tMETHOD\tDIM\tTRIALS\tORDER\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2f\t%s\n",
			run.ID,
			run.Integrand,
			run.Method,
			run.Dim,
			run.Trials,
			run.FitOrder,
			run.Timestamp.Format("2006-01-02 15:04:05"),
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

	curve, err := st.LoadCurve(runID)
	if err != nil {
		return err
	}

	if len(curve.Errors) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("integrand: %s, method: %s, dim: %d\n", meta.Integrand, meta.Method, meta.Dim)
	fmt.Printf("true value: %.10f, fitted order: n^%.2f\n\n", meta.TrueValue, meta.FitOrder)

	caption := fmt.Sprintf("log10 abs error, %s (%s)", meta.Integrand, meta.Method)
	fmt.Println(viz.ErrorCurve(caption, curve.Errors))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return st.ExportJSON(args[0], enc)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	curve, err := st.LoadCurve(args[0])
	if err != nil {
		return err
	}

	if len(curve.Ns) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"n", "samples", "estimate", "abs_error"}); err != nil {
		return err
	}
	for i := range curve.Ns {
		row := []string{
			strconv.Itoa(curve.Ns[i]),
			strconv.Itoa(curve.Samples[i]),
			strconv.FormatFloat(curve.Estimates[i], 'g', -1, 64),
			strconv.FormatFloat(curve.Errors[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	ig, err := integrand.Get(args[0])
	if err != nil {
		return err
	}

	dom := quad.Domain{Lower: lower, Upper: upper}
	if err := dom.Validate(); err != nil {
		return err
	}
	if dim < 1 {
		return quad.ErrInvalidDimension
	}

	m := viz.NewLiveModel(ig, dom, dim, seed)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
