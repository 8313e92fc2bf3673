package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/globalkin/internal/automation"
	"github.com/san-kum/globalkin/internal/config"
	"github.com/san-kum/globalkin/internal/dynamo"
	"github.com/san-kum/globalkin/internal/experiment"
	"github.com/san-kum/globalkin/internal/export"
	"github.com/san-kum/globalkin/internal/storage"
	"github.com/san-kum/globalkin/internal/tecplot"
	"github.com/san-kum/globalkin/internal/tui"
	"github.com/san-kum/globalkin/internal/viz"
)

var (
	temperature      float64
	t0               float64
	tEnd             float64
	dt               float64
	guard            string
	network          string
	directIonization bool
	integrator       string
	preset           string
	live             bool
	frameRate        int
	tecOut           string
	svgOut           string
	noSave           bool

	exportFormat string
	exportOut    string

	plotSpecies []string
	saveSpecies []string
	speciesDir  string

	sweepTemps []float64
)

var rootCmd = &cobra.Command{
	Use:   "globalkin",
	Short: "zero-dimensional argon plasma kinetics",
	Long: `globalkin integrates the argon reaction network (electrons, ground state,
two excited levels and ions) at a fixed electron temperature with explicit
Euler steps, stores each run, and reads Tecplot tables written by other
global kinetics codes.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./globalkin.yaml or ~/.config/globalkin/globalkin.yaml)")
	rootCmd.PersistentFlags().String("data", ".globalkin", "data directory")
	_ = viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate the reaction network and store the run",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&temperature, "temperature", config.DefaultTemperature, "electron temperature (eV)")
	runCmd.Flags().Float64Var(&t0, "t0", config.DefaultT0, "start time (s)")
	runCmd.Flags().Float64Var(&tEnd, "t-end", config.DefaultTEnd, "end time (s)")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	runCmd.Flags().StringVar(&guard, "guard", config.DefaultGuard, "state guard: off, flag, clamp or halt")
	runCmd.Flags().StringVar(&network, "network", config.DefaultNetwork, "reaction network")
	runCmd.Flags().BoolVar(&directIonization, "direct-ionization", false, "give ground-state ionization its stoichiometry")
	runCmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&live, "live", false, "show progress while integrating")
	runCmd.Flags().IntVar(&frameRate, "fps", 10, "progress refresh rate")
	runCmd.Flags().StringVar(&tecOut, "tec", "", "also write the trajectory as a Tecplot file")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "also write a density plot as SVG")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [species...]",
		Short: "plot species densities of a run",
		Args:  cobra.MinimumNArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as tec, csv, json, svg or per-species txt",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "tec", "tec, csv, json, svg or txt")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (directory for txt, stdout for json)")

	loadCmd := &cobra.Command{
		Use:   "load [files...]",
		Short: "read Tecplot files and list, plot or save species",
		Args:  cobra.MinimumNArgs(1),
		RunE:  loadFiles,
	}
	loadCmd.Flags().StringSliceVar(&plotSpecies, "plot", nil, "species to plot")
	loadCmd.Flags().StringSliceVar(&saveSpecies, "save", nil, "species to save as text")
	loadCmd.Flags().StringVar(&speciesDir, "out", "species_data", "directory for saved species")

	browseCmd := &cobra.Command{
		Use:   "browse [files...]",
		Short: "browse species of Tecplot files interactively",
		Args:  cobra.MinimumNArgs(1),
		RunE:  browseFiles,
	}
	browseCmd.Flags().StringVar(&speciesDir, "out", "species_data", "directory for saved species")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and networks",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the network at several electron temperatures",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&sweepTemps, "temps", []float64{2, 3, 4, 5.4, 8, 10}, "electron temperatures (eV)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "base preset")
	sweepCmd.Flags().Float64Var(&tEnd, "t-end", config.DefaultTEnd, "end time (s)")
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	sweepCmd.Flags().StringVar(&guard, "guard", config.DefaultGuard, "state guard: off, flag, clamp or halt")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a scenario file and store the runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id...]",
		Short: "delete stored runs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  deleteRuns,
	}

	rootCmd.AddCommand(runCmd, listCmd, showCmd, deleteCmd, plotCmd, exportCmd, loadCmd, browseCmd, presetsCmd, sweepCmd, scenarioCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("globalkin")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "globalkin"))
		}
	}

	viper.SetEnvPrefix("GLOBALKIN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func dataDir() string {
	return viper.GetString("data")
}

// baseConfig layers the defaults, the named preset and the config file at
// path, each over the last. Empty names are skipped.
func baseConfig(presetName, path string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if presetName != "" {
		p := config.GetPreset(presetName)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
		cfg = p
	}

	if path != "" {
		if err := config.LoadInto(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	return cfg, nil
}

// resolveConfig layers the run configuration: defaults, then the preset,
// then the config file, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := baseConfig(preset, viper.ConfigFileUsed())
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("temperature") {
		cfg.Temperature = temperature
	}
	if flags.Changed("t0") {
		cfg.T0 = t0
	}
	if flags.Changed("t-end") {
		cfg.TEnd = tEnd
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("guard") {
		cfg.Guard = guard
	}
	if flags.Changed("network") {
		cfg.Network = network
	}
	if flags.Changed("direct-ionization") {
		cfg.DirectIonization = directIonization
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(*cfg)
	if err := exp.Setup(registry, integrator); err != nil {
		return err
	}

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(os.Stdout, exp.Mechanism().Labels(), cfg.T0, cfg.TEnd, frameRate)
		exp.GetSimulator().AddObserver(renderer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	netName := experiment.NetworkName(*cfg)
	fmt.Printf("running %s at %.3g eV, %d steps...\n", netName, cfg.Temperature, cfg.RunConfig().Steps())
	start := time.Now()

	result, err := exp.Run(ctx)
	if renderer != nil {
		renderer.Stop()
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) || result == nil {
			return err
		}
		fmt.Println(viz.StatusWarn.Render(fmt.Sprintf("interrupted after %d steps, keeping partial run", result.Len())))
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.Len())
	reportDegradation(result)

	if !noSave {
		st := storage.New(dataDir())
		if err := st.Init(); err != nil {
			return err
		}
		defer st.Close()

		runID, err := st.Save(storage.RunMetadata{
			Network:     netName,
			Temperature: cfg.Temperature,
			T0:          cfg.T0,
			TEnd:        cfg.TEnd,
			Dt:          cfg.Dt,
			Guard:       cfg.Guard,
			Integrator:  integrator,
		}, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	printFinal(result)
	printMetrics(result.Metrics)

	if tecOut != "" {
		if err := tecplot.WriteFile(tecOut, tecplot.FromTrajectory(netName, result)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", tecOut)
	}
	if svgOut != "" {
		if err := writeSVG(svgOut, result); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func reportDegradation(result *dynamo.Trajectory) {
	if result.Trusted() {
		fmt.Println(viz.StatusOK.Render("all densities stayed physical"))
		return
	}
	d := result.Degraded
	name := fmt.Sprintf("species %d", d.Species)
	if d.Species >= 0 && d.Species < len(result.Labels) {
		name = result.Labels[d.Species]
	}
	fmt.Println(viz.StatusWarn.Render(fmt.Sprintf(
		"degraded: %s went %s at step %d (t=%.4g s); %d samples affected",
		name, d.Kind, d.Step, d.Time, result.DegradedCount)))
}

func printFinal(result *dynamo.Trajectory) {
	final := result.Final()
	if final == nil {
		return
	}
	fmt.Println("\nfinal densities (m^-3):")
	for i, v := range final {
		label := fmt.Sprintf("x%d", i)
		if i < len(result.Labels) {
			label = result.Labels[i]
		}
		fmt.Printf("  %-8s %s\n", viz.MetricLabel.Render(label), viz.MetricValue.Render(fmt.Sprintf("%.6e", v)))
	}
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(m) {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeSVG(path string, result *dynamo.Trajectory) error {
	series := make([]export.Series, 0, len(result.Labels))
	for i, label := range result.Labels {
		series = append(series, export.Series{Name: label, Values: result.Species(i)})
	}
	svg := export.TrajectoryToSVG(result.Times, series, 800, 400, true)
	if svg == "" {
		return fmt.Errorf("nothing to plot")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir())
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNETWORK\tTIME\tTE(eV)\tT_END\tDT\tSTEPS\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Degraded {
			status = fmt.Sprintf("degraded@%d", run.DegradedStep)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3g\t%.3gs\t%.3gs\t%d\t%s\n",
			run.ID,
			run.Network,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Temperature,
			run.TEnd,
			run.Dt,
			run.Steps,
			status,
		)
	}

	return w.Flush()
}

func deleteRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir())
	defer st.Close()

	for _, runID := range args {
		if err := st.Delete(runID); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", runID)
	}
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir())
	result, meta, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(meta.ID))
	fmt.Printf("network:     %s\n", meta.Network)
	fmt.Printf("temperature: %.4g eV\n", meta.Temperature)
	fmt.Printf("time:        %.4g .. %.4g s, dt %.4g s\n", meta.T0, meta.TEnd, meta.Dt)
	fmt.Printf("guard:       %s\n", meta.Guard)
	fmt.Printf("integrator:  %s\n", meta.Integrator)
	fmt.Printf("steps:       %d\n", meta.Steps)
	if meta.Degraded {
		fmt.Println(viz.StatusWarn.Render(fmt.Sprintf("degraded from step %d", meta.DegradedStep)))
	} else {
		fmt.Println(viz.StatusOK.Render("all densities stayed physical"))
	}

	fmt.Println()
	for i, label := range result.Labels {
		values := result.Species(i)
		if viz.ShouldLog(values) {
			for j, v := range values {
				if v > 0 {
					values[j] = math.Log10(v)
				}
			}
		}
		fmt.Printf("  %-8s %s\n", label, viz.Sparkline(values, 40))
	}

	printFinal(result)
	printMetrics(meta.Metrics)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir())
	result, _, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	table := tecplot.FromTrajectory(runID, result)
	names := args[1:]
	if len(names) == 0 {
		names = table.Species()
	}

	for _, name := range names {
		col, ok := table.Lookup(name)
		if !ok {
			fmt.Println(viz.StatusWarn.Render(fmt.Sprintf("no species %q; similar: %s", name, strings.Join(table.Suggest(name), ", "))))
			continue
		}
		caption := fmt.Sprintf("%s [m^-3] vs t [s]", col.Name)
		opts := viz.DefaultPlotOptions()
		opts.Log = viz.ShouldLog(col.Values)
		graph := viz.Plot(col.Values, caption, opts)
		if graph == "" {
			fmt.Println(viz.StatusWarn.Render("nothing to plot for " + col.Name))
			continue
		}
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir())
	result, meta, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	out := exportOut
	switch exportFormat {
	case "tec":
		if out == "" {
			out = runID + ".tec"
		}
		err = tecplot.WriteFile(out, tecplot.FromTrajectory(runID, result))
	case "csv":
		if out == "" {
			out = runID + ".csv"
		}
		err = copyFile(filepath.Join(dataDir(), runID, "states.csv"), out)
	case "json":
		info := export.RunInfo{
			Network:     meta.Network,
			Integrator:  meta.Integrator,
			Temperature: meta.Temperature,
			T0:          meta.T0,
			TEnd:        meta.TEnd,
			Dt:          meta.Dt,
			Guard:       meta.Guard,
		}
		if out == "" {
			return export.WriteJSON(os.Stdout, info, result)
		}
		err = export.ExportJSON(out, info, result)
	case "svg":
		if out == "" {
			out = runID + ".svg"
		}
		err = writeSVG(out, result)
	case "txt":
		if out == "" {
			out = runID
		}
		for i, label := range result.Labels {
			path, serr := export.SaveSpecies(out, "t [s]", result.Times, label, result.Species(i))
			if serr != nil {
				return serr
			}
			fmt.Printf("saved %s\n", path)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", exportFormat)
	}
	if err != nil {
		return err
	}

	fmt.Printf("exported to %s\n", out)
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tNETWORK\tTE(eV)\tT_END\tDT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.3g\t%.3gs\t%.3gs\n", name, experiment.NetworkName(*p), p.Temperature, p.TEnd, p.Dt)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nnetworks: %s\n", strings.Join(experiment.NewRegistry().ListNetworks(), ", "))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(sweepTemps) == 0 {
		return fmt.Errorf("no temperatures given")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %d temperatures, %d steps each...\n", len(sweepTemps), cfg.RunConfig().Steps())
	start := time.Now()
	results := experiment.Sweep(ctx, experiment.NewRegistry(), *cfg, "euler", sweepTemps)
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TE(eV)\tE_FINAL\tAR+_FINAL\tION_FRAC\tSTATUS")

	electrons := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Err != nil && r.Trajectory == nil {
			fmt.Fprintf(w, "%.3g\t-\t-\t-\t%s\n", r.Temperature, viz.StatusError.Render(r.Err.Error()))
			continue
		}
		final := r.Trajectory.Final()
		if final == nil {
			fmt.Fprintf(w, "%.3g\t-\t-\t-\t%s\n", r.Temperature, viz.StatusWarn.Render("no samples"))
			continue
		}
		status := viz.StatusOK.Render("ok")
		switch {
		case r.Err != nil:
			status = viz.StatusWarn.Render(r.Err.Error())
		case !r.Trajectory.Trusted():
			status = viz.StatusWarn.Render(fmt.Sprintf("degraded@%d", r.Trajectory.Degraded.Step))
		}
		fmt.Fprintf(w, "%.3g\t%.4e\t%.4e\t%.4g\t%s\n",
			r.Temperature, final[0], final[len(final)-1], r.Trajectory.Metrics["ionization_fraction"], status)
		electrons = append(electrons, final[0])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(electrons) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(electrons,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("final electron density vs temperature index"),
		))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	results, runErr := automation.RunScenario(ctx, sc, experiment.NewRegistry())

	var st *storage.Store
	if !noSave && len(results) > 0 {
		st = storage.New(dataDir())
		if err := st.Init(); err != nil {
			return err
		}
		defer st.Close()
	}

	for i, r := range results {
		cfg := r.Step.Config
		fmt.Printf("\n%s (%s, %.3g eV, %d samples)\n", viz.Title.Render(r.Step.Label(i)), experiment.NetworkName(cfg), cfg.Temperature, r.Trajectory.Len())
		reportDegradation(r.Trajectory)

		if st == nil {
			continue
		}
		runID, err := st.Save(storage.RunMetadata{
			Network:     experiment.NetworkName(cfg),
			Temperature: cfg.Temperature,
			T0:          cfg.T0,
			TEnd:        cfg.TEnd,
			Dt:          cfg.Dt,
			Guard:       cfg.Guard,
			Integrator:  r.Step.Integrator,
		}, r.Trajectory)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return runErr
}
