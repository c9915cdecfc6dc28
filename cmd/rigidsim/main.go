package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/experiment"
	"github.com/san-kum/rigidsim/internal/export"
	"github.com/san-kum/rigidsim/internal/logging"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	logFormat  string
	configFile string
	// Scene overrides
	dt         float64
	ticks      int
	integrator string
	noAge      bool
	noSave     bool
	// Batch
	parallel int
	// Plot
	bodyName  string
	quantity  string
	component int
	overlay   bool
	// Export
	outFile string
	svgFile string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rigidsim",
		Short:         "rigid-body kinematics lab",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./runs", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error, off)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.EncodingConsole, "log encoding (console, json)")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a preset or scene file and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&bodyName, "body", "", "body name to plot (default all)")
	plotCmd.Flags().StringVar(&quantity, "quantity", "position", "position, velocity or acceleration")
	plotCmd.Flags().IntVar(&component, "component", 1, "vector component index")
	plotCmd.Flags().BoolVar(&overlay, "overlay", false, "draw all selected bodies on one chart")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&svgFile, "svg", "", "also draw the body trajectories to this SVG file")

	verifyCmd := &cobra.Command{
		Use:   "verify [run_id]",
		Short: "check a stored run against its fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE:  verifyRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), viz.RenderPresets(config.ListPresets(), config.Presets))
			return nil
		},
	}

	sceneCmd := &cobra.Command{
		Use:   "scene [preset]",
		Short: "print a scene as YAML, with overrides applied",
		Args:  cobra.MaximumNArgs(1),
		RunE:  dumpScene,
	}
	addSceneFlags(sceneCmd)
	sceneCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scene...]",
		Short: "run several scenes concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&parallel, "parallel", 4, "maximum concurrent runs per scalar type")
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, verifyCmd, presetsCmd, sceneCmd, liveCmd, batchCmd)
	return rootCmd
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scene YAML file (overrides the preset)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, symplectic, verlet)")
	cmd.Flags().BoolVar(&noAge, "no-age", false, "keep impulses and uniform forces alive forever")
}

func newLogger() (*zap.Logger, error) {
	return logging.New(logLevel, logFormat)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runScene(cmd *cobra.Command, args []string) error {
	scene, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signalContext()
	defer cancel()

	outcome, err := experiment.Run(ctx, scene, log)
	if err != nil {
		return err
	}

	if !noSave {
		if err := save(&outcome.Meta, outcome.Records); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderSummary(outcome.Meta, outcome.Errors))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenes := make([]*config.Scene, 0, len(args))
	for _, arg := range args {
		scene, err := loadScene(arg)
		if err != nil {
			return err
		}
		scenes = append(scenes, scene)
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signalContext()
	defer cancel()

	outcomes, err := experiment.RunBatch(ctx, scenes, parallel, log)
	if err != nil {
		return err
	}

	for _, o := range outcomes {
		if !noSave {
			if err := save(&o.Meta, o.Records); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), viz.RenderSummary(o.Meta, o.Errors))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	scene, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}

	// The live view owns the terminal, so only errors are logged.
	log, err := logging.New("error", logging.EncodingJSON)
	if err != nil {
		return err
	}
	defer log.Sync()

	return viz.RunLive(scene, log)
}

func dumpScene(cmd *cobra.Command, args []string) error {
	scene, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}
	if outFile != "" {
		return config.Save(outFile, scene)
	}
	return config.Encode(cmd.OutOrStdout(), scene)
}

func save(meta *storage.RunMetadata, records []storage.Record) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(*meta, records)
	if err != nil {
		return err
	}
	stored, err := st.Load(runID)
	if err != nil {
		return err
	}
	*meta = *stored
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderRuns(runs))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("run %s has no frames", runID)
	}

	opts := viz.DefaultPlotOptions()
	opts.Quantity = quantity
	opts.Component = component

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\nscene: %s\n\n", meta.ID, meta.Scene)

	var ids []int64
	var names []string
	for id, name := range meta.Bodies {
		if bodyName != "" && name != bodyName {
			continue
		}
		ids = append(ids, int64(id))
		names = append(names, name)
	}
	if len(ids) == 0 {
		return fmt.Errorf("run %s has no body named %q", runID, bodyName)
	}

	if overlay {
		chart, err := viz.PlotBodies(records, ids, names, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, chart)
		return nil
	}

	for i, id := range ids {
		chart, err := viz.PlotBody(records, id, names[i], opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, chart)
		fmt.Fprintln(out)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if svgFile != "" {
		svg := export.TrajectoriesToSVG(export.Trajectories(records, meta.Bodies), 800, 600)
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
	}

	if outFile != "" {
		return st.ExportFile(runID, outFile)
	}
	return storage.ExportJSON(cmd.OutOrStdout(), *meta, records)
}

func verifyRun(cmd *cobra.Command, args []string) error {
	if err := storage.New(dataDir).Verify(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
	return nil
}
