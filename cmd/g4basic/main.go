package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/san-kum/g4basic/internal/backend/macro"
	"github.com/san-kum/g4basic/internal/backend/recorder"
	"github.com/san-kum/g4basic/internal/config"
	"github.com/san-kum/g4basic/internal/logging"
	"github.com/san-kum/g4basic/internal/nist"
	"github.com/san-kum/g4basic/internal/physics"
	"github.com/san-kum/g4basic/internal/session"
	"github.com/san-kum/g4basic/internal/storage"
	"github.com/san-kum/g4basic/internal/units"
	"github.com/san-kum/g4basic/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	// Session file and preset
	configFile string
	preset     string
	mergeFiles []string
	// Run overrides
	physicsList  string
	events       int
	verbose      int
	viewer       string
	theta        float64
	phi          float64
	style        string
	hits         bool
	trajectories bool
	logo         bool
	// Output
	outFile      string
	materialLike string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "g4basic",
		Short:         "describe and run Geant4 sessions from plain data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".g4basic", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [session-file]",
		Short: "build a session and write its geometry and run macro",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSession,
	}
	addSessionFlags(runCmd)

	checkCmd := &cobra.Command{
		Use:   "check [session-file...]",
		Short: "validate sessions and print the commands a run would issue",
		Args:  cobra.ArbitraryArgs,
		RunE:  checkSession,
	}
	addSessionFlags(checkCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id] [file]",
		Short: "print a file saved with a run",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "output", "o", "", "write to file instead of stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in sessions",
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVarP(&outFile, "output", "o", "", "write a preset to a YAML file (with --preset)")
	presetsCmd.Flags().StringVar(&preset, "preset", "", "preset to write")

	physicsCmd := &cobra.Command{
		Use:   "physics",
		Short: "list reference physics lists",
		RunE:  listPhysics,
	}

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list NIST materials",
		RunE:  listMaterials,
	}
	materialsCmd.Flags().StringVar(&materialLike, "filter", "", "case-insensitive substring filter")

	parseCmd := &cobra.Command{
		Use:   "parse [value...]",
		Short: "convert unit strings to base units (mm, MeV)",
		Args:  cobra.MinimumNArgs(1),
		RunE:  parseValues,
	}

	rootCmd.AddCommand(runCmd, checkCmd, listCmd, showCmd, exportCmd, presetsCmd, physicsCmd, materialsCmd, parseCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.Failure.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func addSessionFlags(cmd *cobra.Command) {
	defaults := session.DefaultRunOptions()
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in session")
	cmd.Flags().StringSliceVar(&mergeFiles, "merge", nil, "merge volumes from further session files (same world material)")
	cmd.Flags().StringVar(&physicsList, "physics", physics.Default, "reference physics list")
	cmd.Flags().IntVarP(&events, "events", "n", 0, "events to process (0 only draws the geometry)")
	cmd.Flags().IntVar(&verbose, "verbose", 0, "run, event and tracking verbosity")
	cmd.Flags().StringVar(&viewer, "viewer", defaults.Viewer, "visualization driver")
	cmd.Flags().Float64Var(&theta, "theta", defaults.Theta, "viewpoint theta (degrees)")
	cmd.Flags().Float64Var(&phi, "phi", defaults.Phi, "viewpoint phi (degrees)")
	cmd.Flags().StringVar(&style, "style", defaults.Style, "viewer style (wireframe, surface)")
	cmd.Flags().BoolVar(&hits, "hits", false, "draw hits")
	cmd.Flags().BoolVar(&trajectories, "trajectories", false, "draw smooth trajectories")
	cmd.Flags().BoolVar(&logo, "logo", false, "draw the logo")
}

// loadSession resolves the session file or preset and applies flags that
// were set explicitly on top of it.
func loadSession(cmd *cobra.Command, args []string) (string, *config.Config, session.RunOptions, error) {
	var (
		name string
		cfg  *config.Config
	)
	switch {
	case len(args) == 1 && preset != "":
		return "", nil, session.RunOptions{}, fmt.Errorf("give either a session file or --preset, not both")
	case len(args) == 1:
		loaded, err := config.Load(args[0])
		if err != nil {
			return "", nil, session.RunOptions{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return "", nil, session.RunOptions{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	default:
		cfg = config.DefaultConfig()
		name = "session"
	}

	for _, path := range mergeFiles {
		other, err := config.Load(path)
		if err != nil {
			return "", nil, session.RunOptions{}, fmt.Errorf("failed to load %s: %w", path, err)
		}
		if cfg, err = cfg.Merge(other); err != nil {
			return "", nil, session.RunOptions{}, fmt.Errorf("merge %s: %w", path, err)
		}
		name += "+" + strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if cmd.Flags().Changed("physics") {
		cfg.PhysicsList = physicsList
	}

	opts, err := cfg.RunOptions()
	if err != nil {
		return "", nil, session.RunOptions{}, err
	}
	if cmd.Flags().Changed("events") {
		opts.Events = events
	}
	if cmd.Flags().Changed("verbose") {
		opts.Verbose = verbose
	}
	if cmd.Flags().Changed("viewer") {
		opts.Viewer = viewer
	}
	if cmd.Flags().Changed("theta") {
		opts.Theta = theta
	}
	if cmd.Flags().Changed("phi") {
		opts.Phi = phi
	}
	if cmd.Flags().Changed("style") {
		opts.Style = style
	}
	if cmd.Flags().Changed("hits") {
		opts.Hits = hits
	}
	if cmd.Flags().Changed("trajectories") {
		opts.Trajectories = trajectories
	}
	if cmd.Flags().Changed("logo") {
		opts.Logo = logo
	}
	return name, cfg, opts, nil
}

func runSession(cmd *cobra.Command, args []string) error {
	name, cfg, opts, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, logLevel)
	if err != nil {
		return err
	}

	backend := macro.New(logging.Named(logger, "macro"))
	s, err := session.New(backend, cfg.SessionConfig(), logging.Named(logger, "session"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := s.Run(ctx, opts); err != nil {
		return err
	}

	st := storage.New(dataDir)
	runID, err := st.Save(storage.Describe(name, s, opts),
		storage.Artifact{Name: "geometry.tg", Write: backend.WriteGeometry},
		storage.Artifact{Name: "run.mac", Write: backend.WriteMacro},
	)
	if err != nil {
		return err
	}

	fmt.Println(summary(s))
	fmt.Println()
	fmt.Println(viz.Success.Render("saved ") + runID)
	fmt.Println(viz.Subtle.Render(fmt.Sprintf("events: %d, files: geometry.tg run.mac", backend.Events())))
	if backend.Events() == 0 {
		fmt.Println(viz.Warning.Render("dry run: ") + "no events requested, the macro only draws the geometry")
	}
	return nil
}

func checkSession(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return checkMany(cmd, args)
	}
	_, cfg, opts, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, logLevel)
	if err != nil {
		return err
	}

	s, err := session.New(recorder.New(), cfg.SessionConfig(), logging.Named(logger, "session"))
	if err != nil {
		return err
	}
	plan, err := session.Plan(opts)
	if err != nil {
		return err
	}

	fmt.Println(summary(s))
	fmt.Println()
	fmt.Println(viz.Section("commands", viz.Plan(plan)))
	if opts.Events > 0 {
		fmt.Println(viz.Subtle.Render(fmt.Sprintf("then /run/beamOn %d", opts.Events)))
	}
	return nil
}

type checkResult struct {
	path string
	s    *session.Session
	err  error
}

// checkMany builds every file against its own recorder concurrently and
// fails if any of them does not validate.
func checkMany(cmd *cobra.Command, paths []string) error {
	results := make([]checkResult, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		results[i].path = path
		_, cfg, opts, err := loadSession(cmd, []string{path})
		if err != nil {
			results[i].err = err
			continue
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s, err := session.New(recorder.New(), cfg.SessionConfig(), nil)
			if err == nil {
				_, err = session.Plan(opts)
			}
			results[idx].s, results[idx].err = s, err
		}(i)
	}
	wg.Wait()

	failed := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSTATUS\tPHYSICS\tVOLUMES")
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "%s\t%s\t-\t-\n", r.path, viz.Failure.Render(r.err.Error()))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.path, viz.Success.Render("ok"), r.s.PhysicsList(), len(r.s.Volumes()))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sessions failed", failed, len(paths))
	}
	return nil
}

func summary(s *session.Session) string {
	lines := []string{
		viz.Title.Render("session") + " " + viz.Subtle.Render(s.State().String()),
		fmt.Sprintf("%s %s", viz.Label.Render(fmt.Sprintf("%-10s", "physics")), viz.Value.Render(s.PhysicsList())),
		viz.World(s.World()),
	}
	if g, ok := s.Gun(); ok {
		lines = append(lines, viz.Gun(g))
	}
	lines = append(lines, viz.Separator(48), viz.Volumes(s.Volumes()))
	return viz.Panel.Render(strings.Join(lines, "\n"))
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
	fmt.Fprintln(w, "ID\tTIME\tPHYSICS\tVOLUMES\tGUN\tEVENTS")

	for _, run := range runs {
		particle := "-"
		if run.Gun != nil {
			particle = run.Gun.Particle
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.PhysicsList,
			len(run.Volumes),
			particle,
			run.Events,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	name := "run.mac"
	if len(args) == 2 {
		name = args[1]
	}
	data, err := storage.New(dataDir).ReadArtifact(args[0], name)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := storage.ExportJSONFile(outFile, *meta); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", outFile)
		return nil
	}
	return storage.ExportJSON(os.Stdout, *meta)
}

func listPresets(cmd *cobra.Command, args []string) error {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		if outFile == "" {
			return fmt.Errorf("--preset needs --output")
		}
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s to %s\n", preset, outFile)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPHYSICS\tVOLUMES\tGUN")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		particle := "-"
		if cfg.Gun != nil {
			particle = cfg.Gun.Particle
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, cfg.PhysicsList, len(cfg.Volumes), particle)
	}
	return w.Flush()
}

func listPhysics(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, l := range physics.All() {
		marker := " "
		if l.Name == physics.Default {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\n", marker, l.Name, l.Description)
	}
	return w.Flush()
}

func listMaterials(cmd *cobra.Command, args []string) error {
	filter := strings.ToLower(materialLike)
	for _, name := range nist.Names() {
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		fmt.Println(name)
	}
	return nil
}

func parseValues(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, arg := range args {
		v, err := units.Parse(arg)
		if err != nil {
			return err
		}
		unit, dim := "", "number"
		if u, ok := units.Suffix(arg); ok {
			unit, dim = u.Dimension.Base(), string(u.Dimension)
		}
		fmt.Fprintf(w, "%s\t%g %s\t%s\n", arg, v, unit, dim)
	}
	return w.Flush()
}
