package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/julianBogado1/disksim/internal/config"
	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
	"github.com/julianBogado1/disksim/internal/metrics"
	"github.com/julianBogado1/disksim/internal/sink"
	"github.com/julianBogado1/disksim/internal/store"
	"github.com/julianBogado1/disksim/internal/viz"
	"github.com/julianBogado1/disksim/internal/world"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	seed       int64
	radius     float64
	speed      float64
	workers    int
	output     string
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "disksim",
		Short: "event-driven hard-disk gas simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".disksim", "run archive directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [steps] [L] [particles]",
		Short: "run a simulation",
		Args:  cobra.RangeArgs(0, 3),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "disk radius")
	runCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "initial speed")
	runCmd.Flags().IntVar(&workers, "workers", 0, "predictor workers (0 = NumCPU)")
	runCmd.Flags().StringVar(&output, "output", "", "trajectory output directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "check a configuration and its initial state",
		RunE:  validateConfig,
	}
	validateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	validateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	validateCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot event timing for an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, validateCmd, listCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig resolves preset, config file and positional legacy args,
// in that order of increasing precedence.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

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

	// Legacy positional surface: <steps> <L> <particles>.
	if len(args) >= 1 {
		steps, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid step count %q: %w", args[0], err)
		}
		cfg.Steps = steps
	}
	if len(args) >= 2 {
		l, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid slit height %q: %w", args[1], err)
		}
		cfg.Slit = l
	}
	if len(args) >= 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("invalid particle count %q: %w", args[2], err)
		}
		cfg.Particles = n
	}

	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("radius") {
		cfg.Radius = radius
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = speed
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = output
	}

	return cfg, cfg.Check()
}

// initialState constructs walls, vertices and validated particles for
// a config: either the explicitly scripted disks or a seeded random
// placement in the left chamber.
func initialState(cfg *config.Config) ([]*core.Particle, []geom.Segment, []geom.Vertex, error) {
	segments, vertices, err := world.Container(cfg.Slit)
	if err != nil {
		return nil, nil, nil, err
	}

	var particles []*core.Particle
	if len(cfg.Initial) > 0 {
		for i, pc := range cfg.Initial {
			particles = append(particles, &core.Particle{
				ID:       i,
				Position: geom.V(pc.X, pc.Y),
				Velocity: geom.V(pc.VX, pc.VY),
				Radius:   pc.R,
			})
		}
	} else {
		rng := rand.New(rand.NewSource(cfg.Seed))
		particles, err = world.Place(cfg.Particles, cfg.Radius, cfg.Speed, rng)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	if err := world.Validate(particles, cfg.Slit); err != nil {
		return nil, nil, nil, err
	}
	return particles, segments, vertices, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	particles, segments, vertices, err := initialState(cfg)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	text, err := sink.NewText(cfg.Output)
	if err != nil {
		return err
	}
	digest := store.NewDigest()
	collector := metrics.NewCollector(
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewPressure(segments),
		metrics.NewFlux(),
	)
	out := sink.Multi{sink.NewAsync(text, 256), digest, collector}

	if err := out.WriteSetup(len(particles), cfg.Slit, segments); err != nil {
		return err
	}

	engine, err := core.New(core.Config{Steps: cfg.Steps, Workers: cfg.Workers},
		particles, segments, vertices, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("running %d events, %d particles, L=%g...\n", cfg.Steps, len(particles), cfg.Slit)
	start := time.Now()

	runErr := engine.Run(ctx, out)
	closeErr := out.Close()

	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return closeErr
	}

	elapsed := time.Since(start)

	runID, err := st.Save(store.RunMetadata{
		Steps:     cfg.Steps,
		Slit:      cfg.Slit,
		Particles: len(particles),
		Radius:    cfg.Radius,
		Speed:     cfg.Speed,
		Seed:      cfg.Seed,
		FinalTime: engine.Now(),
		Digest:    digest.Sum(),
		Metrics:   collector.Values(),
		OutputDir: cfg.Output,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final time: %.6f\n", engine.Now())
	fmt.Printf("digest: %s\n", digest.Sum())
	fmt.Println("\nmetrics:")
	for name, val := range collector.Values() {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	particles, segments, vertices, err := initialState(cfg)
	if err != nil {
		return err
	}

	// Live view has no step bound; run until quit.
	engine, err := core.New(core.Config{Steps: ^uint64(0), Workers: cfg.Workers},
		particles, segments, vertices, zap.NewNop())
	if err != nil {
		return err
	}

	m := viz.NewModel(engine, segments, frameRate)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	particles, _, _, err := initialState(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("ok: %d particles inside container, L=%g\n", len(particles), cfg.Slit)
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
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tN\tL\tSEED\tDIGEST")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.3f\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Particles,
			run.Slit,
			run.Seed,
			run.Digest,
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

	f, err := os.Open(filepath.Join(meta.OutputDir, "events.txt"))
	if err != nil {
		return err
	}
	defer f.Close()

	var times []float64
	kinds := map[string]int{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		kinds[fields[1]]++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no events recorded for run %s", meta.ID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("events: %d\n\n", len(times))

	graph := asciigraph.Plot(times,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("event time vs index"))
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tCOUNT")
	for _, kind := range []string{"PARTICLE", "WALL", "VERTEX"} {
		fmt.Fprintf(w, "%s\t%d\n", kind, kinds[kind])
	}
	return w.Flush()
}
