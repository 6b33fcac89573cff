package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fireworks/internal/config"
	"github.com/san-kum/fireworks/internal/metrics"
	"github.com/san-kum/fireworks/internal/sim"
	"github.com/san-kum/fireworks/internal/tui"
	"github.com/san-kum/fireworks/internal/viz"
	"github.com/spf13/cobra"
)

const farewell = "Thanks for watching the show!"

var (
	frames     int
	interval   float64
	size       string
	seed       int64
	configFile string
	preset     string
	palette    string
	noColor    bool
	noStatus   bool
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fireworks",
		Short:         "ascii fireworks in the terminal",
		Args:          cobra.NoArgs,
		RunE:          runShow,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&frames, "frames", config.DefaultFrames, "total frames to render")
	flags.Float64Var(&interval, "interval", config.DefaultInterval, "seconds between frames")
	flags.StringVar(&size, "size", config.DefaultSize, "grid size WIDTHxHEIGHT or 'auto'")
	flags.Int64Var(&seed, "seed", 0, "random seed (default time-based)")
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&preset, "preset", "", "use preset configuration")
	flags.StringVar(&palette, "palette", config.DefaultPalette, "colour palette")
	flags.BoolVar(&noColor, "no-color", false, "plain glyphs without colour")
	flags.BoolVar(&noStatus, "no-status", false, "hide the frame counter")
	flags.BoolVarP(&verbose, "verbose", "v", false, "diagnostics on stderr")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive show (space pause, b burst, r restart, +/- speed)",
		Args:  cobra.NoArgs,
		RunE:  runInteractive,
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "run the show headless and plot the spark population",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and palettes",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(tuiCmd, statsCmd, presetsCmd, initCmd)
	return rootCmd
}

// loadConfig layers preset, config file and explicitly set flags, in that order.
// With timeSeed set, a show without a configured seed is seeded from the clock.
func loadConfig(cmd *cobra.Command, timeSeed bool) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("%w %q (available: %s)", config.ErrUnknownPreset, preset, strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("frames") {
		cfg.Frames = frames
	}
	if changed("interval") {
		cfg.Interval = interval
	}
	if changed("size") {
		cfg.Size = size
	}
	if changed("seed") {
		cfg.SetSeed(seed)
	} else if timeSeed && cfg.Seed == nil {
		cfg.SetSeed(time.Now().UnixNano())
	}
	if changed("palette") {
		cfg.Palette = palette
	}
	if changed("no-color") {
		cfg.Color = !noColor
	}
	if changed("no-status") {
		cfg.Status = !noStatus
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveSize(cfg *config.Config, reserved int) (config.Size, error) {
	return config.ResolveSize(cfg.Size, cfg.FallbackSize, reserved, tui.TerminalSize)
}

func newRenderer(cfg *config.Config) *viz.Renderer {
	return viz.NewRenderer(viz.Options{
		Palette: cfg.Palette,
		Glyphs:  cfg.Glyphs,
		Color:   cfg.Color,
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	reserved := 0
	if cfg.Status {
		reserved = 1
	}
	grid, err := resolveSize(cfg, reserved)
	if err != nil {
		return err
	}

	if verbose {
		cmd.PrintErrf("fireworks: %s grid, %d frames every %s, seed %d, palette %s\n",
			grid, cfg.Frames, cfg.FrameInterval(), cfg.SeedValue(), cfg.Palette)
	}

	s := sim.New(cfg.Physics, grid.Width, grid.Height, cfg.SeedValue())
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	live := tui.NewLive(s, newRenderer(cfg), cmd.OutOrStdout(), tui.LiveConfig{
		Frames:   cfg.Frames,
		Interval: cfg.FrameInterval(),
		Status:   cfg.Status,
		Farewell: farewell,
	})
	n, err := live.Run(ctx)
	if verbose {
		cmd.PrintErrf("fireworks: drew %d/%d frames (%s)\n", n, cfg.Frames, live.Phase())
	}
	return err
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	grid, err := resolveSize(cfg, 1)
	if err != nil {
		return err
	}

	limit := 0
	if cmd.Flags().Changed("frames") {
		limit = cfg.Frames
	}

	requested, err := config.ParseSize(cfg.Size)
	if err != nil {
		return err
	}

	s := sim.New(cfg.Physics, grid.Width, grid.Height, cfg.SeedValue())
	m := tui.NewModel(s, newRenderer(cfg), cfg.FrameInterval(), limit, !requested.Auto)
	return tui.RunInteractive(m)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	grid, err := resolveSize(cfg, 0)
	if err != nil {
		return err
	}

	s := sim.New(cfg.Physics, grid.Width, grid.Height, cfg.SeedValue())
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	rec := &metrics.Recorder{}
	s.AddObserver(rec)

	start := time.Now()
	for i := 0; i < cfg.Frames; i++ {
		s.Step()
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed %d  grid %s  frames %d  (%s)\n\n", s.Seed(), grid, s.Frame(), elapsed.Round(time.Microsecond))

	if len(rec.Series) > 0 {
		graph := asciigraph.Plot(rec.Series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("live sparks per frame"))
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	values := s.Metrics()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.2f\n", name, values[name])
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tFRAMES\tINTERVAL\tSPARKS\tPALETTE\tGLYPHS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%gs\t%d\t%s\t%s\n", name, p.Frames, p.Interval, p.Physics.Sparks, p.Palette, p.Glyphs)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\npalettes: %s\n", strings.Join(viz.PaletteNames(), ", "))
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}

	path := "fireworks.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
