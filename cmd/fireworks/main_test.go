package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/fireworks/internal/config"
	"github.com/san-kum/fireworks/internal/tui"
	"github.com/san-kum/fireworks/internal/viz"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestShowGolden(t *testing.T) {
	golden, err := os.ReadFile(filepath.Join("..", "..", "internal", "viz", "testdata", "frame_10x5_seed1.golden"))
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	out, _, err := execute(t, "--frames", "1", "--size", "10x5", "--seed", "1", "--no-color", "--no-status", "--interval", "0")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}

	want := tui.ClearScreen + tui.HideCursor +
		viz.CursorHome + string(golden) +
		tui.ResetAttrs + "\n" + farewell +
		"\n" + tui.RestoreSequence
	if out != want {
		t.Errorf("output mismatch\n got: %q\nwant: %q", out, want)
	}
}

func TestShowStatusLine(t *testing.T) {
	out, _, err := execute(t, "--frames", "2", "--size", "12x6", "--seed", "4", "--no-color", "--interval", "0")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "Frame 1/2") || !strings.Contains(out, "Frame 2/2") {
		t.Errorf("missing status lines in %q", out)
	}
	if !strings.HasSuffix(out, tui.RestoreSequence) {
		t.Error("terminal not restored last")
	}
}

func TestShowZeroFrames(t *testing.T) {
	out, _, err := execute(t, "--frames", "0", "--size", "10x5", "--seed", "1")
	if err != nil {
		t.Fatalf("zero frames should succeed: %v", err)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestShowVerbose(t *testing.T) {
	_, stderr, err := execute(t, "-v", "--frames", "1", "--size", "10x5", "--seed", "9", "--interval", "0")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(stderr, "seed 9") || !strings.Contains(stderr, "drew 1/1") {
		t.Errorf("unexpected diagnostics %q", stderr)
	}
}

func TestShowErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad size", []string{"--size", "10by5"}, config.ErrInvalidSize},
		{"unknown preset", []string{"--preset", "nope"}, config.ErrUnknownPreset},
		{"negative frames", []string{"--frames", "-1"}, config.ErrInvalidConfig},
		{"nan interval", []string{"--interval", "NaN"}, config.ErrInvalidConfig},
		{"infinite interval", []string{"--interval", "+Inf"}, config.ErrInvalidConfig},
		{"interval overflows", []string{"--interval", "1e300"}, config.ErrInvalidConfig},
		{"unknown palette", []string{"--palette", "nosuch"}, config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if out != "" {
				t.Errorf("expected no output, got %q", out)
			}
		})
	}
}

func TestShowOversizedGridFallsBack(t *testing.T) {
	_, stderr, err := execute(t, "-v", "--size", "100000x100000", "--frames", "1", "--seed", "2", "--interval", "0")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(stderr, "80x24 grid") {
		t.Errorf("expected the fallback grid, got %q", stderr)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show.yaml")
	if err := os.WriteFile(path, []byte("frames: 7\npalette: mono\nseed: 11\n"), 0644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	if err := root.ParseFlags([]string{"--preset", "gentle", "--config", path, "--frames", "3"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(root, true)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Frames != 3 {
		t.Errorf("flag should win: frames = %d", cfg.Frames)
	}
	if cfg.Palette != "mono" {
		t.Errorf("config file should beat preset: palette = %s", cfg.Palette)
	}
	if cfg.SeedValue() != 11 {
		t.Errorf("seed = %d, want 11", cfg.SeedValue())
	}
	if cfg.Physics.Sparks != 60 {
		t.Errorf("preset physics lost: sparks = %d", cfg.Physics.Sparks)
	}
}

func TestLoadConfigTimeSeed(t *testing.T) {
	root := newRootCmd()
	if err := root.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(root, true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed == nil {
		t.Error("expected a clock seed")
	}

	cfg, err = loadConfig(root, false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != nil {
		t.Errorf("seed = %d, want unset", *cfg.Seed)
	}
}

func TestStatsCommand(t *testing.T) {
	out, _, err := execute(t, "stats", "--frames", "30", "--size", "40x15", "--seed", "3")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	for _, want := range []string{"seed 3", "live sparks per frame", "METRIC", "bursts", "peak", "population"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q", want)
		}
	}
}

func TestPresetsCommand(t *testing.T) {
	out, _, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range append(config.ListPresets(), "palettes:") {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %q", name)
		}
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fireworks.yaml")
	out, _, err := execute(t, "init-config", path, "--preset", "finale", "--frames", "42")
	if err != nil {
		t.Fatalf("init-config failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("unexpected output %q", out)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Frames != 42 {
		t.Errorf("frames = %d, want 42", cfg.Frames)
	}
	if cfg.Physics.Sparks != 180 {
		t.Errorf("sparks = %d, want 180", cfg.Physics.Sparks)
	}
	if cfg.Seed != nil {
		t.Errorf("seed = %d, want unset", *cfg.Seed)
	}
}

func TestConfigZeroSeedIsReproducible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.yaml")
	if err := os.WriteFile(path, []byte("seed: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	args := []string{"--config", path, "--frames", "5", "--size", "20x8", "--no-color", "--interval", "0"}
	first, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != second {
		t.Error("seed 0 from a config file should give identical shows")
	}
}
