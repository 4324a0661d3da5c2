package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/brine/config"
	"github.com/pthm-cable/brine/render"
	"github.com/pthm-cable/brine/sim"
	"github.com/pthm-cable/brine/telemetry"
	"github.com/pthm-cable/brine/ui"
)

// runState carries the per-run wiring shared by the windowed and headless
// loops.
type runState struct {
	sim      *sim.Simulation
	output   *telemetry.OutputManager
	logStats bool
	window   int32
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for particle snapshot files")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if output != nil {
		defer output.Close()
		if err := output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	s := sim.NewSimulation(cfg, rngSeed)

	rs := &runState{
		sim:      s,
		output:   output,
		logStats: *logStats,
		window:   int32(cfg.Telemetry.StatsWindow),
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"particles", cfg.Particles.Count,
		"cells", cfg.Derived.NumCells,
		"headless", *headless,
		"max_frames", *maxFrames,
	)

	if *headless {
		runHeadless(rs, *maxFrames)
	} else {
		runWindowed(rs, cfg, *maxFrames)
	}

	if *snapshotDir != "" {
		path, err := telemetry.SaveSnapshot(s.Snapshot(), *snapshotDir)
		if err != nil {
			slog.Error("failed to save snapshot", "error", err)
			os.Exit(1)
		}
		slog.Info("snapshot saved", "path", path, "frame", s.Frame())
	}
}

// runHeadless steps the pipeline flat out with no frame pacing.
func runHeadless(rs *runState, maxFrames int) {
	for {
		rs.sim.StepWith(rs.collect)

		if maxFrames > 0 && int(rs.sim.Frame()) >= maxFrames {
			slog.Info("max frames reached", "frame", rs.sim.Frame())
			return
		}
	}
}

// runWindowed drives the raylib loop with the hotkeys and control panel.
func runWindowed(rs *runState, cfg *config.Config, maxFrames int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "brine")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	view := render.NewView(cfg.Derived.Min, cfg.Derived.Max)
	panel := ui.NewPanel(cfg.Screen.Width)

	paused := false
	for !rl.WindowShouldClose() {
		// Hotkeys
		if rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyP) {
			paused = !paused
		}
		singleStep := rl.IsKeyPressed(rl.KeyS)
		if rl.IsKeyPressed(rl.KeyR) {
			rs.sim.Reset()
		}
		if rl.IsKeyPressed(rl.KeyG) {
			view.ShowGrid = !view.ShowGrid
		}
		if rl.IsKeyPressed(rl.KeyD) {
			view.Debug = !view.Debug
		}

		view.HandleInput()

		if !paused || singleStep {
			rs.sim.StepWith(rs.collect)
		}

		rl.BeginDrawing()
		view.Draw(rs.sim, paused)
		panel.Draw(rs.sim.Bounds())
		rl.EndDrawing()
		rs.sim.Perf().RecordDraw()

		if panel.ResetRequested {
			rs.sim.Reset()
		}
		if maxFrames > 0 && int(rs.sim.Frame()) >= maxFrames {
			return
		}
	}
}

// collect emits telemetry at stats window boundaries.
func (rs *runState) collect() {
	frame := rs.sim.Frame()
	if rs.window <= 0 || frame%rs.window != 0 {
		return
	}

	ws := telemetry.CollectWindowStats(
		frame-rs.window, frame,
		rs.sim.SimTime(),
		rs.sim.Particles(),
		rs.sim.Spans(),
		rs.sim.Densities(),
	)
	perfStats := rs.sim.Perf().Stats()

	if rs.logStats {
		ws.LogStats()
		perfStats.LogStats()
	}
	if rs.output != nil {
		if err := rs.output.WriteWindow(ws); err != nil {
			slog.Error("failed to write window stats", "error", err)
		}
		if err := rs.output.WritePerf(perfStats, frame); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}
}
