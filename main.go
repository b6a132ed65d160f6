package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gust/config"
	"github.com/pthm-cable/gust/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by a gesture script")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files (also dumped every stats window)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited, headless runs stop when the script ends)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	scriptPath := flag.String("script", "", "YAML gesture script for headless runs (empty = random gestures)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Bodies.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var script *game.Script
	if *scriptPath != "" {
		s, err := game.LoadScript(*scriptPath)
		if err != nil {
			slog.Error("failed to load script", "path", *scriptPath, "error", err)
			os.Exit(1)
		}
		script = s
	}

	// Build game options
	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		Config:         cfg,
		Script:         script,
	}

	if *headless {
		os.Exit(runHeadless(opts, int32(*maxTicks)))
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Gust")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return
	}
	defer g.Unload()

	if err := g.InitializeConfiguredGrid(); err != nil {
		slog.Error("failed to initialize grid", "error", err)
		return
	}

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless drives the simulation from a gesture script and returns the
// process exit code.
func runHeadless(opts game.Options, maxTicks int32) int {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	defer g.Unload()

	if err := g.InitializeConfiguredGrid(); err != nil {
		slog.Error("failed to initialize grid", "error", err)
		return 1
	}

	if maxTicks <= 0 {
		maxTicks = g.ScriptDuration()
	}
	if maxTicks <= 0 {
		slog.Warn("nothing to run: no script gestures and no -max-ticks")
		return 0
	}

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"stats_window", opts.StatsWindowSec,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	start := time.Now()
	g.RunHeadless(maxTicks)
	slog.Info("max ticks reached", "tick", g.Tick(), "wall_time", time.Since(start).String())
	return 0
}
