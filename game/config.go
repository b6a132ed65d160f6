package game

import (
	"github.com/pthm-cable/gust/config"
	"github.com/pthm-cable/gust/telemetry"
)

// Options configures game initialization.
type Options struct {
	Seed           int64   // RNG seed for spawning and jitter
	LogStats       bool    // log window stats via slog
	StatsWindowSec float64 // simulated seconds per stats window
	SnapshotDir    string  // snapshot JSON destination (empty = disabled)
	OutputDir      string  // CSV telemetry destination (empty = disabled)
	Headless       bool    // no window; UpdateHeadless drives the game
	StepsPerUpdate int     // ticks per Update/UpdateHeadless call

	// Config overrides the process-global config when set.
	Config *config.Config

	// Script replays gestures in headless mode. When nil, headless runs
	// generate a random script from the headless config section.
	Script *Script

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// DefaultOptions returns options for an interactive run.
func DefaultOptions() Options {
	return Options{
		Seed:           1,
		StatsWindowSec: 5,
		StepsPerUpdate: 1,
	}
}
