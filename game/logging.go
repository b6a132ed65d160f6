package game

import (
	"log/slog"

	"github.com/pthm-cable/gust/telemetry"
)

// logPerfStats logs performance statistics.
func (g *Game) logPerfStats() {
	stats := g.perfCollector.Stats()
	slog.Info("perf",
		"tick", g.tick,
		"steps_per_update", g.stepsPerUpdate,
		"stats", stats,
	)
}

// logWorldState logs a one-line summary of the field and the population.
func (g *Game) logWorldState() {
	if !g.field.Configured() {
		slog.Info("world state", "tick", g.tick, "grid", "uninitialized")
		return
	}

	s := g.sampleWindow()
	mag := telemetry.ComputeDistribution(s.Magnitudes)
	speed := telemetry.ComputeDistribution(s.Speeds)

	slog.Info("world state",
		"tick", g.tick,
		"sources", s.LiveSources,
		"cells", len(s.Magnitudes),
		"active_cells", mag.NonZero,
		"magnitude_mean", mag.Mean,
		"magnitude_max", mag.Max,
		"bodies", len(s.Speeds),
		"speed_mean", speed.Mean,
		"trail_waypoints", s.TrailWaypoints,
	)
}
