package game

import (
	"errors"
	"log/slog"

	"github.com/pthm-cable/gust/telemetry"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleWindow())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	// Periodic dumps when a snapshot directory is set
	if g.snapshotDir != "" {
		if _, err := g.SaveSnapshot(); err != nil {
			slog.Error("failed to save snapshot", "error", err)
		}
	}
}

// sampleWindow observes the field and bodies at window end.
func (g *Game) sampleWindow() telemetry.Sample {
	s := telemetry.Sample{
		LiveSources: g.winds.Len(),
		Magnitudes:  g.field.Magnitudes(nil),
		Saturation:  g.cfg.Field.MaxWindSpeed * g.cfg.Telemetry.SaturationFraction,
	}

	query := g.bodyFilter.Query()
	for query.Next() {
		body := query.Get()
		s.Speeds = append(s.Speeds, body.Speed())
		if e := query.Entity(); g.trailMap.Has(e) {
			s.TrailWaypoints += g.trailMap.Get(e).Len()
		}
	}

	return s
}

// SaveSnapshot writes the published state as JSON to the snapshot
// directory, or to the output directory when none is set.
// Returns the path written.
func (g *Game) SaveSnapshot() (string, error) {
	snap := g.Snapshot()
	if !snap.Field.Configured() {
		return "", errors.New("grid not initialized")
	}
	dump := snap.Telemetry(g.seed)

	var (
		path string
		err  error
	)
	switch {
	case g.snapshotDir != "":
		path, err = telemetry.SaveSnapshot(dump, g.snapshotDir)
	case g.outputManager != nil:
		path, err = g.outputManager.WriteSnapshot(dump)
	default:
		return "", errors.New("no snapshot directory")
	}
	if err != nil {
		return "", err
	}

	slog.Info("snapshot saved", "path", path, "tick", dump.Tick)
	return path, nil
}
