package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Ticks           int     `csv:"ticks"`

	// Commands applied during window
	Adds     int `csv:"adds"`
	Moves    int `csv:"moves"`
	Removes  int `csv:"removes"`
	Restarts int `csv:"restarts"`
	Ignored  int `csv:"ignored"`

	// Field influence, averaged per tick
	LiveSources    int     `csv:"live_sources"`
	SourcesPerTick float64 `csv:"sources_per_tick"`
	TouchedPerTick float64 `csv:"touched_per_tick"`
	DecayedPerTick float64 `csv:"decayed_per_tick"`

	// Field magnitude distribution (sampled at window end)
	Cells          int     `csv:"cells"`
	MagnitudeMean  float64 `csv:"magnitude_mean"`
	MagnitudeStd   float64 `csv:"magnitude_std"`
	MagnitudeP50   float64 `csv:"magnitude_p50"`
	MagnitudeP90   float64 `csv:"magnitude_p90"`
	MagnitudeMax   float64 `csv:"magnitude_max"`
	ActiveCells    int     `csv:"active_cells"`
	SaturatedCells int     `csv:"saturated_cells"`

	// Bodies (sampled at window end)
	Bodies         int     `csv:"bodies"`
	PushedPerTick  float64 `csv:"pushed_per_tick"`
	BodySpeedMean  float64 `csv:"body_speed_mean"`
	BodySpeedP90   float64 `csv:"body_speed_p90"`
	TrailWaypoints int     `csv:"trail_waypoints"`
}

// Quantile returns the p-th empirical quantile of values, or 0 if values is
// empty. values is not modified.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Distribution summarizes a sample of non-negative magnitudes.
type Distribution struct {
	Mean, Std     float64
	P50, P90, Max float64
	NonZero       int
}

// ComputeDistribution calculates mean, sample std, quantiles and max.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	var d Distribution
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	d.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	d.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	d.Max = floats.Max(sorted)

	for _, v := range values {
		if v != 0 {
			d.NonZero++
		}
	}
	return d
}

// CountAtLeast returns how many values are >= threshold.
func CountAtLeast(values []float64, threshold float64) int {
	n := 0
	for _, v := range values {
		if v >= threshold {
			n++
		}
	}
	return n
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("ticks", s.Ticks),
		slog.Int("adds", s.Adds),
		slog.Int("moves", s.Moves),
		slog.Int("removes", s.Removes),
		slog.Int("restarts", s.Restarts),
		slog.Int("ignored", s.Ignored),
		slog.Int("live_sources", s.LiveSources),
		slog.Float64("sources_per_tick", s.SourcesPerTick),
		slog.Float64("touched_per_tick", s.TouchedPerTick),
		slog.Float64("decayed_per_tick", s.DecayedPerTick),
		slog.Int("cells", s.Cells),
		slog.Float64("magnitude_mean", s.MagnitudeMean),
		slog.Float64("magnitude_std", s.MagnitudeStd),
		slog.Float64("magnitude_p50", s.MagnitudeP50),
		slog.Float64("magnitude_p90", s.MagnitudeP90),
		slog.Float64("magnitude_max", s.MagnitudeMax),
		slog.Int("active_cells", s.ActiveCells),
		slog.Int("saturated_cells", s.SaturatedCells),
		slog.Int("bodies", s.Bodies),
		slog.Float64("pushed_per_tick", s.PushedPerTick),
		slog.Float64("body_speed_mean", s.BodySpeedMean),
		slog.Float64("body_speed_p90", s.BodySpeedP90),
		slog.Int("trail_waypoints", s.TrailWaypoints),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"ticks", s.Ticks,
		"adds", s.Adds,
		"moves", s.Moves,
		"removes", s.Removes,
		"live_sources", s.LiveSources,
		"touched_per_tick", s.TouchedPerTick,
		"magnitude_mean", s.MagnitudeMean,
		"magnitude_p90", s.MagnitudeP90,
		"magnitude_max", s.MagnitudeMax,
		"active_cells", s.ActiveCells,
		"saturated_cells", s.SaturatedCells,
		"bodies", s.Bodies,
		"body_speed_mean", s.BodySpeedMean,
	)
}
