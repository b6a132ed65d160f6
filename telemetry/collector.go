package telemetry

import "github.com/pthm-cable/gust/systems"

// Collector accumulates events within windows of simulated time and
// produces WindowStats.
type Collector struct {
	windowDurationMs float64

	// Current window tracking
	windowStartTick int32
	windowElapsedMs float64
	totalElapsedMs  float64

	// Counters for current window
	ticks    int
	adds     int
	moves    int
	removes  int
	restarts int
	ignored  int
	sources  int
	touched  int
	decayed  int
	pushed   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDurationMs: windowDurationSec * 1000}
}

// Record counts an applied command.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventAddSource:
		c.adds++
	case EventMoveSource:
		c.moves++
	case EventRemoveSource:
		c.removes++
	case EventRestartSource:
		c.restarts++
	case EventIgnored:
		c.ignored++
	}
}

// RecordTick accumulates one simulation step.
func (c *Collector) RecordTick(elapsedMs float64, inf systems.Influence, phys systems.PhysicsStats) {
	c.ticks++
	c.windowElapsedMs += elapsedMs
	c.totalElapsedMs += elapsedMs
	c.sources += inf.Sources
	c.touched += inf.Touched
	c.decayed += inf.Decayed
	c.pushed += phys.Pushed
}

// ShouldFlush returns true once the window covers enough simulated time.
func (c *Collector) ShouldFlush() bool {
	return c.windowElapsedMs >= c.windowDurationMs
}

// Sample is the state observed at window end.
type Sample struct {
	LiveSources    int
	Magnitudes     []float64 // every cell's vector length
	Speeds         []float64 // every body's velocity length
	TrailWaypoints int
	Saturation     float64 // magnitudes at or above this count as saturated
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	mag := ComputeDistribution(s.Magnitudes)
	speed := ComputeDistribution(s.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      c.totalElapsedMs / 1000,
		Ticks:           c.ticks,

		Adds:     c.adds,
		Moves:    c.moves,
		Removes:  c.removes,
		Restarts: c.restarts,
		Ignored:  c.ignored,

		LiveSources:    s.LiveSources,
		SourcesPerTick: c.perTick(c.sources),
		TouchedPerTick: c.perTick(c.touched),
		DecayedPerTick: c.perTick(c.decayed),

		Cells:         len(s.Magnitudes),
		MagnitudeMean: mag.Mean,
		MagnitudeStd:  mag.Std,
		MagnitudeP50:  mag.P50,
		MagnitudeP90:  mag.P90,
		MagnitudeMax:  mag.Max,
		ActiveCells:   mag.NonZero,

		Bodies:         len(s.Speeds),
		PushedPerTick:  c.perTick(c.pushed),
		BodySpeedMean:  speed.Mean,
		BodySpeedP90:   speed.P90,
		TrailWaypoints: s.TrailWaypoints,
	}
	if s.Saturation > 0 {
		stats.SaturatedCells = CountAtLeast(s.Magnitudes, s.Saturation)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowElapsedMs = 0
	c.ticks = 0
	c.adds = 0
	c.moves = 0
	c.removes = 0
	c.restarts = 0
	c.ignored = 0
	c.sources = 0
	c.touched = 0
	c.decayed = 0
	c.pushed = 0

	return stats
}

func (c *Collector) perTick(n int) float64 {
	if c.ticks == 0 {
		return 0
	}
	return float64(n) / float64(c.ticks)
}

// WindowDurationMs returns the simulated length of a window.
func (c *Collector) WindowDurationMs() float64 {
	return c.windowDurationMs
}
