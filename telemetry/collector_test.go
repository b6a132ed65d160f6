package telemetry

import (
	"testing"

	"github.com/pthm-cable/gust/systems"
)

func TestCollector_FlushesOnSimulatedTime(t *testing.T) {
	c := NewCollector(1)

	for i := 0; i < 59; i++ {
		c.RecordTick(16.67, systems.Influence{}, systems.PhysicsStats{})
	}
	if c.ShouldFlush() {
		t.Fatal("59 ticks of 16.67ms should not fill a 1s window")
	}
	c.RecordTick(16.67, systems.Influence{}, systems.PhysicsStats{})
	if !c.ShouldFlush() {
		t.Fatal("60 ticks of 16.67ms should fill a 1s window")
	}
}

func TestCollector_Flush(t *testing.T) {
	c := NewCollector(1)

	c.Record(NewAddEvent(1, "a"))
	c.Record(NewMoveEvent(1, "a"))
	c.Record(NewMoveEvent(2, "a"))
	c.Record(NewRestartEvent(2, "a"))
	c.Record(NewIgnoredEvent(3, "zz"))
	c.Record(NewRemoveEvent(3, "a"))

	c.RecordTick(500, systems.Influence{Sources: 1, Touched: 10, Decayed: 2}, systems.PhysicsStats{Pushed: 4})
	c.RecordTick(500, systems.Influence{Sources: 1, Touched: 20, Decayed: 0}, systems.PhysicsStats{Pushed: 2})

	stats := c.Flush(2, Sample{
		LiveSources: 1,
		Magnitudes:  []float64{0, 0, 12, 6},
		Speeds:      []float64{1, 3},
		Saturation:  11.4,
	})

	if stats.Ticks != 2 || stats.WindowStartTick != 0 || stats.WindowEndTick != 2 {
		t.Errorf("unexpected window bounds %+v", stats)
	}
	if stats.SimTimeSec != 1 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}
	if stats.Adds != 1 || stats.Moves != 2 || stats.Removes != 1 || stats.Restarts != 1 || stats.Ignored != 1 {
		t.Errorf("unexpected command counts %+v", stats)
	}
	if stats.TouchedPerTick != 15 || stats.DecayedPerTick != 1 || stats.PushedPerTick != 3 {
		t.Errorf("unexpected per-tick averages %+v", stats)
	}
	if stats.Cells != 4 || stats.ActiveCells != 2 || stats.SaturatedCells != 1 || stats.MagnitudeMax != 12 {
		t.Errorf("unexpected field stats %+v", stats)
	}
	if stats.Bodies != 2 || stats.BodySpeedMean != 2 {
		t.Errorf("unexpected body stats %+v", stats)
	}

	next := c.Flush(5, Sample{})
	if next.WindowStartTick != 2 || next.Ticks != 0 || next.Adds != 0 || next.TouchedPerTick != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.SimTimeSec != 1 {
		t.Errorf("sim time is cumulative, got %v", next.SimTimeSec)
	}
}

func TestEventTypeString(t *testing.T) {
	for typ, want := range map[EventType]string{
		EventAddSource:     "add",
		EventMoveSource:    "move",
		EventRemoveSource:  "remove",
		EventRestartSource: "restart",
		EventIgnored:       "ignored",
		EventType(99):      "unknown",
	} {
		if got := typ.String(); got != want {
			t.Errorf("%d: got %q, want %q", typ, got, want)
		}
	}
}
