package components

import (
	"testing"

	"github.com/pthm-cable/gust/linalg"
)

func TestTrailCommitRespectsSpacing(t *testing.T) {
	tr := NewTrail(linalg.New(0, 0), 5, 0)

	if tr.Commit(linalg.New(3, 0)) {
		t.Error("expected no waypoint below min spacing")
	}
	if !tr.Commit(linalg.New(5, 0)) {
		t.Error("expected waypoint at min spacing")
	}
	if !tr.Commit(linalg.New(5, 6)) {
		t.Error("expected waypoint after moving 6px")
	}

	if tr.Len() != 3 {
		t.Fatalf("expected 3 waypoints, got %d", tr.Len())
	}

	d := tr.Displacements()
	if len(d) != 2 || d[0] != linalg.New(5, 0) || d[1] != linalg.New(0, 6) {
		t.Errorf("unexpected displacements %v", d)
	}
}

func TestTrailDropsOldestOverCap(t *testing.T) {
	tr := NewTrail(linalg.New(0, 0), 1, 3)
	for i := 1; i <= 5; i++ {
		tr.Commit(linalg.New(float64(i*10), 0))
	}

	if tr.Len() != 3 {
		t.Fatalf("expected 3 waypoints, got %d", tr.Len())
	}
	if tr.Waypoints[0] != linalg.New(30, 0) || tr.Waypoints[2] != linalg.New(50, 0) {
		t.Errorf("expected newest waypoints kept, got %v", tr.Waypoints)
	}
}

func TestTrailResetAndClone(t *testing.T) {
	tr := NewTrail(linalg.New(0, 0), 1, 0)
	tr.Commit(linalg.New(10, 0))

	c := tr.Clone()
	tr.Reset(linalg.New(99, 99))

	if tr.Len() != 1 || tr.Waypoints[0] != linalg.New(99, 99) {
		t.Errorf("unexpected trail after reset: %v", tr.Waypoints)
	}
	if c.Len() != 2 || c.Waypoints[1] != linalg.New(10, 0) {
		t.Errorf("clone shares storage with original: %v", c.Waypoints)
	}
}
