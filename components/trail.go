package components

import "github.com/pthm-cable/gust/linalg"

// Trail is the path log of a KindTrail body: waypoints sampled from the head
// position whenever it has moved at least MinSpacing since the last one.
type Trail struct {
	Waypoints    []linalg.Vector2
	MinSpacing   float64
	MaxWaypoints int // 0 = unbounded; otherwise oldest waypoints are dropped
}

// NewTrail starts a trail at the given head position.
func NewTrail(head linalg.Vector2, minSpacing float64, maxWaypoints int) Trail {
	return Trail{
		Waypoints:    []linalg.Vector2{head},
		MinSpacing:   minSpacing,
		MaxWaypoints: maxWaypoints,
	}
}

// Commit records head if it is far enough from the last waypoint.
// Returns true if a waypoint was appended.
func (t *Trail) Commit(head linalg.Vector2) bool {
	if n := len(t.Waypoints); n > 0 && t.Waypoints[n-1].DistanceTo(head) < t.MinSpacing {
		return false
	}
	t.Waypoints = append(t.Waypoints, head)
	if t.MaxWaypoints > 0 && len(t.Waypoints) > t.MaxWaypoints {
		drop := len(t.Waypoints) - t.MaxWaypoints
		t.Waypoints = append(t.Waypoints[:0], t.Waypoints[drop:]...)
	}
	return true
}

// Reset discards the path and starts again at head.
func (t *Trail) Reset(head linalg.Vector2) {
	t.Waypoints = append(t.Waypoints[:0], head)
}

// Displacements returns the deltas between consecutive waypoints.
func (t *Trail) Displacements() []linalg.Vector2 {
	if len(t.Waypoints) < 2 {
		return nil
	}
	out := make([]linalg.Vector2, 0, len(t.Waypoints)-1)
	for i := 1; i < len(t.Waypoints); i++ {
		out = append(out, linalg.Subtract(t.Waypoints[i], t.Waypoints[i-1]))
	}
	return out
}

// Len returns the number of waypoints.
func (t *Trail) Len() int {
	return len(t.Waypoints)
}

// Clone returns a copy that shares no backing storage with t.
func (t *Trail) Clone() Trail {
	c := *t
	c.Waypoints = append([]linalg.Vector2(nil), t.Waypoints...)
	return c
}
