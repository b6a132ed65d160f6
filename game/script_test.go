package game

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/gust/linalg"
)

func kinds(cmds []Command) []CommandKind {
	out := make([]CommandKind, len(cmds))
	for i, c := range cmds {
		out[i] = c.Kind
	}
	return out
}

// ---------- schedule ----------

func TestGesture_End(t *testing.T) {
	gs := Gesture{ID: "a", Start: 5, TicksPerPoint: 2, Points: [][2]float64{{0, 0}, {10, 0}, {10, 10}}}
	if got := gs.End(); got != 10 {
		t.Errorf("expected end 10, got %d", got)
	}

	single := Gesture{ID: "b", Start: 3, TicksPerPoint: 4, Points: [][2]float64{{1, 1}}}
	if got := single.End(); got != 4 {
		t.Errorf("expected single-point gesture to end the tick after start, got %d", got)
	}
}

func TestScript_Commands(t *testing.T) {
	s := &Script{Gestures: []Gesture{{
		ID:            "a",
		Start:         5,
		TicksPerPoint: 2,
		Points:        [][2]float64{{0, 0}, {10, 0}, {10, 10}},
	}}}

	tests := []struct {
		tick  int32
		kind  CommandKind
		point linalg.Vector2
		none  bool
	}{
		{tick: 4, none: true},
		{tick: 5, kind: CommandAdd, point: linalg.New(0, 0)},
		{tick: 6, kind: CommandMove, point: linalg.New(5, 0)},
		{tick: 7, kind: CommandMove, point: linalg.New(10, 0)},
		{tick: 8, kind: CommandMove, point: linalg.New(10, 5)},
		{tick: 9, kind: CommandMove, point: linalg.New(10, 10)},
		{tick: 10, kind: CommandRemove},
		{tick: 11, none: true},
	}

	for _, tt := range tests {
		cmds := s.Commands(tt.tick)
		if tt.none {
			if len(cmds) != 0 {
				t.Errorf("tick %d: expected no commands, got %v", tt.tick, kinds(cmds))
			}
			continue
		}
		if len(cmds) != 1 {
			t.Fatalf("tick %d: expected one command, got %v", tt.tick, kinds(cmds))
		}
		c := cmds[0]
		if c.Kind != tt.kind || c.ID != "a" {
			t.Errorf("tick %d: expected %s a, got %s %s", tt.tick, tt.kind, c.Kind, c.ID)
		}
		if tt.kind != CommandRemove && c.Point.DistanceTo(tt.point) > 1e-9 {
			t.Errorf("tick %d: expected point %v, got %v", tt.tick, tt.point, c.Point)
		}
	}

	if got := s.Duration(); got != 11 {
		t.Errorf("expected duration 11, got %d", got)
	}
}

func TestScript_CommandsNil(t *testing.T) {
	var s *Script
	if cmds := s.Commands(0); cmds != nil {
		t.Errorf("expected nil script to yield nothing, got %v", cmds)
	}
}

func TestScript_OverlappingGestures(t *testing.T) {
	s := &Script{Gestures: []Gesture{
		{ID: "a", Start: 0, TicksPerPoint: 1, Points: [][2]float64{{0, 0}, {1, 0}}},
		{ID: "b", Start: 1, TicksPerPoint: 1, Points: [][2]float64{{5, 5}, {6, 5}}},
	}}

	cmds := s.Commands(1)
	if len(cmds) != 2 {
		t.Fatalf("expected two commands, got %v", kinds(cmds))
	}
	if cmds[0].ID != "a" || cmds[0].Kind != CommandMove {
		t.Errorf("expected move a first, got %s %s", cmds[0].Kind, cmds[0].ID)
	}
	if cmds[1].ID != "b" || cmds[1].Kind != CommandAdd {
		t.Errorf("expected add b second, got %s %s", cmds[1].Kind, cmds[1].ID)
	}
}

// ---------- parsing ----------

func TestParseScript(t *testing.T) {
	data := []byte(`
gestures:
  - id: left
    start: 2
    ticks_per_point: 0
    points: [[10, 20], [30, 40]]
  - id: right
    points: [[5, 5]]
`)
	s, err := ParseScript(data)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if len(s.Gestures) != 2 {
		t.Fatalf("expected 2 gestures, got %d", len(s.Gestures))
	}

	left := s.Gestures[0]
	if left.ID != "left" || left.Start != 2 || left.TicksPerPoint != 1 {
		t.Errorf("unexpected gesture %+v", left)
	}
	if left.Points[1] != [2]float64{30, 40} {
		t.Errorf("expected second point (30, 40), got %v", left.Points[1])
	}
}

func TestParseScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "gestures: [oops"},
		{"missing id", "gestures:\n  - points: [[1, 1]]\n"},
		{"no points", "gestures:\n  - id: a\n"},
		{"negative start", "gestures:\n  - id: a\n    start: -1\n    points: [[1, 1]]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// ---------- random ----------

func TestRandomScript(t *testing.T) {
	s := RandomScript(rand.New(rand.NewSource(3)), 400, 300, 6, 30)

	if len(s.Gestures) != 6 {
		t.Fatalf("expected 6 gestures, got %d", len(s.Gestures))
	}

	seen := make(map[string]bool)
	for i, gs := range s.Gestures {
		if seen[gs.ID] {
			t.Errorf("duplicate gesture id %q", gs.ID)
		}
		seen[gs.ID] = true

		if gs.TicksPerPoint < 1 {
			t.Errorf("gesture %d: ticks per point %d", i, gs.TicksPerPoint)
		}
		if i > 0 && gs.Start <= s.Gestures[i-1].Start {
			t.Errorf("gesture %d: expected staggered starts", i)
		}
		for _, p := range gs.Points {
			if p[0] < 0 || p[0] > 400 || p[1] < 0 || p[1] > 300 {
				t.Errorf("gesture %d: point %v outside area", i, p)
			}
		}
	}
}

func TestRandomScript_Deterministic(t *testing.T) {
	a := RandomScript(rand.New(rand.NewSource(9)), 200, 200, 4, 12)
	b := RandomScript(rand.New(rand.NewSource(9)), 200, 200, 4, 12)

	for i := range a.Gestures {
		ga, gb := a.Gestures[i], b.Gestures[i]
		if ga.ID != gb.ID || ga.Start != gb.Start || len(ga.Points) != len(gb.Points) {
			t.Fatalf("gesture %d differs: %+v vs %+v", i, ga, gb)
		}
		for k := range ga.Points {
			if ga.Points[k] != gb.Points[k] {
				t.Errorf("gesture %d point %d differs", i, k)
			}
		}
	}
}
