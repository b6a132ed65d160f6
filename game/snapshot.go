package game

import (
	"github.com/pthm-cable/gust/components"
	"github.com/pthm-cable/gust/linalg"
	"github.com/pthm-cable/gust/systems"
	"github.com/pthm-cable/gust/telemetry"
)

// Snapshot is the read-only state published after each tick. Nothing in a
// published snapshot is written again, so it may be read from any goroutine.
type Snapshot struct {
	Tick      int32
	ElapsedMs float64 // frame time the tick ran with

	// Field is unconfigured until InitializeGrid.
	Field   *systems.VectorField
	Sources []systems.WindTunnel
	Bodies  []BodyView

	Influence systems.Influence
	Physics   systems.PhysicsStats
}

// BodyView is a copy of one body's state.
type BodyView struct {
	Kind      components.Kind
	Position  linalg.Vector2
	Velocity  linalg.Vector2
	Waypoints []linalg.Vector2 // trail bodies only
}

// Snapshot returns the most recently published state.
func (g *Game) Snapshot() *Snapshot {
	return g.snapshot.Load()
}

// publish replaces the published state in one store.
func (g *Game) publish(inf systems.Influence, phys systems.PhysicsStats, elapsedMs float64) {
	s := &Snapshot{
		Tick:      g.tick,
		ElapsedMs: elapsedMs,
		Field:     g.field,
		Sources:   g.winds.Tunnels(),
		Influence: inf,
		Physics:   phys,
	}

	query := g.bodyFilter.Query()
	for query.Next() {
		body := query.Get()
		view := BodyView{
			Kind:     components.KindEntity,
			Position: body.Position,
			Velocity: body.Velocity,
		}
		if e := query.Entity(); g.trailMap.Has(e) {
			view.Kind = components.KindTrail
			view.Waypoints = g.trailMap.Get(e).Clone().Waypoints
		}
		s.Bodies = append(s.Bodies, view)
	}

	g.snapshot.Store(s)
}

// Telemetry converts the snapshot to its JSON dump form.
func (s *Snapshot) Telemetry(seed int64) *telemetry.Snapshot {
	opts := s.Field.Options()
	out := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		RNGSeed:  seed,
		Width:    opts.Width,
		Height:   opts.Height,
		CellSize: opts.CellSize,
		Rows:     s.Field.Rows(),
		Columns:  s.Field.Columns(),
		Tick:     s.Tick,
	}

	_ = s.Field.ForEachCell(func(c systems.Cell) {
		out.Cells = append(out.Cells, [2]float64{c.Vector.X, c.Vector.Y})
	})

	for _, t := range s.Sources {
		out.Sources = append(out.Sources, telemetry.SourceState{
			ID:    t.ID,
			FromX: t.From.X,
			FromY: t.From.Y,
			WindX: t.Wind.X,
			WindY: t.Wind.Y,
		})
	}

	for _, b := range s.Bodies {
		state := telemetry.BodyState{
			Kind: b.Kind,
			X:    b.Position.X,
			Y:    b.Position.Y,
			VelX: b.Velocity.X,
			VelY: b.Velocity.Y,
		}
		for _, w := range b.Waypoints {
			state.Waypoints = append(state.Waypoints, [2]float64{w.X, w.Y})
		}
		out.Bodies = append(out.Bodies, state)
	}

	return out
}
