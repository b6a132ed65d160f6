package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gust/components"
	"github.com/pthm-cable/gust/systems"
	"github.com/pthm-cable/gust/ui"
)

const controlsLegend = "[Drag] Wind  [Space] Pause  [</>] Speed  [Tab] Overlays  [S] Snapshot  [C] Clear  [Arrows/Wheel] Camera"

// Draw renders the published state and the UI.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 8, G: 10, B: 16, A: 255})

	snap := g.Snapshot()
	if g.camera != nil && snap.Field.Configured() {
		g.drawActiveOverlays(snap)
	}

	g.drawUI(snap)

	rl.EndDrawing()
}

// drawUI renders the HUD, the overlay panel and, in debug mode, the
// diagnostic panels.
func (g *Game) drawUI(snap *Snapshot) {
	trails := 0
	for i := range snap.Bodies {
		if snap.Bodies[i].Kind == components.KindTrail {
			trails++
		}
	}

	g.hud.Draw(ui.HUDData{
		Title:     "Gust",
		Tick:      snap.Tick,
		ElapsedMs: snap.ElapsedMs,
		Sources:   len(snap.Sources),
		Bodies:    len(snap.Bodies),
		Trails:    trails,
		Speed:     g.stepsPerUpdate,
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
	g.controls.Draw(g.overlays)

	if !g.overlays.IsEnabled(ui.OverlayDebug) {
		return
	}

	g.perfPanel.Draw(g.perfCollector.Stats())
	g.quickStats.Draw(fieldQuickStats(snap))
	if g.hovered != nil {
		g.inspector.Draw(ui.InspectorData{
			Cell:     g.hovered.Cell,
			MaxSpeed: g.cfg.Field.MaxWindSpeed,
			Sources:  g.hovered.Sources,
			Bodies:   g.hovered.Bodies,
			HasCell:  true,
		})
	}
	g.drawTuningPanel()
}

// drawTuningPanel runs the raygui controls and applies their changes.
func (g *Game) drawTuningPanel() {
	state := ui.TuningState{
		StepsPerUpdate: g.stepsPerUpdate,
		BaseRate:       g.baseRate,
		Paused:         g.paused,
	}
	actions := g.tuning.Draw(&state)

	g.stepsPerUpdate = max(state.StepsPerUpdate, 1)
	g.baseRate = state.BaseRate
	g.paused = state.Paused

	if actions.Snapshot {
		if _, err := g.SaveSnapshot(); err != nil {
			slog.Error("failed to save snapshot", "error", err)
		}
	}
	if actions.ClearWind {
		g.ClearWind()
	}
	if actions.ResetCamera && g.camera != nil {
		g.camera.Reset()
	}
}

// fieldQuickStats summarizes the published field and bodies.
func fieldQuickStats(snap *Snapshot) ui.QuickStatsData {
	var q ui.QuickStatsData
	var sum float64
	_ = snap.Field.ForEachCell(func(c systems.Cell) {
		q.Cells++
		m := c.Vector.Len()
		if m == 0 {
			return
		}
		q.ActiveCells++
		sum += m
		q.MaxMagnitude = max(q.MaxMagnitude, m)
	})
	if q.Cells > 0 {
		q.MeanMagnitude = sum / float64(q.Cells)
	}

	var speed float64
	for i := range snap.Bodies {
		speed += snap.Bodies[i].Velocity.Len()
	}
	if len(snap.Bodies) > 0 {
		q.MeanSpeed = speed / float64(len(snap.Bodies))
	}
	return q
}
