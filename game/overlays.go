package game

import (
	"github.com/pthm-cable/gust/components"
	"github.com/pthm-cable/gust/renderer"
	"github.com/pthm-cable/gust/ui"
)

// drawActiveOverlays draws the field and bodies, layer by layer, for every
// enabled overlay.
func (g *Game) drawActiveOverlays(snap *Snapshot) {
	maxSpeed := g.cfg.Field.MaxWindSpeed

	if g.overlays.IsEnabled(ui.OverlayHeatmap) {
		g.fieldView.DrawHeatmap(g.camera, snap.Field, maxSpeed)
	}
	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.fieldView.DrawGrid(g.camera, snap.Field)
	}
	if g.overlays.IsEnabled(ui.OverlayFieldVectors) {
		g.fieldView.DrawVectors(g.camera, snap.Field, maxSpeed)
	}
	if g.overlays.IsEnabled(ui.OverlayTrails) {
		g.drawTrails(snap)
	}
	if g.overlays.IsEnabled(ui.OverlayBodies) {
		g.drawBodies(snap)
	}
	if g.overlays.IsEnabled(ui.OverlaySources) {
		g.drawSources(snap)
	}
	if g.hovered != nil {
		g.fieldView.DrawCellHighlight(g.camera, g.hovered.Cell)
	}
}

// drawTrails renders every trail body's path.
func (g *Game) drawTrails(snap *Snapshot) {
	g.trailView.Begin()
	for i := range snap.Bodies {
		b := &snap.Bodies[i]
		if len(b.Waypoints) > 0 {
			g.trailView.Draw(g.camera, b.Waypoints, b.Position)
		}
	}
	g.trailView.End()
}

// drawBodies renders every body as a dot.
func (g *Game) drawBodies(snap *Snapshot) {
	maxSpeed := g.cfg.Bodies.MaxSpeed
	for i := range snap.Bodies {
		b := &snap.Bodies[i]
		g.particleView.Draw(g.camera, b.Position, b.Velocity.Len()/maxSpeed, b.Kind == components.KindTrail)
	}
}

// drawSources renders the live wind tunnels.
func (g *Game) drawSources(snap *Snapshot) {
	params := snap.Field.Params()
	for _, t := range snap.Sources {
		active := t.Wind.Len() >= params.MinWindLength
		renderer.DrawSource(g.camera, t.From, t.To(), params.DistanceThreshold, active)
	}
}
