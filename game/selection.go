package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gust/linalg"
	"github.com/pthm-cable/gust/systems"
	"github.com/pthm-cable/gust/ui"
)

// HoveredCell holds the cell under the mouse cursor.
type HoveredCell struct {
	Cell    systems.Cell
	Sources int // live tunnels whose reach covers the cell
	Bodies  int // bodies inside the cell
}

// updateHover refreshes the hovered cell while the debug overlay is shown.
func (g *Game) updateHover() {
	if !g.overlays.IsEnabled(ui.OverlayDebug) {
		g.hovered = nil
		return
	}
	m := rl.GetMousePosition()
	g.hovered = g.findCellAt(g.camera.ScreenToWorld(linalg.New(float64(m.X), float64(m.Y))))
}

// findCellAt inspects the published cell containing p, or returns nil if p
// is outside the grid.
func (g *Game) findCellAt(p linalg.Vector2) *HoveredCell {
	snap := g.Snapshot()
	cell, ok, err := snap.Field.CellAtPixel(p)
	if err != nil || !ok {
		return nil
	}

	h := &HoveredCell{Cell: cell}
	params := snap.Field.Params()
	for _, t := range snap.Sources {
		if t.Wind.Len() < params.MinWindLength {
			continue
		}
		if t.Segment().DistanceFrom(cell.Center) <= params.DistanceThreshold {
			h.Sources++
		}
	}
	for i := range snap.Bodies {
		if c, ok, _ := snap.Field.CellAtPixel(snap.Bodies[i].Position); ok && c.Index == cell.Index {
			h.Bodies++
		}
	}
	return h
}
