// Package renderer provides rendering utilities.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gust/camera"
	"github.com/pthm-cable/gust/linalg"
	"github.com/pthm-cable/gust/systems"
)

// FieldRenderer draws the wind field: per-cell vectors, a magnitude heatmap
// and cell boundaries.
type FieldRenderer struct {
	// VectorScale converts a vector at MaxSpeed into this many cell sizes.
	VectorScale float64
}

// NewFieldRenderer creates a new field renderer.
func NewFieldRenderer() *FieldRenderer {
	return &FieldRenderer{VectorScale: 0.9}
}

// DrawHeatmap fills every visible non-zero cell, brighter for stronger wind.
func (r *FieldRenderer) DrawHeatmap(cam *camera.Camera, field *systems.VectorField, maxSpeed float64) {
	size := float32(field.CellSize() * cam.Zoom)
	half := field.CellSize() / 2
	_ = field.ForEachCell(func(c systems.Cell) {
		if c.Vector.IsZero() || !cam.IsVisible(c.Center, half) {
			return
		}
		t := min(c.Vector.Len()/maxSpeed, 1)
		corner := cam.WorldToScreen(linalg.New(c.Center.X-half, c.Center.Y-half))
		rl.DrawRectangleV(toRL(corner), rl.Vector2{X: size, Y: size}, heatColor(t))
	})
}

// DrawVectors draws each visible non-zero cell's vector as a line from its
// center, tinted by magnitude.
func (r *FieldRenderer) DrawVectors(cam *camera.Camera, field *systems.VectorField, maxSpeed float64) {
	cs := field.CellSize()
	scale := r.VectorScale * cs / maxSpeed
	thick := float32(max(cam.Zoom, 1))

	_ = field.ForEachCell(func(c systems.Cell) {
		if c.Vector.IsZero() || !cam.IsVisible(c.Center, cs) {
			return
		}
		t := min(c.Vector.Len()/maxSpeed, 1)
		from := cam.WorldToScreen(c.Center)
		d := c.Vector.Scaled(scale * cam.Zoom)
		to := linalg.Add(from, d)

		color := rl.Color{R: 120, G: uint8(160 + 95*t), B: 255, A: uint8(60 + 195*t)}
		rl.DrawLineEx(toRL(from), toRL(to), thick, color)
	})
}

// DrawGrid draws the visible cell boundaries.
func (r *FieldRenderer) DrawGrid(cam *camera.Camera, field *systems.VectorField) {
	opts := field.Options()
	cs := opts.CellSize
	color := rl.Color{R: 255, G: 255, B: 255, A: 20}

	for col := 0; col <= field.Columns(); col++ {
		x := min(float64(col)*cs, opts.Width)
		a := cam.WorldToScreen(linalg.New(x, 0))
		b := cam.WorldToScreen(linalg.New(x, opts.Height))
		if cam.Wrap {
			// Wrapping folds the far edge; draw a full-height line instead.
			a.Y, b.Y = 0, cam.ViewportH
		}
		rl.DrawLineV(toRL(a), toRL(b), color)
	}
	for row := 0; row <= field.Rows(); row++ {
		y := min(float64(row)*cs, opts.Height)
		a := cam.WorldToScreen(linalg.New(0, y))
		b := cam.WorldToScreen(linalg.New(opts.Width, y))
		if cam.Wrap {
			a.X, b.X = 0, cam.ViewportW
		}
		rl.DrawLineV(toRL(a), toRL(b), color)
	}
}

// DrawCellHighlight outlines one cell.
func (r *FieldRenderer) DrawCellHighlight(cam *camera.Camera, c systems.Cell) {
	half := c.Size / 2
	corner := cam.WorldToScreen(linalg.New(c.Center.X-half, c.Center.Y-half))
	size := float32(c.Size * cam.Zoom)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(corner.X), Y: float32(corner.Y), Width: size, Height: size},
		1, rl.Yellow,
	)
}

// heatColor maps t in [0,1] from deep blue to warm white.
func heatColor(t float64) rl.Color {
	return rl.Color{
		R: uint8(20 + 235*t),
		G: uint8(30 + 150*t*t),
		B: uint8(80 + 60*(1-t)),
		A: uint8(40 + 140*t),
	}
}

func toRL(v linalg.Vector2) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
