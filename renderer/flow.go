package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gust/camera"
	"github.com/pthm-cable/gust/linalg"
)

// TrailRenderer draws trail body paths as fading polylines.
type TrailRenderer struct {
	Width float32 // line width at the head, px
}

// NewTrailRenderer creates a new trail renderer.
func NewTrailRenderer() *TrailRenderer {
	return &TrailRenderer{Width: 2}
}

// Begin starts additive blending for a batch of trails.
func (r *TrailRenderer) Begin() {
	rl.BeginBlendMode(rl.BlendAdditive)
}

// End finishes the batch.
func (r *TrailRenderer) End() {
	rl.EndBlendMode()
}

// Draw renders one trail from its oldest waypoint to head, fading toward
// the tail. Segments that straddle a wrapped edge are skipped.
func (r *TrailRenderer) Draw(cam *camera.Camera, waypoints []linalg.Vector2, head linalg.Vector2) {
	n := len(waypoints)
	if n == 0 {
		return
	}

	prev := cam.WorldToScreen(head)
	jump := maxJump(cam)
	for j := n - 1; j >= 0; j-- {
		cur := cam.WorldToScreen(waypoints[j])

		fade := float32(j+1) / float32(n)
		fade *= fade // Quadratic falloff
		alpha := 160 * fade
		if alpha >= 1 && prev.DistanceTo(cur) < jump {
			color := rl.Color{R: 60, G: 140, B: 190, A: uint8(alpha)}
			rl.DrawLineEx(toRL(prev), toRL(cur), max(r.Width*fade*float32(cam.Zoom), 1), color)
		}
		prev = cur
	}
}

// maxJump is the screen distance beyond which two consecutive points must
// be on opposite sides of a wrapped edge.
func maxJump(cam *camera.Camera) float64 {
	return min(cam.WorldW, cam.WorldH) * cam.Zoom / 2
}
