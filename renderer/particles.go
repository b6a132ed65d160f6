package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gust/camera"
	"github.com/pthm-cable/gust/linalg"
)

// ParticleRenderer draws bodies as small dots.
type ParticleRenderer struct {
	Radius float32
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{Radius: 1.5}
}

// Draw renders one body, brighter when faster. speedRatio is the body's
// speed over the cap. Bodies near a wrapped edge are drawn on both sides.
func (r *ParticleRenderer) Draw(cam *camera.Camera, pos linalg.Vector2, speedRatio float64, trail bool) {
	radius := float64(r.Radius) * max(cam.Zoom, 1)
	if !cam.IsVisible(pos, radius) {
		return
	}

	t := min(max(speedRatio, 0), 1)
	color := rl.Color{R: 200, G: 200, B: 210, A: uint8(90 + 165*t)}
	if trail {
		color = rl.Color{R: 120, G: 210, B: 255, A: 255}
		radius *= 1.5
	}

	rl.DrawCircleV(toRL(cam.WorldToScreen(pos)), float32(radius), color)
	for _, g := range cam.GhostPositions(pos, radius) {
		rl.DrawCircleV(toRL(g), float32(radius), color)
	}
}

// DrawSource renders a wind tunnel: its reach as a faint capsule, the
// segment from origin to tip, and a marker at the origin.
func DrawSource(cam *camera.Camera, from, to linalg.Vector2, reach float64, active bool) {
	a := toRL(cam.WorldToScreen(from))
	b := toRL(cam.WorldToScreen(to))
	r := float32(reach * cam.Zoom)

	color := rl.Color{R: 255, G: 180, B: 60, A: 255}
	if !active {
		// Too short to inject
		color = rl.Color{R: 150, G: 150, B: 150, A: 200}
	}
	halo := color
	halo.A = 18

	rl.DrawCircleV(a, r, halo)
	rl.DrawCircleV(b, r, halo)
	rl.DrawLineEx(a, b, 2*r, halo)

	rl.DrawLineEx(a, b, 2, color)
	rl.DrawCircleLines(int32(a.X), int32(a.Y), 6, color)
	rl.DrawCircleV(b, 3, color)
}
