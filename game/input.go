package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gust/linalg"
	"github.com/pthm-cable/gust/ui"
)

// mouseGesture is the wind source id of the primary pointer.
const mouseGesture = "mouse"

// handleInput processes keyboard and pointer input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		if _, err := g.SaveSnapshot(); err != nil {
			slog.Error("failed to save snapshot", "error", err)
		}
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.ClearWind()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		g.logWorldState()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.logPerfStats()
	}

	// Overlay toggles
	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.overlays.HandleKeyPress(key)
		}
	}

	// Camera controls
	g.handleCameraInput()

	// Wind gestures and inspection need a grid
	if g.camera == nil {
		return
	}
	g.handlePointerInput()
	g.handleTouchInput()
	g.updateHover()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.camera != nil {
		g.camera.Resize(w, h)
	}
	g.layoutPanels()
}

// layoutPanels anchors the debug panels to the right edge.
func (g *Game) layoutPanels() {
	right := int32(g.screenWidth) - 230
	g.perfPanel.SetPosition(right, 10)
	g.quickStats.SetPosition(right, 120)
	g.inspector.SetPosition(right, 240)
	g.tuning.SetPosition(float32(g.screenWidth)-g.tuning.Width()-10, float32(g.screenHeight)-230)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Pan speed scales inversely with zoom for natural feel
	panSpeed := 8.0 / g.camera.Zoom

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1.0 + float64(wheelMove)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handlePointerInput turns a left-button drag into the "mouse" wind source.
// Presses on the tuning panel belong to the panel.
func (g *Game) handlePointerInput() {
	mouse := rl.GetMousePosition()

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		if g.overlays.IsEnabled(ui.OverlayDebug) && rl.CheckCollisionPointRec(mouse, g.tuning.Bounds()) {
			return
		}
		g.AddWindSource(mouseGesture, g.pointerToField(mouse))
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			g.MoveWindSource(mouseGesture, g.pointerToField(mouse))
		}
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		g.RemoveWindSource(mouseGesture)
	}
}

// handleTouchInput maps every touch point after the first to its own wind
// source. The first touch is reported as the mouse.
func (g *Game) handleTouchInput() {
	seen := make(map[int32]bool, len(g.touches))

	for i := int32(1); i < int32(rl.GetTouchPointCount()); i++ {
		tid := rl.GetTouchPointId(i)
		p := g.pointerToField(rl.GetTouchPosition(i))
		seen[tid] = true

		last, live := g.touches[tid]
		switch {
		case !live:
			g.AddWindSource(touchGesture(tid), p)
		case last != p:
			g.MoveWindSource(touchGesture(tid), p)
		}
		g.touches[tid] = p
	}

	for tid := range g.touches {
		if !seen[tid] {
			g.RemoveWindSource(touchGesture(tid))
			delete(g.touches, tid)
		}
	}
}

func touchGesture(id int32) string {
	return fmt.Sprintf("touch-%d", id)
}

// pointerToField maps a screen position into the field, clamped to the
// grid so drags that leave the window keep a valid tip.
func (g *Game) pointerToField(s rl.Vector2) linalg.Vector2 {
	p := g.camera.ScreenToWorld(linalg.New(float64(s.X), float64(s.Y)))
	opts := g.field.Options()
	p.X = clamp(p.X, 0, opts.Width)
	p.Y = clamp(p.Y, 0, opts.Height)
	return p
}
