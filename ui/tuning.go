package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TuningState is the live value of every tunable the panel edits.
type TuningState struct {
	StepsPerUpdate int
	BaseRate       float64
	Paused         bool
}

// TuningActions reports one-shot buttons pressed this frame.
type TuningActions struct {
	Snapshot    bool
	ClearWind   bool
	ResetCamera bool
}

const tuningPanelHeight = 190

// TuningPanel is a raygui panel for runtime tuning.
type TuningPanel struct {
	renderer *Renderer
	x, y     float32
	width    float32
}

// NewTuningPanel creates a tuning panel; position it with SetPosition.
func NewTuningPanel() *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		width:    260,
	}
}

// SetPosition updates the panel position.
func (p *TuningPanel) SetPosition(x, y float32) {
	p.x = x
	p.y = y
}

// Width returns the panel width in pixels.
func (p *TuningPanel) Width() float32 {
	return p.width
}

// Bounds returns the screen rectangle the panel covers.
func (p *TuningPanel) Bounds() rl.Rectangle {
	return rl.Rectangle{X: p.x, Y: p.y, Width: p.width, Height: tuningPanelHeight}
}

// Draw renders the controls, updating state in place, and returns the
// buttons pressed.
func (p *TuningPanel) Draw(state *TuningState) TuningActions {
	var actions TuningActions

	pad := float32(p.renderer.Theme.Padding)
	p.renderer.DrawPanel(int32(p.x), int32(p.y), int32(p.width), tuningPanelHeight)

	x := p.x + pad
	y := p.y + pad
	inner := p.width - 2*pad

	rl.DrawText("Tuning", int32(x), int32(y), 16, rl.White)
	y += 24

	// Steps per update
	rl.DrawText(fmt.Sprintf("Steps/update: %d", state.StepsPerUpdate), int32(x), int32(y), 12, rl.LightGray)
	y += 14
	steps := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: inner - 40, Height: 16},
		"1", "10",
		float32(state.StepsPerUpdate), 1, 10,
	)
	state.StepsPerUpdate = int(sliderValue(float64(state.StepsPerUpdate), steps, 1, 10) + 0.5)
	y += 26

	// Wind injection rate
	rl.DrawText(fmt.Sprintf("Wind rate: %.2f", state.BaseRate), int32(x), int32(y), 12, rl.LightGray)
	y += 14
	rate := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: inner - 40, Height: 16},
		"0.1", "5",
		float32(state.BaseRate), 0.1, 5,
	)
	state.BaseRate = sliderValue(state.BaseRate, rate, 0.1, 5)
	y += 26

	state.Paused = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Paused", state.Paused)
	y += 26

	half := (inner - pad) / 2
	actions.Snapshot = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, "Snapshot")
	actions.ClearWind = gui.Button(rl.Rectangle{X: x + half + pad, Y: y, Width: half, Height: 24}, "Clear Wind")
	y += 30
	actions.ResetCamera = gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 24}, "Reset Camera")

	return actions
}

// sliderValue returns the slider's value if the user moved it, or prev
// otherwise. SliderBar clamps to its range, so an out-of-range value that
// merely passes through an idle slider is kept as is.
func sliderValue(prev float64, got float32, lo, hi float32) float64 {
	idle := min(max(float32(prev), lo), hi)
	if got == idle {
		return prev
	}
	return float64(got)
}
