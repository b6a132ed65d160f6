package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders the left-side controls panel with overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	// Calculate panel height based on content
	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}

		y += 4 // Gap between categories
	}

	return c.y + panelHeight
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// QuickStatsData holds data for the quick stats section.
type QuickStatsData struct {
	ActiveCells   int
	Cells         int
	MeanMagnitude float64
	MaxMagnitude  float64
	MeanSpeed     float64
}

// QuickStatsPanel renders quick field statistics.
type QuickStatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewQuickStatsPanel creates a new quick stats panel.
func NewQuickStatsPanel(x, y, width int32) *QuickStatsPanel {
	return &QuickStatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (q *QuickStatsPanel) SetPosition(x, y int32) {
	q.x = x
	q.y = y
}

// Draw renders the quick stats panel.
func (q *QuickStatsPanel) Draw(data QuickStatsData) int32 {
	r := q.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	r.DrawPanel(q.x, q.y, q.width, lineHeight*5+padding*2)

	y := q.y + padding
	rl.DrawText("Field", q.x+padding, y, 14, rl.White)
	y += lineHeight + 2

	y = r.DrawLabelValue(q.x+padding, y, "Active", fmt.Sprintf("%d / %d", data.ActiveCells, data.Cells))
	y = r.DrawLabelValue(q.x+padding, y, "Mean |v|", fmt.Sprintf("%.2f", data.MeanMagnitude))
	y = r.DrawLabelValue(q.x+padding, y, "Max |v|", fmt.Sprintf("%.2f", data.MaxMagnitude))
	y = r.DrawLabelValue(q.x+padding, y, "Speed", fmt.Sprintf("%.2f", data.MeanSpeed))

	return y
}
