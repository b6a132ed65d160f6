package ui

import (
	"fmt"
	"math"

	"github.com/pthm-cable/gust/systems"
)

// InspectorData holds the hovered cell and the field's ceiling.
type InspectorData struct {
	Cell     systems.Cell
	MaxSpeed float64 // cell magnitude ceiling, for the bar range
	Sources  int     // live tunnels reaching this cell
	Bodies   int     // bodies inside this cell
	HasCell  bool
}

func inspected(data any) InspectorData { return data.(InspectorData) }

// cellSections describes the inspector layout.
func cellSections(maxSpeed float32) []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "cell",
			Title: "Cell",
			Fields: []FieldDescriptor{
				{ID: "id", Label: "ID", Widget: WidgetText, TextGetter: func(d any) string {
					return inspected(d).Cell.ID
				}},
				{ID: "index", Label: "Index", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(inspected(d).Cell.Index)
				}},
				{ID: "center", Label: "Center", Widget: WidgetText, TextGetter: func(d any) string {
					c := inspected(d).Cell.Center
					return fmt.Sprintf("%.0f, %.0f", c.X, c.Y)
				}},
			},
		},
		{
			ID:    "wind",
			Title: "Wind",
			Fields: []FieldDescriptor{
				{ID: "magnitude", Label: "|v|", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: maxSpeed}, Getter: func(d any) float32 {
					return float32(inspected(d).Cell.Vector.Len())
				}},
				{ID: "vx", Label: "vx", Widget: WidgetCenteredBar, Range: FieldRange{Min: -maxSpeed, Max: maxSpeed}, Getter: func(d any) float32 {
					return float32(inspected(d).Cell.Vector.X)
				}},
				{ID: "vy", Label: "vy", Widget: WidgetCenteredBar, Range: FieldRange{Min: -maxSpeed, Max: maxSpeed}, Getter: func(d any) float32 {
					return float32(inspected(d).Cell.Vector.Y)
				}},
				{ID: "heading", Label: "Heading", Widget: WidgetText, Format: "%.0f deg", Getter: func(d any) float32 {
					return float32(inspected(d).Cell.Vector.Heading() * 180 / math.Pi)
				}, Visible: func(d any) bool {
					return !inspected(d).Cell.Vector.IsZero()
				}},
			},
		},
		{
			ID:    "occupancy",
			Title: "Occupancy",
			Fields: []FieldDescriptor{
				{ID: "sources", Label: "Sources", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(inspected(d).Sources)
				}},
				{ID: "bodies", Label: "Bodies", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(inspected(d).Bodies)
				}},
			},
		},
	}
}

// Inspector renders the hovered cell panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data and returns the Y
// below it.
func (ins *Inspector) Draw(data InspectorData) int32 {
	if !data.HasCell {
		return ins.y
	}

	r := ins.renderer
	padding := r.Theme.Padding
	sections := cellSections(float32(data.MaxSpeed))

	height := padding * 2
	for _, sd := range sections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	for _, sd := range sections {
		y = r.DrawSection(ins.x+padding, y, sd, data, ins.width-padding*2)
	}
	return ins.y + height
}
