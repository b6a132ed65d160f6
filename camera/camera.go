// Package camera provides a 2D camera system for viewport control.
package camera

import (
	"math"

	"github.com/pthm-cable/gust/linalg"
)

// Camera controls the viewport into the wind field.
// Supports pan and zoom, with toroidal wrapping when the field wraps.
type Camera struct {
	// Center is the camera center in field coordinates
	Center linalg.Vector2

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Field dimensions
	WorldW, WorldH float64

	// Wrap makes the field toroidal: pan wraps and edges show ghosts.
	Wrap bool

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the field with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float64, wrap bool) *Camera {
	c := &Camera{
		Center:    linalg.New(worldW/2, worldH/2),
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		Wrap:      wrap,
		MaxZoom:   4.0,
	}
	c.MinZoom = c.minZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	return c
}

// minZoom keeps a wrapping viewport inside one copy of the field, and lets a
// bounded field be zoomed out until it fits entirely.
func (c *Camera) minZoom() float64 {
	zx := c.ViewportW / c.WorldW
	zy := c.ViewportH / c.WorldH
	if c.Wrap {
		return math.Max(zx, zy)
	}
	return math.Min(math.Min(zx, zy), 1)
}

// delta returns the offset from the camera center to p, the shortest way
// round when wrapping.
func (c *Camera) delta(p linalg.Vector2) linalg.Vector2 {
	d := linalg.Subtract(p, c.Center)
	if c.Wrap {
		d.X = toroidalDelta(d.X, c.WorldW)
		d.Y = toroidalDelta(d.Y, c.WorldH)
	}
	return d
}

// WorldToScreen converts field coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p linalg.Vector2) linalg.Vector2 {
	d := c.delta(p)
	return linalg.New(c.ViewportW/2+d.X*c.Zoom, c.ViewportH/2+d.Y*c.Zoom)
}

// ScreenToWorld converts screen coordinates to field coordinates.
// Results are wrapped into the field when wrapping; otherwise they may lie
// outside it.
func (c *Camera) ScreenToWorld(s linalg.Vector2) linalg.Vector2 {
	w := linalg.New(
		c.Center.X+(s.X-c.ViewportW/2)/c.Zoom,
		c.Center.Y+(s.Y-c.ViewportH/2)/c.Zoom,
	)
	if c.Wrap {
		w.X = mod(w.X, c.WorldW)
		w.Y = mod(w.Y, c.WorldH)
	}
	return w
}

// IsVisible returns true if a circle at p with given radius could be visible
// on screen (conservative check for culling).
func (c *Camera) IsVisible(p linalg.Vector2, radius float64) bool {
	d := c.delta(p)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(d.X) <= halfW && math.Abs(d.Y) <= halfH
}

// GhostPositions returns additional screen positions for points near the
// view edge of a wrapping field, so they appear on both sides.
// Returns up to 3 additional positions.
func (c *Camera) GhostPositions(p linalg.Vector2, radius float64) []linalg.Vector2 {
	if !c.Wrap {
		return nil
	}

	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	d := c.delta(p)

	var hx, vy float64
	needsH, needsV := false, false
	if d.X > halfW-radius && d.X < halfW+radius {
		needsH = true
		hx = c.ViewportW/2 + (d.X-c.WorldW)*c.Zoom
	} else if d.X < -halfW+radius && d.X > -halfW-radius {
		needsH = true
		hx = c.ViewportW/2 + (d.X+c.WorldW)*c.Zoom
	}
	if d.Y > halfH-radius && d.Y < halfH+radius {
		needsV = true
		vy = c.ViewportH/2 + (d.Y-c.WorldH)*c.Zoom
	} else if d.Y < -halfH+radius && d.Y > -halfH-radius {
		needsV = true
		vy = c.ViewportH/2 + (d.Y+c.WorldH)*c.Zoom
	}

	s := c.WorldToScreen(p)
	var ghosts []linalg.Vector2
	if needsH {
		ghosts = append(ghosts, linalg.New(hx, s.Y))
	}
	if needsV {
		ghosts = append(ghosts, linalg.New(s.X, vy))
	}
	if needsH && needsV {
		ghosts = append(ghosts, linalg.New(hx, vy))
	}
	return ghosts
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.minZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.constrain()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center.X += dx / c.Zoom
	c.Center.Y += dy / c.Zoom
	c.constrain()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.constrain()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.Center = linalg.New(c.WorldW/2, c.WorldH/2)
	c.Zoom = clamp(1.0, c.MinZoom, c.MaxZoom)
}

// VisibleWorldBounds returns the field-coordinate corners of the visible area.
// For wrapping fields, the area may extend past the field edges.
func (c *Camera) VisibleWorldBounds() (lo, hi linalg.Vector2) {
	half := linalg.New(c.ViewportW/(2*c.Zoom), c.ViewportH/(2*c.Zoom))
	return linalg.Subtract(c.Center, half), linalg.Add(c.Center, half)
}

// constrain wraps the center on a toroidal field, or keeps the view over
// the field otherwise. A field smaller than the view stays centered.
func (c *Camera) constrain() {
	if c.Wrap {
		c.Center.X = mod(c.Center.X, c.WorldW)
		c.Center.Y = mod(c.Center.Y, c.WorldH)
		return
	}
	c.Center.X = constrainAxis(c.Center.X, c.ViewportW/(2*c.Zoom), c.WorldW)
	c.Center.Y = constrainAxis(c.Center.Y, c.ViewportH/(2*c.Zoom), c.WorldH)
}

func constrainAxis(center, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

// toroidalDelta folds d into (-size/2, size/2].
func toroidalDelta(d, size float64) float64 {
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}
