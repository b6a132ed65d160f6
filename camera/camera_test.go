package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/gust/linalg"
)

func near(a, b linalg.Vector2) bool {
	return math.Abs(a.X-b.X) < 0.01 && math.Abs(a.Y-b.Y) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, true)

	// Should be centered on the field
	if cam.Center != linalg.New(1280, 720) {
		t.Errorf("expected camera at (1280, 720), got %v", cam.Center)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, true)

	// Camera center should map to screen center
	s := cam.WorldToScreen(linalg.New(1280, 720))
	if !near(s, linalg.New(640, 360)) {
		t.Errorf("expected screen center (640, 360), got %v", s)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	for _, wrap := range []bool{true, false} {
		cam := New(1280, 720, 2560, 1440, wrap)
		cam.SetZoom(1.5)

		testCases := []linalg.Vector2{
			linalg.New(640, 360),  // center
			linalg.New(100, 100),  // top-left
			linalg.New(1200, 600), // near bottom-right
		}

		for _, tc := range testCases {
			w := cam.ScreenToWorld(tc)
			s := cam.WorldToScreen(w)
			if !near(s, tc) {
				t.Errorf("wrap=%v roundtrip failed: %v -> %v -> %v", wrap, tc, w, s)
			}
		}
	}
}

func TestScreenToWorld_FieldSmallerThanWindow(t *testing.T) {
	// A 400x300 field in a 1280x800 window is centered, so the top-left
	// of the field sits at (440, 250) on screen.
	cam := New(1280, 800, 400, 300, false)

	w := cam.ScreenToWorld(linalg.New(440, 250))
	if !near(w, linalg.Zero()) {
		t.Errorf("expected field origin, got %v", w)
	}

	// Outside the field stays outside: callers clamp.
	w = cam.ScreenToWorld(linalg.New(10, 10))
	if w.X >= 0 || w.Y >= 0 {
		t.Errorf("expected negative field coordinates, got %v", w)
	}
}

func TestToroidalWrap(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, true)
	cam.Center.X = 100 // Near left edge

	// Point at the right edge should appear on the left side of screen
	// (closer via toroidal distance)
	s := cam.WorldToScreen(linalg.New(2500, 720))
	if s.X >= 640 {
		t.Errorf("expected point on left of screen, got x=%f", s.X)
	}
}

func TestNoWrapUsesPlainDistance(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, false)
	cam.Center.X = 640

	s := cam.WorldToScreen(linalg.New(2500, 720))
	if s.X <= 1280 {
		t.Errorf("expected point off the right of screen, got x=%f", s.X)
	}
}

func TestPanWraps(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, true)
	cam.Center.X = 100

	// Pan left should wrap to right side of the field
	cam.Pan(-200, 0)

	if cam.Center.X < 2000 {
		t.Errorf("expected X to wrap around, got %f", cam.Center.X)
	}
}

func TestPanClampsWithoutWrap(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, false)

	cam.Pan(-5000, 0)
	if cam.Center.X != 640 {
		t.Errorf("expected X clamped to half viewport 640, got %f", cam.Center.X)
	}

	cam.Pan(0, 5000)
	if cam.Center.Y != 1080 {
		t.Errorf("expected Y clamped to 1080, got %f", cam.Center.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, true)

	// MinZoom should be max(1280/2560, 720/1440) = max(0.5, 0.5) = 0.5
	if cam.MinZoom != 0.5 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}

	cam.SetZoom(10.0) // Above max
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}
}

func TestMinZoomPreventsDeadSpace(t *testing.T) {
	// Test with asymmetric field/viewport ratios
	cam := New(800, 600, 1600, 800, true)

	// MinZoom should be max(800/1600, 600/800) = max(0.5, 0.75) = 0.75
	if math.Abs(cam.MinZoom-0.75) > 0.001 {
		t.Errorf("expected MinZoom 0.75, got %f", cam.MinZoom)
	}

	// At min zoom, visible area should exactly fit the field in limiting dimension
	cam.SetZoom(cam.MinZoom)
	visibleH := cam.ViewportH / cam.Zoom // 600 / 0.75 = 800 = worldH
	if math.Abs(visibleH-cam.WorldH) > 0.01 {
		t.Errorf("at min zoom, visible height %f should equal field height %f", visibleH, cam.WorldH)
	}
}

func TestMinZoomFitsBoundedField(t *testing.T) {
	// min(800/1600, 600/800) = 0.5: the whole field fits
	cam := New(800, 600, 1600, 800, false)
	if math.Abs(cam.MinZoom-0.5) > 0.001 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	// Never magnify a small field beyond 1:1 by default
	small := New(1280, 800, 400, 300, false)
	if small.MinZoom != 1 || small.Zoom != 1 {
		t.Errorf("expected MinZoom and Zoom 1, got %f and %f", small.MinZoom, small.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, true)

	// Camera centered at (1280, 720), viewport 1280x720
	// Visible range in field coords: (640, 360) to (1920, 1080)

	if !cam.IsVisible(linalg.New(1280, 720), 10) {
		t.Error("center should be visible")
	}

	if cam.IsVisible(linalg.New(2400, 1300), 10) {
		t.Error("far point should not be visible")
	}

	// Point near edge with large radius should be visible
	if !cam.IsVisible(linalg.New(600, 720), 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestGhostPositions(t *testing.T) {
	cam := New(1000, 1000, 1000, 1000, true)

	// Near the right edge of the view: one ghost shifted a full field left.
	ghosts := cam.GhostPositions(linalg.New(995, 500), 10)
	if len(ghosts) != 1 {
		t.Fatalf("expected 1 ghost, got %d", len(ghosts))
	}
	if !near(ghosts[0], linalg.New(-5, 500)) {
		t.Errorf("expected ghost at (-5, 500), got %v", ghosts[0])
	}

	// Corner: horizontal, vertical and diagonal ghosts.
	if n := len(cam.GhostPositions(linalg.New(995, 995), 10)); n != 3 {
		t.Errorf("expected 3 ghosts in the corner, got %d", n)
	}

	// Well inside: none.
	if n := len(cam.GhostPositions(linalg.New(500, 500), 10)); n != 0 {
		t.Errorf("expected no ghosts, got %d", n)
	}

	cam.Wrap = false
	if g := cam.GhostPositions(linalg.New(995, 995), 10); g != nil {
		t.Errorf("expected no ghosts without wrap, got %v", g)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, true)
	cam.Center = linalg.New(500, 500)
	cam.Zoom = 2.5

	cam.Reset()

	if cam.Center != linalg.New(1280, 720) {
		t.Errorf("expected position (1280, 720), got %v", cam.Center)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
