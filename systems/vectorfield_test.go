package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/gust/linalg"
)

// fixedRand always returns the same value.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// seqRand cycles through a fixed sequence.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func newTestField(t *testing.T, w, h, cs float64, rng Rand) *VectorField {
	t.Helper()
	f, err := NewVectorField(FieldOptions{Width: w, Height: h, CellSize: cs}, DefaultInfluenceParams(), rng)
	if err != nil {
		t.Fatalf("NewVectorField: %v", err)
	}
	return f
}

func TestVectorFieldCreation(t *testing.T) {
	f := newTestField(t, 100, 100, 10, fixedRand(0.5))

	if f.Rows() != 10 || f.Columns() != 10 {
		t.Errorf("expected 10x10 grid, got %dx%d", f.Rows(), f.Columns())
	}
	if f.Len() != 100 {
		t.Errorf("expected 100 cells, got %d", f.Len())
	}

	err := f.ForEachCell(func(c Cell) {
		if !c.Vector.IsZero() {
			t.Errorf("cell %d not zero at construction: %v", c.Index, c.Vector)
		}
	})
	if err != nil {
		t.Fatalf("ForEachCell: %v", err)
	}
}

func TestVectorFieldCellCountAndIndexing(t *testing.T) {
	tests := []struct {
		w, h, cs float64
	}{
		{100, 100, 10},
		{105, 33, 10},
		{1280, 800, 10},
		{7, 7, 3},
		{1, 1, 10},
	}

	for _, tc := range tests {
		f := newTestField(t, tc.w, tc.h, tc.cs, fixedRand(0))
		rows := int(math.Ceil(tc.h / tc.cs))
		cols := int(math.Ceil(tc.w / tc.cs))
		if f.Len() != rows*cols {
			t.Errorf("%vx%v/%v: expected %d cells, got %d", tc.w, tc.h, tc.cs, rows*cols, f.Len())
		}

		next := 0
		seen := make(map[string]bool)
		f.ForEachCell(func(c Cell) {
			if c.Index != next {
				t.Errorf("expected index %d, got %d", next, c.Index)
			}
			next++
			if c.Row != c.Index/cols || c.Column != c.Index%cols {
				t.Errorf("cell %d decodes to (%d,%d), got (%d,%d)", c.Index, c.Index/cols, c.Index%cols, c.Row, c.Column)
			}
			if seen[c.ID] {
				t.Errorf("duplicate cell id %q", c.ID)
			}
			seen[c.ID] = true

			want := linalg.New(float64(c.Column)*tc.cs+tc.cs/2, float64(c.Row)*tc.cs+tc.cs/2)
			if c.Center != want {
				t.Errorf("cell %d center: expected %v, got %v", c.Index, want, c.Center)
			}
		})
	}
}

func TestCellsSequenceIsRestartable(t *testing.T) {
	f := newTestField(t, 30, 20, 10, fixedRand(0))
	cells, err := f.Cells()
	if err != nil {
		t.Fatalf("Cells: %v", err)
	}

	count := func() int {
		n := 0
		for range cells {
			n++
		}
		return n
	}
	if a, b := count(), count(); a != 6 || b != 6 {
		t.Errorf("expected 6 cells on both passes, got %d and %d", a, b)
	}

	// Early break must not panic.
	for c := range cells {
		if c.Index == 2 {
			break
		}
	}
}

func TestEmptyFieldFailsFast(t *testing.T) {
	f := EmptyVectorField()

	if f.Configured() {
		t.Fatal("empty field should not be configured")
	}

	checks := map[string]error{
		"ForEachCell": f.ForEachCell(func(Cell) {}),
		"Decay":       f.Decay(1),
	}
	_, checks["ApplyWindTunnels"] = f.ApplyWindTunnels(nil, 1)
	_, checks["Copy"] = f.Copy()
	_, checks["VectorAtPixel"] = f.VectorAtPixel(linalg.New(1, 1))
	_, checks["Cells"] = f.Cells()
	_, _, checks["CellAt"] = f.CellAt(0, 0)
	_, _, checks["CellAtPixel"] = f.CellAtPixel(linalg.New(1, 1))

	if m := f.Magnitudes(nil); len(m) != 0 {
		t.Errorf("Magnitudes: expected no cells, got %d", len(m))
	}

	for name, err := range checks {
		if !errors.Is(err, ErrDimensionNotSpecified) {
			t.Errorf("%s: expected ErrDimensionNotSpecified, got %v", name, err)
		}
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Dimension != "width" {
			t.Errorf("%s: expected ConfigError for width, got %v", name, err)
		}
	}
}

func TestNewVectorFieldRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name string
		opts FieldOptions
		dim  string
		want error
	}{
		{"nan height", FieldOptions{Width: 10, Height: math.NaN(), CellSize: 1}, "height", ErrDimensionNotSpecified},
		{"zero cell", FieldOptions{Width: 10, Height: 10, CellSize: 0}, "cellSize", ErrInvalidDimension},
		{"negative width", FieldOptions{Width: -1, Height: 10, CellSize: 1}, "width", ErrInvalidDimension},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewVectorField(tc.opts, DefaultInfluenceParams(), fixedRand(0))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var cfgErr *ConfigError
			if errors.As(err, &cfgErr) && cfgErr.Dimension != tc.dim {
				t.Errorf("expected dimension %s, got %s", tc.dim, cfgErr.Dimension)
			}
		})
	}
}

func TestVectorAtPixelMatchesGeometry(t *testing.T) {
	f := newTestField(t, 100, 100, 10, fixedRand(0))
	c, _, _ := f.CellAt(3, 7)
	c.Vector.AddInPlace(linalg.New(1, 2))

	points := []linalg.Vector2{
		linalg.New(70, 30),
		linalg.New(79.999, 39.999),
		linalg.New(75, 35),
	}
	for _, p := range points {
		v, err := f.VectorAtPixel(p)
		if err != nil {
			t.Fatalf("VectorAtPixel(%v): %v", p, err)
		}
		if v != c.Vector {
			t.Errorf("VectorAtPixel(%v) returned a different cell", p)
		}
	}
}

func TestVectorAtPixelOutsideGrid(t *testing.T) {
	f := newTestField(t, 100, 100, 10, fixedRand(0))

	for _, p := range []linalg.Vector2{
		linalg.New(-0.1, 5),
		linalg.New(5, -0.1),
		linalg.New(100, 5),
		linalg.New(5, 100),
		linalg.New(105, 5), // would alias row 1 with flat indexing
		linalg.New(math.NaN(), 5),
	} {
		v, err := f.VectorAtPixel(p)
		if err != nil {
			t.Fatalf("VectorAtPixel(%v): %v", p, err)
		}
		if v != nil {
			t.Errorf("expected no cell at %v", p)
		}
	}
}

func TestCopyDoesNotShareVectors(t *testing.T) {
	f := newTestField(t, 50, 50, 10, fixedRand(0))
	orig, _, _ := f.CellAt(1, 1)
	orig.Vector.AddInPlace(linalg.New(3, 0))

	c, err := f.Copy()
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	copied, _, _ := c.CellAt(1, 1)
	if *copied.Vector != linalg.New(3, 0) {
		t.Errorf("copy lost vector: %v", copied.Vector)
	}
	if copied.Vector == orig.Vector {
		t.Fatal("copy aliases original vector storage")
	}

	copied.Vector.AddInPlace(linalg.New(1, 0))
	if *orig.Vector != linalg.New(3, 0) {
		t.Errorf("mutating copy changed original: %v", orig.Vector)
	}
	if copied.Center != orig.Center || copied.ID != orig.ID {
		t.Error("copy geometry differs from original")
	}
}

func TestDecayOfZeroFieldIsZero(t *testing.T) {
	f := newTestField(t, 40, 40, 10, fixedRand(0.9))
	if err := f.Decay(5); err != nil {
		t.Fatalf("Decay: %v", err)
	}
	if _, err := f.ApplyWindTunnels(nil, 1); err != nil {
		t.Fatalf("ApplyWindTunnels: %v", err)
	}
	for _, m := range f.Magnitudes(nil) {
		if m != 0 {
			t.Fatalf("expected all-zero field, got magnitude %f", m)
		}
	}
}

func TestDecayFloorsAtZero(t *testing.T) {
	f := newTestField(t, 20, 10, 10, fixedRand(0))
	a, _, _ := f.CellAt(0, 0)
	b, _, _ := f.CellAt(0, 1)
	a.Vector.AddInPlace(linalg.New(0, 3))
	b.Vector.AddInPlace(linalg.New(0, 0.5))

	f.Decay(1)

	if math.Abs(a.Vector.Len()-2) > 1e-9 || a.Vector.Heading() != math.Pi/2 {
		t.Errorf("expected (0,2), got %v", a.Vector)
	}
	if !b.Vector.IsZero() {
		t.Errorf("expected zero after decay, got %v", b.Vector)
	}
}

func TestApplyWindTunnelsSingleSource(t *testing.T) {
	f := newTestField(t, 100, 100, 10, fixedRand(0.5))
	tunnel := WindTunnel{ID: "a", From: linalg.New(50, 50), Wind: linalg.New(40, 0)}

	inf, err := f.ApplyWindTunnels([]WindTunnel{tunnel}, 1)
	if err != nil {
		t.Fatalf("ApplyWindTunnels: %v", err)
	}
	if inf.Sources != 1 || inf.Touched == 0 {
		t.Errorf("unexpected influence %+v", inf)
	}

	on, _ := f.VectorAtPixel(linalg.New(70, 50))
	if l := on.Len(); l <= 0 || l > 12 {
		t.Errorf("expected on-segment magnitude in (0,12], got %f", l)
	}
	// Wind capped to 0.5 * 12 along +x.
	if math.Abs(on.X-6) > 1e-9 || on.Y != 0 {
		t.Errorf("expected (6,0), got %v", on)
	}

	far, _ := f.VectorAtPixel(linalg.New(10, 90))
	if !far.IsZero() {
		t.Errorf("expected untouched cell at (10,90), got %v", far)
	}

	// Every touched cell is within threshold, every untouched one outside.
	seg := tunnel.Segment()
	f.ForEachCell(func(c Cell) {
		near := seg.DistanceFrom(c.Center) <= 45
		if near == c.Vector.IsZero() {
			t.Errorf("cell %s (d=%.1f) touched=%v", c.ID, seg.DistanceFrom(c.Center), !c.Vector.IsZero())
		}
	})
}

func TestApplyWindTunnelsSaturates(t *testing.T) {
	f := newTestField(t, 100, 100, 10, fixedRand(0.99))
	tunnels := []WindTunnel{
		{ID: "a", From: linalg.New(50, 50), Wind: linalg.New(40, 0)},
		{ID: "b", From: linalg.New(50, 50), Wind: linalg.New(40, 0)},
		{ID: "c", From: linalg.New(50, 50), Wind: linalg.New(40, 0)},
	}

	for i := 0; i < 10; i++ {
		if _, err := f.ApplyWindTunnels(tunnels, 1); err != nil {
			t.Fatalf("ApplyWindTunnels: %v", err)
		}
	}

	for _, m := range f.Magnitudes(nil) {
		if m > 12+1e-9 {
			t.Fatalf("cell exceeded ceiling: %f", m)
		}
	}
	v, _ := f.VectorAtPixel(linalg.New(60, 50))
	if math.Abs(v.Len()-12) > 1e-9 {
		t.Errorf("expected saturated cell at 12, got %f", v.Len())
	}
}

func TestApplyWindTunnelsIgnoresShortWind(t *testing.T) {
	f := newTestField(t, 100, 100, 10, fixedRand(0.5))
	driven, _, _ := f.CellAt(5, 5)
	driven.Vector.AddInPlace(linalg.New(4, 0))

	short := WindTunnel{ID: "s", From: linalg.New(55, 55), Wind: linalg.New(3, 0)}
	inf, err := f.ApplyWindTunnels([]WindTunnel{short}, 1)
	if err != nil {
		t.Fatalf("ApplyWindTunnels: %v", err)
	}
	if inf.Sources != 0 || inf.Touched != 0 {
		t.Errorf("short tunnel should be ignored, got %+v", inf)
	}

	// Not exempt from decay: 4 - (12/4)*0.5 = 2.5.
	if math.Abs(driven.Vector.Len()-2.5) > 1e-9 {
		t.Errorf("expected decayed magnitude 2.5, got %f", driven.Vector.Len())
	}
	if inf.Decayed != 1 {
		t.Errorf("expected 1 decayed cell, got %d", inf.Decayed)
	}
}

func TestApplyWindTunnelsTouchedCellsDoNotDecay(t *testing.T) {
	// First draw caps the injection, second would be decay jitter.
	rng := &seqRand{vals: []float64{0.5, 1}}
	f := newTestField(t, 100, 100, 10, rng)

	c, _, _ := f.CellAt(5, 6)
	c.Vector.AddInPlace(linalg.New(2, 0))

	tunnel := WindTunnel{ID: "a", From: linalg.New(50, 50), Wind: linalg.New(40, 0)}
	f.ApplyWindTunnels([]WindTunnel{tunnel}, 1)

	if math.Abs(c.Vector.X-8) > 1e-9 {
		t.Errorf("expected 2 + 6 = 8 with no decay, got %v", c.Vector)
	}
}

func TestApplyWindTunnelsClipsToGrid(t *testing.T) {
	f := newTestField(t, 50, 50, 10, fixedRand(0.5))
	tunnel := WindTunnel{ID: "edge", From: linalg.New(-20, -20), Wind: linalg.New(30, 0)}

	inf, err := f.ApplyWindTunnels([]WindTunnel{tunnel}, 1)
	if err != nil {
		t.Fatalf("ApplyWindTunnels: %v", err)
	}
	if inf.Touched == 0 {
		t.Error("expected cells near the grid corner to be touched")
	}

	far := WindTunnel{ID: "far", From: linalg.New(500, 500), Wind: linalg.New(30, 0)}
	inf, _ = f.ApplyWindTunnels([]WindTunnel{far}, 1)
	if inf.Sources != 1 || inf.Touched != 0 {
		t.Errorf("expected off-grid tunnel to touch nothing, got %+v", inf)
	}
}

func TestApplyWindTunnelsHugeSegmentCrossesGrid(t *testing.T) {
	f := newTestField(t, 100, 100, 10, fixedRand(0.5))
	// Vertical segment along x=55 spanning y=-1e30..1e30: every column center
	// but x=5 lies within the 45px threshold.
	tunnel := WindTunnel{ID: "huge", From: linalg.New(55, -1e30), Wind: linalg.New(0, 2e30)}

	inf, err := f.ApplyWindTunnels([]WindTunnel{tunnel}, 1)
	if err != nil {
		t.Fatalf("ApplyWindTunnels: %v", err)
	}
	if inf.Sources != 1 || inf.Touched != 90 {
		t.Errorf("expected 90 cells touched, got %+v", inf)
	}

	beside := WindTunnel{ID: "beside", From: linalg.New(-1e30, -1e30), Wind: linalg.New(0, 1e30)}
	inf, _ = f.ApplyWindTunnels([]WindTunnel{beside}, 1)
	if inf.Touched != 0 {
		t.Errorf("expected off-grid tunnel to touch nothing, got %+v", inf)
	}
}
