package systems

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/pthm-cable/gust/linalg"
)

// ErrDimensionNotSpecified is returned by every VectorField operation on a
// field created with EmptyVectorField (or otherwise missing a dimension).
var ErrDimensionNotSpecified = errors.New("dimension not specified")

// ErrInvalidDimension is returned when a dimension is present but not positive.
var ErrInvalidDimension = errors.New("dimension must be positive")

// ConfigError reports which field dimension is unusable.
type ConfigError struct {
	Dimension string
	Value     float64
}

func (e *ConfigError) Error() string {
	if math.IsNaN(e.Value) {
		return fmt.Sprintf("vector field %s not specified", e.Dimension)
	}
	return fmt.Sprintf("vector field %s must be positive, got %g", e.Dimension, e.Value)
}

func (e *ConfigError) Unwrap() error {
	if math.IsNaN(e.Value) {
		return ErrDimensionNotSpecified
	}
	return ErrInvalidDimension
}

// FieldOptions are the pixel dimensions of the field and the side of its
// square cells.
type FieldOptions struct {
	Width    float64
	Height   float64
	CellSize float64
}

// InfluenceParams tune how wind tunnels inject into, and how idle cells decay
// out of, the field.
type InfluenceParams struct {
	DistanceThreshold float64 // cells whose center is within this many px of a tunnel are driven
	MaxWindSpeed      float64 // per-tick injection speed at increaseRate 1
	MaxCellSpeed      float64 // hard ceiling on any cell vector
	MinWindLength     float64 // shorter tunnels are ignored as noise
	DecayDivisor      float64 // decay speed = injection speed / DecayDivisor
}

// DefaultInfluenceParams returns the stock influence tuning.
func DefaultInfluenceParams() InfluenceParams {
	return InfluenceParams{
		DistanceThreshold: 45,
		MaxWindSpeed:      12,
		MaxCellSpeed:      12,
		MinWindLength:     5,
		DecayDivisor:      4,
	}
}

// CellGeometry is the fixed part of a cell, computed once at construction.
type CellGeometry struct {
	Index  int
	Row    int
	Column int
	ID     string
	Center linalg.Vector2
}

// Cell is a view of one grid cell. Vector points into the owning field, so
// writes through it mutate the field.
type Cell struct {
	CellGeometry
	Size   float64
	Vector *linalg.Vector2
}

// Influence summarizes one ApplyWindTunnels call.
type Influence struct {
	Sources int // tunnels long enough to inject
	Touched int // cells driven by at least one tunnel
	Decayed int // idle non-zero cells that decayed
}

// VectorField is a rows x columns grid of wind vectors covering a
// width x height pixel area. Cell count and geometry never change after
// construction; only the vectors do.
type VectorField struct {
	opts    FieldOptions
	params  InfluenceParams
	rows    int
	columns int

	// geometry is shared between copies and never written after construction.
	geometry []CellGeometry
	vectors  []linalg.Vector2

	rng Rand
}

// NewVectorField builds a field and all of its cells, every vector zero.
func NewVectorField(opts FieldOptions, params InfluenceParams, rng Rand) (*VectorField, error) {
	f := &VectorField{opts: opts, params: params, rng: rng}
	if err := f.validate(); err != nil {
		return nil, err
	}

	f.rows = int(math.Ceil(opts.Height / opts.CellSize))
	f.columns = int(math.Ceil(opts.Width / opts.CellSize))

	n := f.rows * f.columns
	f.geometry = make([]CellGeometry, n)
	f.vectors = make([]linalg.Vector2, n)

	half := opts.CellSize / 2
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.columns; col++ {
			i := row*f.columns + col
			f.geometry[i] = CellGeometry{
				Index:  i,
				Row:    row,
				Column: col,
				ID:     fmt.Sprintf("%d:%d", row, col),
				Center: linalg.New(
					float64(col)*opts.CellSize+half,
					float64(row)*opts.CellSize+half,
				),
			}
		}
	}

	return f, nil
}

// EmptyVectorField returns a placeholder with no dimensions. Every operation
// on it fails with ErrDimensionNotSpecified.
func EmptyVectorField() *VectorField {
	return &VectorField{
		opts: FieldOptions{
			Width:    math.NaN(),
			Height:   math.NaN(),
			CellSize: math.NaN(),
		},
		params: DefaultInfluenceParams(),
	}
}

// validate fails fast on missing or non-positive dimensions.
func (f *VectorField) validate() error {
	dims := []struct {
		name  string
		value float64
	}{
		{"width", f.opts.Width},
		{"height", f.opts.Height},
		{"cellSize", f.opts.CellSize},
	}
	for _, d := range dims {
		if math.IsNaN(d.value) || d.value <= 0 || math.IsInf(d.value, 0) {
			return &ConfigError{Dimension: d.name, Value: d.value}
		}
	}
	return nil
}

// Configured reports whether the field has usable dimensions.
func (f *VectorField) Configured() bool {
	return f.validate() == nil
}

// Options returns the field dimensions.
func (f *VectorField) Options() FieldOptions { return f.opts }

// Params returns the influence tuning.
func (f *VectorField) Params() InfluenceParams { return f.params }

// Rows returns the number of cell rows.
func (f *VectorField) Rows() int { return f.rows }

// Columns returns the number of cell columns.
func (f *VectorField) Columns() int { return f.columns }

// CellSize returns the side of a cell in pixels.
func (f *VectorField) CellSize() float64 { return f.opts.CellSize }

// Len returns the number of cells.
func (f *VectorField) Len() int { return len(f.vectors) }

func (f *VectorField) cell(i int) Cell {
	return Cell{
		CellGeometry: f.geometry[i],
		Size:         f.opts.CellSize,
		Vector:       &f.vectors[i],
	}
}

// Cells returns a restartable sequence over all cells in index (row-major)
// order.
func (f *VectorField) Cells() (iter.Seq[Cell], error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	return func(yield func(Cell) bool) {
		for i := range f.vectors {
			if !yield(f.cell(i)) {
				return
			}
		}
	}, nil
}

// ForEachCell calls visit for every cell in index order.
func (f *VectorField) ForEachCell(visit func(Cell)) error {
	cells, err := f.Cells()
	if err != nil {
		return err
	}
	for c := range cells {
		visit(c)
	}
	return nil
}

// CellAt returns the cell at (row, column), or false if outside the grid.
func (f *VectorField) CellAt(row, column int) (Cell, bool, error) {
	if err := f.validate(); err != nil {
		return Cell{}, false, err
	}
	if row < 0 || row >= f.rows || column < 0 || column >= f.columns {
		return Cell{}, false, nil
	}
	return f.cell(row*f.columns + column), true, nil
}

// CellAtPixel returns the cell containing pixel p, or false if p is outside
// the grid. Coordinates are not clamped.
func (f *VectorField) CellAtPixel(p linalg.Vector2) (Cell, bool, error) {
	if err := f.validate(); err != nil {
		return Cell{}, false, err
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return Cell{}, false, nil
	}
	row := int(math.Floor(p.Y / f.opts.CellSize))
	column := int(math.Floor(p.X / f.opts.CellSize))
	return f.CellAt(row, column)
}

// VectorAtPixel returns the vector of the cell containing p, or nil if p is
// outside the grid. The pointer is the cell's own storage.
func (f *VectorField) VectorAtPixel(p linalg.Vector2) (*linalg.Vector2, error) {
	c, ok, err := f.CellAtPixel(p)
	if err != nil || !ok {
		return nil, err
	}
	return c.Vector, nil
}

// Copy returns a field with the same geometry and independent vectors.
func (f *VectorField) Copy() (*VectorField, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	c := *f
	c.vectors = slices.Clone(f.vectors)
	return &c, nil
}

// Decay shortens every non-zero vector by amount, floored at zero.
func (f *VectorField) Decay(amount float64) error {
	if err := f.validate(); err != nil {
		return err
	}
	for i := range f.vectors {
		if !f.vectors[i].IsZero() {
			f.vectors[i].DecreaseLength(amount)
		}
	}
	return nil
}

// ApplyWindTunnels runs one tick of influence: every tunnel at least
// MinWindLength long pushes its wind into the cells near its segment, then
// every cell no tunnel touched decays. increaseRate scales the tick's
// injection speed and is proportional to elapsed time.
func (f *VectorField) ApplyWindTunnels(tunnels []WindTunnel, increaseRate float64) (Influence, error) {
	if err := f.validate(); err != nil {
		return Influence{}, err
	}

	increaseSpeed := f.params.MaxWindSpeed * increaseRate
	decreaseSpeed := increaseSpeed / f.params.DecayDivisor

	var inf Influence
	touched := make([]bool, len(f.vectors))

	for _, tunnel := range tunnels {
		if tunnel.Wind.Len() < f.params.MinWindLength {
			continue
		}
		inf.Sources++

		component := tunnel.Wind.Copy()
		component.CapLength(increaseSpeed * f.rng.Float64())

		f.visitNearSegment(tunnel.Segment(), f.params.DistanceThreshold, func(i int) {
			f.vectors[i].AddInPlace(component).CapLength(f.params.MaxCellSpeed)
			if !touched[i] {
				touched[i] = true
				inf.Touched++
			}
		})
	}

	for i := range f.vectors {
		if touched[i] || f.vectors[i].IsZero() {
			continue
		}
		f.vectors[i].DecreaseLength(decreaseSpeed * f.rng.Float64())
		inf.Decayed++
	}

	return inf, nil
}

// visitNearSegment calls visit with the index of every cell whose center lies
// within threshold of the segment. Candidates come from the segment's
// bounding box grown by threshold, intersected with the grid.
func (f *VectorField) visitNearSegment(s linalg.LineSegment, threshold float64, visit func(i int)) {
	lo, hi := s.Bounds(threshold)
	cs := f.opts.CellSize

	// Clamp in pixel space first; huge bounds would overflow the int conversion.
	w, h := float64(f.columns)*cs, float64(f.rows)*cs
	if hi.X < 0 || hi.Y < 0 || lo.X > w || lo.Y > h {
		return
	}
	lo.X, lo.Y = max(lo.X, 0), max(lo.Y, 0)
	hi.X, hi.Y = min(hi.X, w), min(hi.Y, h)

	top := int(math.Floor(lo.Y / cs))
	bottom := min(int(math.Floor(hi.Y/cs)), f.rows-1)
	left := int(math.Floor(lo.X / cs))
	right := min(int(math.Floor(hi.X/cs)), f.columns-1)

	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			i := row*f.columns + col
			if s.DistanceFrom(f.geometry[i].Center) <= threshold {
				visit(i)
			}
		}
	}
}

// Magnitudes appends every cell's vector length to dst in index order.
// An unconfigured field has no cells and returns dst unchanged.
func (f *VectorField) Magnitudes(dst []float64) []float64 {
	for i := range f.vectors {
		dst = append(dst, f.vectors[i].Len())
	}
	return dst
}
