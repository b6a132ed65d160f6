package linalg

import "math"

// LineSegment is a directed segment between two points.
// Endpoints are held by value, so later changes to the caller's vectors
// never reach the segment.
type LineSegment struct {
	from, to Vector2
}

// NewLineSegment creates a segment from -> to.
func NewLineSegment(from, to Vector2) LineSegment {
	return LineSegment{from: from, to: to}
}

// From returns the start point.
func (s LineSegment) From() Vector2 { return s.from }

// To returns the end point.
func (s LineSegment) To() Vector2 { return s.to }

// Direction returns from - to.
func (s LineSegment) Direction() Vector2 {
	return Subtract(s.from, s.to)
}

// Degenerate reports whether both endpoints coincide.
func (s LineSegment) Degenerate() bool {
	return s.from == s.to
}

// ClosestPoint projects p onto the line through the segment, clamps the
// projection parameter to [0,1] and returns the resulting point.
// A degenerate segment behaves as the single point From.
func (s LineSegment) ClosestPoint(p Vector2) Vector2 {
	d := Subtract(s.to, s.from)
	den := d.Dot(d)
	if den == 0 {
		return s.from
	}

	t := Subtract(p, s.from).Dot(d) / den
	switch {
	case t <= 0:
		return s.from
	case t >= 1:
		return s.to
	}
	return Add(s.from, d.Scaled(t))
}

// DistanceFrom returns the Euclidean distance from p to the closest point on
// the segment. Inside the segment the perpendicular distance is computed
// directly, so far-away endpoints do not cancel out precision near p.
func (s LineSegment) DistanceFrom(p Vector2) float64 {
	d := Subtract(s.to, s.from)
	den := d.Dot(d)
	if den == 0 {
		return p.DistanceTo(s.from)
	}

	rel := Subtract(p, s.from)
	t := rel.Dot(d) / den
	switch {
	case t <= 0:
		return p.DistanceTo(s.from)
	case t >= 1:
		return p.DistanceTo(s.to)
	}
	return math.Abs(rel.X*d.Y-rel.Y*d.X) / math.Sqrt(den)
}

// Bounds returns the axis-aligned bounding box of the segment expanded by
// margin on every side.
func (s LineSegment) Bounds(margin float64) (min, max Vector2) {
	min = Vector2{
		X: math.Min(s.from.X, s.to.X) - margin,
		Y: math.Min(s.from.Y, s.to.Y) - margin,
	}
	max = Vector2{
		X: math.Max(s.from.X, s.to.X) + margin,
		Y: math.Max(s.from.Y, s.to.Y) + margin,
	}
	return min, max
}
