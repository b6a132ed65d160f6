// Package linalg provides the 2D vector and line segment primitives used by
// the wind field and the kinematic bodies.
package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vector2 is a 2D vector in pixel space.
//
// Value-receiver methods (Added, Subtracted, Scaled, Normalized) never touch
// the receiver and return a new vector. Pointer-receiver methods whose names
// end in InPlace, plus SetLength, SetHeading and CapLength, mutate the
// receiver and return it so calls can be chained.
type Vector2 r2.Vec

// New creates a vector from its components.
func New(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Zero returns the zero vector.
func Zero() Vector2 {
	return Vector2{}
}

// FromPolar creates a vector with the given length and heading (radians).
func FromPolar(length, heading float64) Vector2 {
	return Vector2{X: length * math.Cos(heading), Y: length * math.Sin(heading)}
}

// Add returns a + b.
func Add(a, b Vector2) Vector2 {
	return Vector2(r2.Add(r2.Vec(a), r2.Vec(b)))
}

// Subtract returns a - b.
func Subtract(a, b Vector2) Vector2 {
	return Vector2(r2.Sub(r2.Vec(a), r2.Vec(b)))
}

// Normalize returns the unit vector with the heading of v.
// The zero vector normalizes to itself.
func Normalize(v Vector2) Vector2 {
	if v.IsZero() {
		return v
	}
	return Vector2(r2.Unit(r2.Vec(v)))
}

// Copy returns an independent copy of v.
func (v Vector2) Copy() Vector2 { return v }

// Len returns the magnitude of v.
func (v Vector2) Len() float64 {
	return r2.Norm(r2.Vec(v))
}

// Heading returns the angle of v in radians, in (-pi, pi].
// The zero vector has heading 0.
func (v Vector2) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// IsZero reports whether both components are exactly zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Dot returns the dot product v·o.
func (v Vector2) Dot(o Vector2) float64 {
	return r2.Dot(r2.Vec(v), r2.Vec(o))
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vector2) DistanceTo(o Vector2) float64 {
	return Subtract(v, o).Len()
}

// Added returns v + o.
func (v Vector2) Added(o Vector2) Vector2 { return Add(v, o) }

// Subtracted returns v - o.
func (v Vector2) Subtracted(o Vector2) Vector2 { return Subtract(v, o) }

// Scaled returns v * f.
func (v Vector2) Scaled(f float64) Vector2 {
	return Vector2(r2.Scale(f, r2.Vec(v)))
}

// Normalized returns the unit vector of v (zero stays zero).
func (v Vector2) Normalized() Vector2 { return Normalize(v) }

// AddInPlace sets v = v + o.
func (v *Vector2) AddInPlace(o Vector2) *Vector2 {
	*v = Add(*v, o)
	return v
}

// SubtractInPlace sets v = v - o.
func (v *Vector2) SubtractInPlace(o Vector2) *Vector2 {
	*v = Subtract(*v, o)
	return v
}

// MultiplyInPlace sets v = v * f.
func (v *Vector2) MultiplyInPlace(f float64) *Vector2 {
	*v = v.Scaled(f)
	return v
}

// NormalizeInPlace scales v to unit length. Zero stays zero.
func (v *Vector2) NormalizeInPlace() *Vector2 {
	*v = Normalize(*v)
	return v
}

// SetLength rescales v to the given length, keeping its heading.
// A zero vector has no heading and is left unchanged. Negative lengths
// collapse v to zero rather than flipping it.
func (v *Vector2) SetLength(length float64) *Vector2 {
	if v.IsZero() || math.IsNaN(length) {
		return v
	}
	if length <= 0 {
		*v = Vector2{}
		return v
	}
	*v = Normalize(*v).Scaled(length)
	return v
}

// SetHeading rotates v to the given angle, keeping its length.
func (v *Vector2) SetHeading(heading float64) *Vector2 {
	*v = FromPolar(v.Len(), heading)
	return v
}

// SetHeadingFrom rotates v to point the same way as o, keeping its length.
func (v *Vector2) SetHeadingFrom(o Vector2) *Vector2 {
	return v.SetHeading(o.Heading())
}

// CapLength clamps the magnitude of v down to max. It never lengthens v.
// An undefined (NaN) length is treated as already within bounds.
func (v *Vector2) CapLength(max float64) *Vector2 {
	l := v.Len()
	if math.IsNaN(l) || l <= max {
		return v
	}
	return v.SetLength(max)
}

// DecreaseLength shortens v by amount, floored at zero, keeping its heading.
func (v *Vector2) DecreaseLength(amount float64) *Vector2 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return v
	}
	return v.SetLength(math.Max(0, l-amount))
}

// String implements fmt.Stringer.
func (v Vector2) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}
