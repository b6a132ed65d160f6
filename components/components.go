// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/gust/linalg"

// Kind distinguishes the two kinematic body flavours.
type Kind uint8

const (
	KindEntity Kind = iota // plain moving point
	KindTrail              // moving point that records its path
)

// String returns the display name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindTrail:
		return "trail"
	}
	return "unknown"
}

// Body is the kinematic state of a simulated point, advanced once per tick.
type Body struct {
	Position     linalg.Vector2
	Velocity     linalg.Vector2
	Acceleration linalg.Vector2
}

// NewBody creates a body at rest at (x, y).
func NewBody(x, y float64) Body {
	return Body{Position: linalg.New(x, y)}
}

// Speed returns the velocity magnitude.
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}
