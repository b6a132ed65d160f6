package systems

import (
	"github.com/pthm-cable/gust/components"
	"github.com/pthm-cable/gust/linalg"
)

// MotionParams bound body motion.
type MotionParams struct {
	MaxSpeed   float64 // velocity cap, px per tick
	AccelDecay float64 // acceleration length lost per tick
	SpeedDecay float64 // upper bound of the random velocity length lost per tick
}

// DefaultMotionParams returns the stock motion tuning.
func DefaultMotionParams() MotionParams {
	return MotionParams{
		MaxSpeed:   3,
		AccelDecay: 0.05,
		SpeedDecay: 0.02,
	}
}

// Kinematics integrates bodies one tick at a time.
type Kinematics struct {
	params MotionParams
	rng    Rand
}

// NewKinematics creates an integrator drawing jitter from rng.
func NewKinematics(params MotionParams, rng Rand) *Kinematics {
	return &Kinematics{params: params, rng: rng}
}

// Params returns the motion tuning.
func (k *Kinematics) Params() MotionParams { return k.params }

// SetAcceleration stores a scaled by a fresh random factor in [0,1), so bodies
// sharing one field vector still respond unevenly.
func (k *Kinematics) SetAcceleration(b *components.Body, a linalg.Vector2) *components.Body {
	b.Acceleration = a.Scaled(k.rng.Float64())
	return b
}

// Update advances b by one tick: accelerate, cap, move, then let both
// acceleration and velocity decay toward zero without changing heading.
func (k *Kinematics) Update(b *components.Body) *components.Body {
	b.Velocity.AddInPlace(b.Acceleration).CapLength(k.params.MaxSpeed)
	b.Position.AddInPlace(b.Velocity)
	b.Acceleration.DecreaseLength(k.params.AccelDecay)
	b.Velocity.DecreaseLength(k.params.SpeedDecay * k.rng.Float64())
	return b
}

// UpdateTrail advances b like Update and commits the new head position to t.
func (k *Kinematics) UpdateTrail(b *components.Body, t *components.Trail) *components.Body {
	k.Update(b)
	t.Commit(b.Position)
	return b
}
