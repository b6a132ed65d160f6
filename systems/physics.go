// Package systems contains the wind field and the ECS systems that move
// bodies through it.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gust/components"
)

// Bounds represents the simulation bounds.
type Bounds struct {
	Width, Height float64
}

// PhysicsStats summarizes one PhysicsSystem update.
type PhysicsStats struct {
	Bodies    int     // bodies advanced
	Pushed    int     // bodies that sampled a non-zero field vector
	MeanSpeed float64 // mean velocity length after the update
}

// PhysicsSystem samples the field under every body, turns the sample into
// acceleration, and integrates.
type PhysicsSystem struct {
	filter   *ecs.Filter1[components.Body]
	trailMap *ecs.Map[components.Trail]
	kin      *Kinematics

	bounds         Bounds
	wrap           bool
	accelMagnitude float64
}

// NewPhysicsSystem creates a new physics system. accelMagnitude is the length
// a sampled field vector is renormalized to before it becomes acceleration.
func NewPhysicsSystem(w *ecs.World, kin *Kinematics, bounds Bounds, accelMagnitude float64, wrap bool) *PhysicsSystem {
	return &PhysicsSystem{
		filter:         ecs.NewFilter1[components.Body](w),
		trailMap:       ecs.NewMap[components.Trail](w),
		kin:            kin,
		bounds:         bounds,
		wrap:           wrap,
		accelMagnitude: accelMagnitude,
	}
}

// Update runs the physics system against field, which must already hold this
// tick's wind.
func (s *PhysicsSystem) Update(field *VectorField) (PhysicsStats, error) {
	var stats PhysicsStats
	if err := field.validate(); err != nil {
		return stats, err
	}

	var speedSum float64
	query := s.filter.Query()
	for query.Next() {
		body := query.Get()
		entity := query.Entity()

		// Field gives direction only; magnitude is fixed to keep motion calm.
		if v, _ := field.VectorAtPixel(body.Position); v != nil && !v.IsZero() {
			s.kin.SetAcceleration(body, v.Normalized().Scaled(s.accelMagnitude))
			stats.Pushed++
		}

		var trail *components.Trail
		if s.trailMap.Has(entity) {
			trail = s.trailMap.Get(entity)
			s.kin.UpdateTrail(body, trail)
		} else {
			s.kin.Update(body)
		}

		if s.wrap && s.wrapPosition(body) && trail != nil {
			// Don't draw a path across the whole screen.
			trail.Reset(body.Position)
		}

		stats.Bodies++
		speedSum += body.Speed()
	}

	if stats.Bodies > 0 {
		stats.MeanSpeed = speedSum / float64(stats.Bodies)
	}
	return stats, nil
}

// wrapPosition folds the body back into bounds toroidally.
// Returns true if the body wrapped.
func (s *PhysicsSystem) wrapPosition(b *components.Body) bool {
	w, h := s.bounds.Width, s.bounds.Height
	if w <= 0 || h <= 0 {
		return false
	}
	p := &b.Position
	if p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h {
		return false
	}
	p.X = math.Mod(math.Mod(p.X, w)+w, w)
	p.Y = math.Mod(math.Mod(p.Y, h)+h, h)
	return true
}
