package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gust/components"
)

// createEntity creates a plain body at rest at (x, y).
func (g *Game) createEntity(x, y float64) ecs.Entity {
	body := components.NewBody(x, y)
	return g.entityMapper.NewEntity(&body)
}

// createTrail creates a body that logs its path, starting at (x, y).
func (g *Game) createTrail(x, y float64) ecs.Entity {
	body := components.NewBody(x, y)
	trail := components.NewTrail(body.Position, g.cfg.Trail.MinSpacing, g.cfg.Trail.MaxWaypoints)
	return g.trailMapper.NewEntity(&body, &trail)
}
