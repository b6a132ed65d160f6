package game

import "log/slog"

// spawnInitialPopulation scatters the configured bodies uniformly over the
// grid.
func (g *Game) spawnInitialPopulation() {
	opts := g.field.Options()

	for i := 0; i < g.cfg.Bodies.Entities; i++ {
		g.createEntity(g.rng.Float64()*opts.Width, g.rng.Float64()*opts.Height)
	}
	for i := 0; i < g.cfg.Bodies.Trails; i++ {
		g.createTrail(g.rng.Float64()*opts.Width, g.rng.Float64()*opts.Height)
	}

	slog.Debug("population spawned",
		"entities", g.cfg.Bodies.Entities,
		"trails", g.cfg.Bodies.Trails,
	)
}

// BodyCount returns the number of live bodies.
func (g *Game) BodyCount() int {
	n := 0
	query := g.bodyFilter.Query()
	for query.Next() {
		n++
	}
	return n
}
