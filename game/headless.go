package game

import "log/slog"

// UpdateHeadless runs stepsPerUpdate ticks with the nominal frame time,
// feeding scripted gestures in before each one.
func (g *Game) UpdateHeadless() {
	dt := g.cfg.Headless.NominalDTMs
	for i := 0; i < g.stepsPerUpdate; i++ {
		for _, c := range g.script.Commands(g.tick) {
			g.commands.Push(c)
		}
		if err := g.AdvanceTick(dt); err != nil {
			slog.Error("tick failed", "tick", g.tick, "error", err)
			return
		}
	}
}

// RunHeadless advances until maxTicks ticks have completed.
func (g *Game) RunHeadless(maxTicks int32) {
	for g.tick < maxTicks {
		before := g.tick
		g.UpdateHeadless()
		if g.tick == before {
			// Uninitialized grid or a failing tick; nothing will change.
			return
		}
	}
}

// ScriptDuration returns the tick after the last scripted gesture ends, or 0
// without a script.
func (g *Game) ScriptDuration() int32 {
	if g.script == nil {
		return 0
	}
	return g.script.Duration()
}
