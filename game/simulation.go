package game

import (
	"fmt"
	"math"

	"github.com/pthm-cable/gust/telemetry"
)

// AdvanceTick runs one simulation step with elapsedMs of frame time:
// apply queued commands, inject wind into a copy of the field, push bodies
// through the new field, then publish it. A no-op until InitializeGrid.
func (g *Game) AdvanceTick(elapsedMs float64) error {
	if !g.field.Configured() {
		return nil
	}
	if math.IsNaN(elapsedMs) || elapsedMs < 0 {
		elapsedMs = 0
	}

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseCommands)
	g.applyCommands()

	g.perfCollector.StartPhase(telemetry.PhaseField)
	next, err := g.field.Copy()
	if err != nil {
		return fmt.Errorf("copying field: %w", err)
	}
	rate := g.baseRate * elapsedMs / 1000
	g.tunnels = g.winds.AppendTunnels(g.tunnels[:0])
	inf, err := next.ApplyWindTunnels(g.tunnels, rate)
	if err != nil {
		return fmt.Errorf("applying wind: %w", err)
	}

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	phys, err := g.physics.Update(next)
	if err != nil {
		return fmt.Errorf("updating bodies: %w", err)
	}

	g.perfCollector.StartPhase(telemetry.PhasePublish)
	g.field = next
	g.tick++
	g.publish(inf, phys, elapsedMs)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(elapsedMs, inf, phys)
	g.flushTelemetry()

	g.perfCollector.EndTick()
	return nil
}
