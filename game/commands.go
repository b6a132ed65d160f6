package game

import (
	"log/slog"
	"sync"

	"github.com/pthm-cable/gust/linalg"
	"github.com/pthm-cable/gust/systems"
	"github.com/pthm-cable/gust/telemetry"
)

// CommandKind identifies an inbound wind-source command.
type CommandKind uint8

const (
	CommandAdd CommandKind = iota
	CommandMove
	CommandRemove
	CommandClear // drop every source and zero the field
)

// String returns the display name for a CommandKind.
func (k CommandKind) String() string {
	switch k {
	case CommandAdd:
		return "add"
	case CommandMove:
		return "move"
	case CommandRemove:
		return "remove"
	case CommandClear:
		return "clear"
	}
	return "unknown"
}

// Command is one queued change to the live wind sources.
type Command struct {
	Kind  CommandKind
	ID    string
	Point linalg.Vector2
}

// CommandQueue buffers commands between ticks. Push is safe from any
// goroutine; the game drains it at the start of each tick, so commands are
// applied in arrival order and the last write to an id wins.
type CommandQueue struct {
	mu      sync.Mutex
	pending []Command
}

// Push appends a command.
func (q *CommandQueue) Push(c Command) {
	q.mu.Lock()
	q.pending = append(q.pending, c)
	q.mu.Unlock()
}

// Drain appends every pending command to dst in arrival order and empties
// the queue.
func (q *CommandQueue) Drain(dst []Command) []Command {
	q.mu.Lock()
	dst = append(dst, q.pending...)
	q.pending = q.pending[:0]
	q.mu.Unlock()
	return dst
}

// Len returns the number of pending commands.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// AddWindSource begins tracking a source at origin with zero wind.
// Takes effect at the next tick.
func (g *Game) AddWindSource(id string, origin linalg.Vector2) {
	g.commands.Push(Command{Kind: CommandAdd, ID: id, Point: origin})
}

// MoveWindSource points the source's wind from point back to its origin.
// Unknown ids are ignored when the command is applied.
func (g *Game) MoveWindSource(id string, point linalg.Vector2) {
	g.commands.Push(Command{Kind: CommandMove, ID: id, Point: point})
}

// RemoveWindSource stops tracking a source. Unknown ids are ignored.
func (g *Game) RemoveWindSource(id string) {
	g.commands.Push(Command{Kind: CommandRemove, ID: id})
}

// ClearWind drops every live source and zeroes the field.
func (g *Game) ClearWind() {
	g.commands.Push(Command{Kind: CommandClear})
}

// applyCommands drains the queue into the wind registry.
func (g *Game) applyCommands() {
	g.pending = g.commands.Drain(g.pending[:0])
	for _, c := range g.pending {
		g.collector.Record(g.applyCommand(c))
	}
}

func (g *Game) applyCommand(c Command) telemetry.Event {
	switch c.Kind {
	case CommandAdd:
		if g.winds.Add(c.ID, c.Point) {
			return telemetry.NewRestartEvent(g.tick, c.ID)
		}
		return telemetry.NewAddEvent(g.tick, c.ID)

	case CommandMove:
		if g.winds.Move(c.ID, c.Point) {
			return telemetry.NewMoveEvent(g.tick, c.ID)
		}

	case CommandRemove:
		if g.winds.Remove(c.ID) {
			return telemetry.NewRemoveEvent(g.tick, c.ID)
		}

	case CommandClear:
		g.winds = systems.NewWindRegistry()
		if field, err := systems.NewVectorField(g.field.Options(), g.field.Params(), g.rng); err == nil {
			g.field = field
		}
		return telemetry.NewRemoveEvent(g.tick, "*")
	}

	slog.Debug("ignored wind command", "kind", c.Kind.String(), "id", c.ID, "tick", g.tick)
	return telemetry.NewIgnoredEvent(g.tick, c.ID)
}
