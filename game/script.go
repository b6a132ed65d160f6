package game

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gust/linalg"
)

// Gesture is one scripted drag: a wind source added at the first point on
// tick Start, moved along the remaining points, then removed.
type Gesture struct {
	ID            string       `yaml:"id"`
	Start         int32        `yaml:"start"`
	TicksPerPoint int32        `yaml:"ticks_per_point"`
	Points        [][2]float64 `yaml:"points"`
}

// End returns the tick the gesture's source is removed on.
func (gs *Gesture) End() int32 {
	return gs.Start + int32(len(gs.Points)-1)*gs.TicksPerPoint + 1
}

// pointAt interpolates along the polyline for a tick inside the gesture.
func (gs *Gesture) pointAt(tick int32) linalg.Vector2 {
	offset := tick - gs.Start
	seg := int(offset / gs.TicksPerPoint)
	last := len(gs.Points) - 1
	if seg >= last {
		p := gs.Points[last]
		return linalg.New(p[0], p[1])
	}
	t := float64(offset%gs.TicksPerPoint) / float64(gs.TicksPerPoint)
	a, b := gs.Points[seg], gs.Points[seg+1]
	return linalg.New(a[0]+(b[0]-a[0])*t, a[1]+(b[1]-a[1])*t)
}

// Script is a replayable list of gestures.
type Script struct {
	Gestures []Gesture `yaml:"gestures"`
}

// LoadScript reads a gesture script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a YAML gesture script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i := range s.Gestures {
		gs := &s.Gestures[i]
		if gs.ID == "" {
			return nil, fmt.Errorf("gesture %d: missing id", i)
		}
		if len(gs.Points) == 0 {
			return nil, fmt.Errorf("gesture %q: no points", gs.ID)
		}
		if gs.Start < 0 {
			return nil, fmt.Errorf("gesture %q: negative start", gs.ID)
		}
		if gs.TicksPerPoint < 1 {
			gs.TicksPerPoint = 1
		}
	}
	return &s, nil
}

// Commands returns the commands due on tick, in gesture order.
func (s *Script) Commands(tick int32) []Command {
	if s == nil {
		return nil
	}
	var out []Command
	for i := range s.Gestures {
		gs := &s.Gestures[i]
		switch {
		case tick == gs.Start:
			p := gs.Points[0]
			out = append(out, Command{Kind: CommandAdd, ID: gs.ID, Point: linalg.New(p[0], p[1])})
		case tick > gs.Start && tick < gs.End():
			out = append(out, Command{Kind: CommandMove, ID: gs.ID, Point: gs.pointAt(tick)})
		case tick == gs.End():
			out = append(out, Command{Kind: CommandRemove, ID: gs.ID})
		}
	}
	return out
}

// Duration returns the tick after the last gesture ends.
func (s *Script) Duration() int32 {
	var end int32
	for i := range s.Gestures {
		end = max(end, s.Gestures[i].End()+1)
	}
	return end
}

// RandomScript builds count sweeping drags inside a width x height area.
// Gestures overlap by half their length so several sources are often live
// together.
func RandomScript(rng *rand.Rand, width, height float64, count int, ticks int) *Script {
	if ticks < 3 {
		ticks = 3
	}
	s := &Script{}
	for i := 0; i < count; i++ {
		origin := linalg.New(rng.Float64()*width, rng.Float64()*height)
		heading := rng.Float64() * 2 * math.Pi
		length := 50 + rng.Float64()*150

		points := make([][2]float64, 4)
		for k := range points {
			// Bend the drag slightly so the source sweeps an arc.
			step := linalg.FromPolar(length*float64(k)/3, heading+0.3*float64(k))
			p := linalg.Add(origin, step)
			points[k] = [2]float64{
				math.Max(0, math.Min(p.X, width)),
				math.Max(0, math.Min(p.Y, height)),
			}
		}

		s.Gestures = append(s.Gestures, Gesture{
			ID:            fmt.Sprintf("script-%d", i),
			Start:         int32(i * ticks / 2),
			TicksPerPoint: int32(ticks / 3),
			Points:        points,
		})
	}
	return s
}
