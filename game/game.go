// Package game wires the wind field, the wind sources and the body
// population into a tick-driven simulation, with an optional raylib front end.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gust/camera"
	"github.com/pthm-cable/gust/components"
	"github.com/pthm-cable/gust/config"
	"github.com/pthm-cable/gust/linalg"
	"github.com/pthm-cable/gust/renderer"
	"github.com/pthm-cable/gust/systems"
	"github.com/pthm-cable/gust/telemetry"
	"github.com/pthm-cable/gust/ui"
)

// ErrAlreadyInitialized is returned by a second InitializeGrid call.
var ErrAlreadyInitialized = errors.New("grid already initialized")

// Game holds the complete simulation state.
type Game struct {
	cfg *config.Config

	world *ecs.World
	rng   *rand.Rand
	seed  int64

	// Entity mappers
	entityMapper *ecs.Map1[components.Body]
	trailMapper  *ecs.Map2[components.Body, components.Trail]
	bodyFilter   *ecs.Filter1[components.Body]
	trailMap     *ecs.Map[components.Trail]

	// Simulation
	field    *systems.VectorField
	winds    *systems.WindRegistry
	commands CommandQueue
	kin      *systems.Kinematics
	physics  *systems.PhysicsSystem

	// Scratch reused across ticks
	pending []Command
	tunnels []systems.WindTunnel

	// Published state
	snapshot atomic.Pointer[Snapshot]

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	snapshotDir   string
	statsCallback func(telemetry.WindowStats)

	// Headless gesture replay
	script *Script

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int

	baseRate       float64 // wind injection rate per second of frame time

	// Graphics mode
	camera       *camera.Camera
	fieldView    *renderer.FieldRenderer
	trailView    *renderer.TrailRenderer
	particleView *renderer.ParticleRenderer
	overlays     *ui.OverlayRegistry
	hud          *ui.HUD
	controls     *ui.ControlsPanel
	perfPanel    *ui.PerfPanel
	quickStats   *ui.QuickStatsPanel
	inspector    *ui.Inspector
	tuning       *ui.TuningPanel
	hovered      *HoveredCell
	touches      map[int32]linalg.Vector2 // extra touch points, by touch id
	screenWidth  float64
	screenHeight float64
}

// NewGame creates a game with default options and the global config.
func NewGame() (*Game, error) {
	return NewGameWithOptions(DefaultOptions())
}

// NewGameWithOptions creates a game. The field stays unconfigured, and
// ticks are no-ops, until InitializeGrid is called.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	world := ecs.NewWorld()
	rng := systems.NewRand(opts.Seed)

	g := &Game{
		cfg:            cfg,
		world:          world,
		rng:            rng,
		seed:           opts.Seed,
		entityMapper:   ecs.NewMap1[components.Body](world),
		trailMapper:    ecs.NewMap2[components.Body, components.Trail](world),
		bodyFilter:     ecs.NewFilter1[components.Body](world),
		trailMap:       ecs.NewMap[components.Trail](world),
		field:          systems.EmptyVectorField(),
		winds:          systems.NewWindRegistry(),
		collector:      telemetry.NewCollector(statsWindow),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		statsCallback:  opts.StatsCallback,
		script:         opts.Script,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		baseRate:       cfg.Field.BaseRate,
		touches:        make(map[int32]linalg.Vector2),
		screenWidth:    float64(cfg.Screen.Width),
		screenHeight:   float64(cfg.Screen.Height),
	}

	g.kin = systems.NewKinematics(systems.MotionParams{
		MaxSpeed:   cfg.Bodies.MaxSpeed,
		AccelDecay: cfg.Bodies.AccelDecay,
		SpeedDecay: cfg.Bodies.SpeedDecay,
	}, rng)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !opts.Headless {
		g.fieldView = renderer.NewFieldRenderer()
		g.trailView = renderer.NewTrailRenderer()
		g.particleView = renderer.NewParticleRenderer()
		g.overlays = ui.NewOverlayRegistry()
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(10, 100, 200)
		g.perfPanel = ui.NewPerfPanel(0, 0)
		g.quickStats = ui.NewQuickStatsPanel(0, 0, 220)
		g.inspector = ui.NewInspector(0, 0, 220)
		g.tuning = ui.NewTuningPanel()
		g.layoutPanels()
	}

	g.publish(systems.Influence{}, systems.PhysicsStats{}, 0)
	return g, nil
}

// InitializeGrid constructs the field and spawns the body population.
// It must be called exactly once before ticks have any effect.
func (g *Game) InitializeGrid(width, height, cellSize float64) error {
	if g.field.Configured() {
		return ErrAlreadyInitialized
	}

	field, err := systems.NewVectorField(
		systems.FieldOptions{Width: width, Height: height, CellSize: cellSize},
		g.influenceParams(),
		g.rng,
	)
	if err != nil {
		return fmt.Errorf("initializing grid: %w", err)
	}
	g.field = field

	g.physics = systems.NewPhysicsSystem(
		g.world,
		g.kin,
		systems.Bounds{Width: width, Height: height},
		g.cfg.Bodies.AccelMagnitude,
		g.cfg.Bodies.WrapEdges,
	)
	g.spawnInitialPopulation()

	if g.script == nil && g.headless && g.cfg.Headless.Gestures > 0 {
		g.script = RandomScript(g.rng, width, height, g.cfg.Headless.Gestures, g.cfg.Headless.GestureTicks)
	}

	if !g.headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight, width, height, g.cfg.Bodies.WrapEdges)
	}

	slog.Info("grid initialized",
		"width", width,
		"height", height,
		"cell_size", cellSize,
		"rows", field.Rows(),
		"columns", field.Columns(),
		"bodies", g.cfg.Bodies.Entities+g.cfg.Bodies.Trails,
	)

	g.publish(systems.Influence{}, systems.PhysicsStats{}, 0)
	return nil
}

// InitializeConfiguredGrid calls InitializeGrid with the configured grid.
func (g *Game) InitializeConfiguredGrid() error {
	d := g.cfg.Derived
	return g.InitializeGrid(d.GridWidth, d.GridHeight, g.cfg.Grid.CellSize)
}

// influenceParams maps the field config section onto the systems tuning.
func (g *Game) influenceParams() systems.InfluenceParams {
	f := g.cfg.Field
	return systems.InfluenceParams{
		DistanceThreshold: f.DistanceThreshold,
		MaxWindSpeed:      f.MaxWindSpeed,
		MaxCellSpeed:      f.MaxWindSpeed,
		MinWindLength:     f.MinWindLength,
		DecayDivisor:      f.DecayDivisor,
	}
}

// Update handles input and runs simulation steps for one rendered frame.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	dt := float64(rl.GetFrameTime()) * 1000
	for i := 0; i < g.stepsPerUpdate; i++ {
		if err := g.AdvanceTick(dt); err != nil {
			slog.Error("tick failed", "tick", g.tick, "error", err)
			return
		}
	}
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 {
	return g.tick
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Unload releases resources.
func (g *Game) Unload() {
	g.logWorldState()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
