package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/gust/config"
	"github.com/pthm-cable/gust/game"
	"github.com/pthm-cable/gust/telemetry"
)

// FitnessEvaluator runs scripted headless simulations and scores how far
// the resulting body speed lands from a target.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	targetSpeed float64
	statsWindow float64

	mu        sync.Mutex
	lastSpeed float64 // mean speed from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. maxTicks of 0 runs each
// simulation until its gesture script ends.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targetSpeed float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		targetSpeed: targetSpeed,
		statsWindow: 1.0,
	}
}

// LastSpeed returns the mean body speed from the most recent evaluation.
func (fe *FitnessEvaluator) LastSpeed() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSpeed
}

// warmupWindows are skipped while bodies accelerate from rest.
const warmupWindows = 1

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	type seedResult struct {
		fitness, speed float64
	}

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			speeds := fe.runSimulation(x, s)
			results[idx] = seedResult{
				fitness: fe.computeFitness(speeds),
				speed:   meanOf(speeds),
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalSpeed float64
	for _, r := range results {
		totalFitness += r.fitness
		totalSpeed += r.speed
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastSpeed = totalSpeed / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes one scripted headless run and returns the mean body
// speed of every stats window past warmup. Short runs that never fill a
// window fall back to the final tick's mean speed.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil
	}
	defer g.Unload()

	if err := g.InitializeConfiguredGrid(); err != nil {
		return nil
	}

	maxTicks := fe.maxTicks
	if maxTicks <= 0 {
		maxTicks = g.ScriptDuration()
	}
	g.RunHeadless(maxTicks)

	if len(windows) <= warmupWindows {
		return []float64{g.Snapshot().Physics.MeanSpeed}
	}
	speeds := make([]float64, 0, len(windows)-warmupWindows)
	for _, w := range windows[warmupWindows:] {
		speeds = append(speeds, w.BodySpeedMean)
	}
	return speeds
}

// copyConfig returns an independent copy of the base config. Every section
// is a plain value, so a struct copy suffices.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness is the mean squared error between each window's speed and
// the target. A run that produced nothing scores +Inf.
func (fe *FitnessEvaluator) computeFitness(speeds []float64) float64 {
	if len(speeds) == 0 {
		return math.Inf(1)
	}
	sq := make([]float64, len(speeds))
	for i, s := range speeds {
		d := s - fe.targetSpeed
		sq[i] = d * d
	}
	return stat.Mean(sq, nil)
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
