package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/gust/config"
)

func baseConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestParamVector_NormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector(baseConfig(t))

	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("param %s: expected %v, got %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVector_DefaultsFromConfig(t *testing.T) {
	cfg := baseConfig(t)
	pv := NewParamVector(cfg)

	got := pv.DefaultVector()
	want := pv.ExtractFromConfig(cfg)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("param %s: expected default %v, got %v", pv.Specs[i].Name, want[i], got[i])
		}
	}
}

func TestParamVector_ApplyClamps(t *testing.T) {
	cfg := baseConfig(t)
	pv := NewParamVector(cfg)

	pv.ApplyToConfig(cfg, []float64{5, -1})
	if cfg.Bodies.AccelMagnitude != pv.Specs[0].Max {
		t.Errorf("expected accel_magnitude clamped to %v, got %v", pv.Specs[0].Max, cfg.Bodies.AccelMagnitude)
	}
	if cfg.Bodies.SpeedDecay != pv.Specs[1].Min {
		t.Errorf("expected speed_decay clamped to %v, got %v", pv.Specs[1].Min, cfg.Bodies.SpeedDecay)
	}
}

func TestFitnessEvaluator_ComputeFitness(t *testing.T) {
	fe := &FitnessEvaluator{targetSpeed: 1}

	tests := []struct {
		name   string
		speeds []float64
		want   float64
	}{
		{"on target", []float64{1, 1}, 0},
		{"symmetric miss", []float64{0.5, 1.5}, 0.25},
		{"single", []float64{3}, 4},
		{"empty", nil, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fe.computeFitness(tt.speeds); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFitnessEvaluator_CopyConfigIsIndependent(t *testing.T) {
	base := baseConfig(t)
	fe := &FitnessEvaluator{baseConfig: base}

	cfg := fe.copyConfig()
	cfg.Bodies.AccelMagnitude = 0.77
	if base.Bodies.AccelMagnitude == 0.77 {
		t.Error("copy shares state with the base config")
	}
}

func TestFitnessEvaluator_RunSimulation(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Bodies.Entities = 20
	cfg.Bodies.Trails = 2
	cfg.Headless.Gestures = 2
	cfg.Headless.GestureTicks = 30
	cfg.Grid.Width, cfg.Grid.Height = 200, 200
	cfg.Derived.GridWidth, cfg.Derived.GridHeight = 200, 200

	pv := NewParamVector(cfg)
	fe := NewFitnessEvaluator(pv, 120, []int64{1, 2}, cfg, 0.5)

	fitness := fe.Evaluate(pv.DefaultVector())
	if math.IsInf(fitness, 0) || math.IsNaN(fitness) || fitness < 0 {
		t.Errorf("expected a finite non-negative fitness, got %v", fitness)
	}
	if fe.LastSpeed() < 0 {
		t.Errorf("expected non-negative speed, got %v", fe.LastSpeed())
	}
}

func TestMeanOf(t *testing.T) {
	if got := meanOf(nil); got != 0 {
		t.Errorf("expected 0 for no values, got %v", got)
	}
	if got := meanOf([]float64{1, 2, 6}); got != 3 {
		t.Errorf("expected mean 3, got %v", got)
	}
}
