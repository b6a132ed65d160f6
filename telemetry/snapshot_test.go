package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/gust/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:  SnapshotVersion,
		RNGSeed:  42,
		Width:    20,
		Height:   10,
		CellSize: 10,
		Rows:     1,
		Columns:  2,
		Tick:     1000,
		Cells:    [][2]float64{{0, 0}, {3, -4}},
		Sources: []SourceState{
			{ID: "mouse", FromX: 5, FromY: 5, WindX: -10, WindY: 0},
		},
		Bodies: []BodyState{
			{Kind: components.KindEntity, X: 1, Y: 2, VelX: 0.5},
			{Kind: components.KindTrail, X: 8, Y: 9, Waypoints: [][2]float64{{0, 0}, {8, 9}}},
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if filepath.Base(path) != "snapshot_1000.json" {
		t.Errorf("unexpected file name %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.Tick != 1000 || loaded.RNGSeed != 42 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if loaded.Cells[1] != [2]float64{3, -4} {
		t.Errorf("cell mismatch: %v", loaded.Cells[1])
	}
	if loaded.Sources[0].ID != "mouse" || loaded.Sources[0].WindX != -10 {
		t.Errorf("source mismatch: %+v", loaded.Sources[0])
	}
	if loaded.Bodies[1].Kind != components.KindTrail || len(loaded.Bodies[1].Waypoints) != 2 {
		t.Errorf("body mismatch: %+v", loaded.Bodies[1])
	}
	if loaded.Bodies[0].Waypoints != nil {
		t.Error("entity body should have no waypoints")
	}
}

func TestLoadSnapshotRejectsMismatchedCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	data := []byte(`{"version":1,"rows":2,"columns":2,"cells":[[0,0]]}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected error for truncated cells")
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version":0}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}
