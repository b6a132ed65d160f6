package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/gust/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the full field and body state at one tick, for offline
// inspection.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	CellSize float64 `json:"cell_size"`
	Rows     int     `json:"rows"`
	Columns  int     `json:"columns"`

	Tick int32 `json:"tick"`

	// Cells holds one [x, y] vector per cell in index order.
	Cells   [][2]float64  `json:"cells"`
	Sources []SourceState `json:"sources"`
	Bodies  []BodyState   `json:"bodies"`
}

// SourceState holds one live wind source.
type SourceState struct {
	ID    string  `json:"id"`
	FromX float64 `json:"from_x"`
	FromY float64 `json:"from_y"`
	WindX float64 `json:"wind_x"`
	WindY float64 `json:"wind_y"`
}

// BodyState holds one body's kinematic state.
type BodyState struct {
	Kind components.Kind `json:"kind"`

	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VelX float64 `json:"vel_x"`
	VelY float64 `json:"vel_y"`

	// Trail waypoints as [x, y], trail bodies only
	Waypoints [][2]float64 `json:"waypoints,omitempty"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	if len(snapshot.Cells) != snapshot.Rows*snapshot.Columns {
		return nil, fmt.Errorf("snapshot has %d cells, want %d", len(snapshot.Cells), snapshot.Rows*snapshot.Columns)
	}

	return &snapshot, nil
}
