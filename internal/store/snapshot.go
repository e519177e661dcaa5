package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"SectorFlow/internal/model"
)

// SnapshotFile is the published dashboard artifact on disk.
type SnapshotFile struct {
	Path string
}

// NewSnapshotFile creates the artifact handle at <dir>/dashboard_data.json.
func NewSnapshotFile(dir string) *SnapshotFile {
	return &SnapshotFile{Path: filepath.Join(dir, "dashboard_data.json")}
}

// Write replaces the artifact. The previous artifact stays in place if
// encoding or writing fails.
func (f *SnapshotFile) Write(snap *model.DashboardSnapshot) error {
	out := *snap
	if out.Sectors == nil {
		out.Sectors = []model.IndicatorResult{}
	}
	if out.Macro == nil {
		out.Macro = []model.MacroObservation{}
	}
	data, err := json.MarshalIndent(&out, "", "    ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := writeFileAtomic(f.Path, data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadRaw returns the artifact bytes as written. ErrNotFound means no run has
// completed yet.
func (f *SnapshotFile) ReadRaw() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Read decodes the artifact.
func (f *SnapshotFile) Read() (*model.DashboardSnapshot, error) {
	data, err := f.ReadRaw()
	if err != nil {
		return nil, err
	}
	var snap model.DashboardSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
