package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"SectorFlow/internal/model"
)

var macroHeader = []string{"indicator", "value", "date", "series"}

// MacroCache is the flat file holding the most recent successful macro batch.
// Save replaces the whole file; rows are never merged across batches.
type MacroCache struct {
	Path string
}

// NewMacroCache creates a cache stored at <dir>/macro_cache.csv.
func NewMacroCache(dir string) *MacroCache {
	return &MacroCache{Path: filepath.Join(dir, "macro_cache.csv")}
}

// Load returns the cached batch, or ok=false when no batch was ever saved.
func (c *MacroCache) Load() ([]model.MacroObservation, bool, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read macro cache: %w", err)
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(macroHeader)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("parse macro cache: %w", err)
	}
	if len(rows) == 0 {
		return []model.MacroObservation{}, true, nil
	}

	obs := make([]model.MacroObservation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		obs = append(obs, model.MacroObservation{
			Indicator: row[0],
			Value:     row[1],
			Date:      row[2],
			Series:    row[3],
		})
	}
	return obs, true, nil
}

// Save overwrites the cache with obs.
func (c *MacroCache) Save(obs []model.MacroObservation) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(macroHeader); err != nil {
		return err
	}
	for _, o := range obs {
		if err := w.Write([]string{o.Indicator, o.Value, o.Date, o.Series}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode macro cache: %w", err)
	}
	if err := writeFileAtomic(c.Path, buf.Bytes()); err != nil {
		return fmt.Errorf("write macro cache: %w", err)
	}
	return nil
}
