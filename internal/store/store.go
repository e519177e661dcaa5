// Package store holds every durable file the pipeline touches: one price
// history per symbol, the macro cache, and the published dashboard artifact.
//
// No locking is done. A single writer per run is assumed; overlapping runs
// may corrupt a series file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"SectorFlow/internal/model"
)

// ErrNotFound is returned when a requested file has not been written yet.
var ErrNotFound = errors.New("not found")

// SeriesStore persists one ordered daily price history per symbol.
type SeriesStore interface {
	// Load returns the cached series, or ok=false when none exists.
	Load(symbol string) (series model.PriceSeries, ok bool, err error)
	// Save replaces the cached series for symbol.
	Save(symbol string, series model.PriceSeries) error
}

// Format selects the on-disk encoding of series files.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// NewSeriesStore returns the file-backed store for format rooted at dir.
func NewSeriesStore(format Format, dir string) (SeriesStore, error) {
	switch format {
	case FormatCSV, "":
		return NewCSVSeriesStore(dir), nil
	case FormatParquet:
		return NewParquetSeriesStore(dir), nil
	default:
		return nil, fmt.Errorf("unknown series format %q", format)
	}
}

func seriesPath(dir, symbol, ext string) string {
	return filepath.Join(dir, strings.ToUpper(symbol)+"."+ext)
}

// writeFileAtomic writes data to a sibling temp file and renames it over
// path, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
