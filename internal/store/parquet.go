package store

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"SectorFlow/internal/model"
)

var _ SeriesStore = (*ParquetSeriesStore)(nil)

// barRecord is the Parquet schema for one cached trading day.
type barRecord struct {
	Date   int64   `parquet:"date,timestamp(millisecond)"` // Unix ms, midnight UTC
	Open   float64 `parquet:"open"`
	High   float64 `parquet:"high"`
	Low    float64 `parquet:"low"`
	Close  float64 `parquet:"close"`
	Volume float64 `parquet:"volume"`
}

// ParquetSeriesStore keeps each symbol's history in <Dir>/<SYMBOL>.parquet.
type ParquetSeriesStore struct {
	Dir string
}

// NewParquetSeriesStore creates a Parquet store rooted at dir.
func NewParquetSeriesStore(dir string) *ParquetSeriesStore {
	return &ParquetSeriesStore{Dir: dir}
}

// Path returns the file backing symbol.
func (s *ParquetSeriesStore) Path(symbol string) string {
	return seriesPath(s.Dir, symbol, "parquet")
}

func (s *ParquetSeriesStore) Load(symbol string) (model.PriceSeries, bool, error) {
	path := s.Path(symbol)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return model.PriceSeries{}, false, nil
		}
		return model.PriceSeries{}, false, fmt.Errorf("stat %s cache: %w", symbol, err)
	}

	rows, err := parquet.ReadFile[barRecord](path)
	if err != nil {
		return model.PriceSeries{}, false, fmt.Errorf("read %s cache: %w", symbol, err)
	}
	bars := make([]model.OHLCV, len(rows))
	for i, r := range rows {
		bars[i] = model.OHLCV{
			Date:   time.UnixMilli(r.Date).UTC(),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		}
	}
	return model.PriceSeries{Symbol: symbol, Bars: bars}, true, nil
}

func (s *ParquetSeriesStore) Save(symbol string, series model.PriceSeries) error {
	rows := make([]barRecord, len(series.Bars))
	for i, b := range series.Bars {
		rows[i] = barRecord{
			Date:   b.Date.UnixMilli(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	if err := parquet.WriteFile(s.Path(symbol), rows); err != nil {
		return fmt.Errorf("write %s cache: %w", symbol, err)
	}
	return nil
}
