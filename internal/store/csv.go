package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"SectorFlow/internal/model"
)

var _ SeriesStore = (*CSVSeriesStore)(nil)

var seriesHeader = []string{"date", "open", "high", "low", "close", "volume"}

// CSVSeriesStore keeps each symbol's history in <Dir>/<SYMBOL>.csv with one
// row per date.
type CSVSeriesStore struct {
	Dir string
}

// NewCSVSeriesStore creates a CSV store rooted at dir.
func NewCSVSeriesStore(dir string) *CSVSeriesStore {
	return &CSVSeriesStore{Dir: dir}
}

// Path returns the file backing symbol.
func (s *CSVSeriesStore) Path(symbol string) string {
	return seriesPath(s.Dir, symbol, "csv")
}

func (s *CSVSeriesStore) Load(symbol string) (model.PriceSeries, bool, error) {
	data, err := os.ReadFile(s.Path(symbol))
	if err != nil {
		if os.IsNotExist(err) {
			return model.PriceSeries{}, false, nil
		}
		return model.PriceSeries{}, false, fmt.Errorf("read %s cache: %w", symbol, err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return model.PriceSeries{}, false, fmt.Errorf("parse %s cache: %w", symbol, err)
	}
	if len(rows) == 0 {
		return model.PriceSeries{Symbol: symbol}, true, nil
	}
	if len(rows[0]) < len(seriesHeader) || rows[0][0] != seriesHeader[0] {
		return model.PriceSeries{}, false, fmt.Errorf("parse %s cache: unexpected header %v", symbol, rows[0])
	}

	bars := make([]model.OHLCV, 0, len(rows)-1)
	for i, row := range rows[1:] {
		bar, err := parseSeriesRow(row)
		if err != nil {
			return model.PriceSeries{}, false, fmt.Errorf("parse %s cache line %d: %w", symbol, i+2, err)
		}
		bars = append(bars, bar)
	}
	return model.PriceSeries{Symbol: symbol, Bars: bars}, true, nil
}

func (s *CSVSeriesStore) Save(symbol string, series model.PriceSeries) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(seriesHeader); err != nil {
		return err
	}
	for _, b := range series.Bars {
		row := []string{
			b.Date.Format(model.DateLayout),
			formatFloat(b.Open),
			formatFloat(b.High),
			formatFloat(b.Low),
			formatFloat(b.Close),
			formatFloat(b.Volume),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode %s cache: %w", symbol, err)
	}
	if err := writeFileAtomic(s.Path(symbol), buf.Bytes()); err != nil {
		return fmt.Errorf("write %s cache: %w", symbol, err)
	}
	return nil
}

func parseSeriesRow(row []string) (model.OHLCV, error) {
	if len(row) < len(seriesHeader) {
		return model.OHLCV{}, fmt.Errorf("want %d columns, got %d", len(seriesHeader), len(row))
	}
	date, err := time.Parse(model.DateLayout, row[0])
	if err != nil {
		return model.OHLCV{}, err
	}
	var vals [5]float64
	for i := range vals {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return model.OHLCV{}, fmt.Errorf("column %s: %w", seriesHeader[i+1], err)
		}
		vals[i] = v
	}
	return model.OHLCV{
		Date:   date,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
