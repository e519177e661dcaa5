package model

import "time"

// DateLayout is the on-disk and wire format of a trading date.
const DateLayout = "2006-01-02"

// OHLCV is one trading day for one symbol. Date carries no time component
// and is always normalized to midnight UTC.
type OHLCV struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries is the cached daily history of a single symbol, unique by date
// and strictly ascending.
type PriceSeries struct {
	Symbol string
	Bars   []OHLCV
}

// Len returns the number of bars in the series.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Last returns the most recent bar and false when the series is empty.
func (s PriceSeries) Last() (OHLCV, bool) {
	if len(s.Bars) == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// CivilDate truncates t to its calendar date in t's location and returns that
// date at midnight UTC, the normalized form used for OHLCV.Date.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AlignedRow is one date present in both a sector series and the benchmark.
type AlignedRow struct {
	Date      time.Time
	Sector    OHLCV
	Benchmark OHLCV
}
