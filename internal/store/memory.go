package store

import (
	"strings"
	"sync"

	"SectorFlow/internal/model"
)

var _ SeriesStore = (*MemorySeriesStore)(nil)

// MemorySeriesStore is an in-process SeriesStore for tests and dry runs.
type MemorySeriesStore struct {
	mu     sync.Mutex
	series map[string]model.PriceSeries
	Saves  int
}

// NewMemorySeriesStore creates an empty in-memory store.
func NewMemorySeriesStore() *MemorySeriesStore {
	return &MemorySeriesStore{series: make(map[string]model.PriceSeries)}
}

func (m *MemorySeriesStore) Load(symbol string) (model.PriceSeries, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.series[strings.ToUpper(symbol)]
	if !ok {
		return model.PriceSeries{}, false, nil
	}
	return copySeries(s), true, nil
}

func (m *MemorySeriesStore) Save(symbol string, series model.PriceSeries) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[strings.ToUpper(symbol)] = copySeries(series)
	m.Saves++
	return nil
}

func copySeries(s model.PriceSeries) model.PriceSeries {
	bars := make([]model.OHLCV, len(s.Bars))
	copy(bars, s.Bars)
	return model.PriceSeries{Symbol: s.Symbol, Bars: bars}
}
