package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SectorFlow/internal/model"
)

var _ PriceSource = (*MockSource)(nil)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	mu    sync.Mutex
	Bars  map[string][]model.OHLCV
	Errs  map[string]error
	Calls []MockCall
}

// MockCall records one FetchDaily invocation.
type MockCall struct {
	Symbol string
	Range  Range
}

// NewMockSource creates an empty MockSource.
func NewMockSource() *MockSource {
	return &MockSource{Bars: make(map[string][]model.OHLCV), Errs: make(map[string]error)}
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchDaily(_ context.Context, symbol string, rng Range) ([]model.OHLCV, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Symbol: symbol, Range: rng})
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	bars, ok := m.Bars[symbol]
	if !ok {
		return nil, fmt.Errorf("mock: status 404 for %s", symbol)
	}
	out := make([]model.OHLCV, len(bars))
	copy(out, bars)
	return out, nil
}

// LastCall returns the most recent request for symbol.
func (m *MockSource) LastCall(symbol string) (MockCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Calls) - 1; i >= 0; i-- {
		if m.Calls[i].Symbol == symbol {
			return m.Calls[i], true
		}
	}
	return MockCall{}, false
}

// GenerateBars builds count consecutive daily bars ending the day before end,
// drifting 0.1% per day around basePrice.
func GenerateBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	last := model.CivilDate(end)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Date:   last.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
