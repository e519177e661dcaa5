package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SectorFlow/internal/model"
	"SectorFlow/internal/store"
)

// FetchError reports that the upstream request for Symbol failed and no
// cached series could stand in for it.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v (no cache)", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher keeps the per-symbol series cache current. A cold symbol is seeded
// with ColdRange of history; a cached symbol only requests IncrementalRange,
// which is wide enough to bridge weekends and holidays and to replace a
// previously stored partial candle.
type Fetcher struct {
	Source           PriceSource
	Store            store.SeriesStore
	ColdRange        Range
	IncrementalRange Range
	Now              func() time.Time
	Log              *slog.Logger
}

// NewFetcher creates a Fetcher with the default 1y / 5d windows.
func NewFetcher(src PriceSource, st store.SeriesStore, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		Source:           src,
		Store:            st,
		ColdRange:        Range1y,
		IncrementalRange: Range5d,
		Now:              time.Now,
		Log:              logger.With("component", "fetcher", "source", src.Name()),
	}
}

// Refresh returns the up-to-date series for symbol, persisting any merge.
// When the upstream fails it falls back to the cached series; a *FetchError
// is returned only when there is nothing cached.
func (f *Fetcher) Refresh(ctx context.Context, symbol string) (model.PriceSeries, error) {
	now := f.Now()

	cached, hasCache, err := f.Store.Load(symbol)
	if err != nil {
		f.Log.Warn("unreadable cache, treating as cold", "symbol", symbol, "error", err)
		cached, hasCache = model.PriceSeries{}, false
	}

	rng := f.ColdRange
	if hasCache {
		rng = f.IncrementalRange
	}

	fresh, err := f.Source.FetchDaily(ctx, symbol, rng)
	if err != nil {
		if !hasCache {
			return model.PriceSeries{}, &FetchError{Symbol: symbol, Err: err}
		}
		f.Log.Warn("live fetch failed, using cached data", "symbol", symbol, "error", err)
		return model.PriceSeries{Symbol: symbol, Bars: DropPartial(cached.Bars, now)}, nil
	}

	merged := DropPartial(MergeBars(cached.Bars, fresh), now)
	series := model.PriceSeries{Symbol: symbol, Bars: merged}
	if err := f.Store.Save(symbol, series); err != nil {
		f.Log.Error("persist series failed", "symbol", symbol, "error", err)
	}
	f.Log.Debug("series refreshed", "symbol", symbol, "range", string(rng), "fetched", len(fresh), "bars", len(merged))
	return series, nil
}
