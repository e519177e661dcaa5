// Package macro maintains the latest-value macro snapshot with a last-good
// file fallback.
package macro

import (
	"context"
	"log/slog"

	"SectorFlow/internal/model"
	"SectorFlow/internal/universe"
)

// Cache persists the last non-empty batch.
type Cache interface {
	Load() ([]model.MacroObservation, bool, error)
	Save(obs []model.MacroObservation) error
}

// Service refreshes the fixed macro series list.
type Service struct {
	Source Source
	Cache  Cache
	Series []universe.MacroSeries
	Log    *slog.Logger
}

// NewService creates a service over the default series list. A nil source
// disables fetching: Refresh then returns an empty batch and never reads the
// cache.
func NewService(src Source, cache Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Source: src,
		Cache:  cache,
		Series: universe.Macro(),
		Log:    logger.With("component", "macro"),
	}
}

// Refresh fetches every series independently. Failed series are logged and
// omitted. A non-empty batch replaces the cache; an empty one falls back to
// it. The result is never nil.
func (s *Service) Refresh(ctx context.Context) []model.MacroObservation {
	if s.Source == nil {
		s.Log.Warn("macro source not configured, skipping")
		return []model.MacroObservation{}
	}

	batch := make([]model.MacroObservation, 0, len(s.Series))
	for _, series := range s.Series {
		if ctx.Err() != nil {
			break
		}
		obs, err := s.Source.Latest(ctx, series)
		if err != nil {
			s.Log.Warn("macro series failed", "series", series.ID, "error", err)
			continue
		}
		batch = append(batch, obs)
	}

	if len(batch) > 0 {
		if err := s.Cache.Save(batch); err != nil {
			s.Log.Warn("save macro cache failed", "error", err)
		}
		s.Log.Info("macro refreshed", "series", len(batch))
		return batch
	}

	cached, ok, err := s.Cache.Load()
	if err != nil {
		s.Log.Warn("load macro cache failed", "error", err)
		return []model.MacroObservation{}
	}
	if !ok {
		s.Log.Warn("no macro data and no cache")
		return []model.MacroObservation{}
	}
	s.Log.Warn("macro fetch failed, using cache", "series", len(cached))
	if cached == nil {
		cached = []model.MacroObservation{}
	}
	return cached
}
