package main

import (
	"fmt"
	"log/slog"
	"os"

	"SectorFlow/internal/collector"
	"SectorFlow/internal/config"
	"SectorFlow/internal/dashboard"
	"SectorFlow/internal/macro"
	"SectorFlow/internal/store"
)

func newPriceSource(cfg *config.Config) collector.PriceSource {
	ps := cfg.PriceSource
	if ps.Provider == config.ProviderFinanceGo {
		return collector.NewChartSource(cfg.Proxy, ps.Timeout)
	}
	return collector.NewYahooSource(ps.BaseURL, ps.UserAgent, cfg.Proxy, ps.Timeout)
}

// newBuilder assembles a dashboard builder from validated config.
func newBuilder(cfg *config.Config, logger *slog.Logger) (*dashboard.Builder, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	series, err := store.NewSeriesStore(store.Format(cfg.Cache.Format), cfg.DataDir)
	if err != nil {
		return nil, err
	}
	src := newPriceSource(cfg)
	logger.Info("price source", "provider", src.Name(), "cache", cfg.Cache.Format)

	fetcher := collector.NewFetcher(src, series, logger)
	fetcher.ColdRange = collector.Range(cfg.PriceSource.ColdRange)
	fetcher.IncrementalRange = collector.Range(cfg.PriceSource.IncrementalRange)

	var macroSrc macro.Source
	if cfg.Macro.APIKey != "" {
		macroSrc = macro.NewFREDClient(cfg.Macro.BaseURL, cfg.Macro.APIKey, cfg.Proxy, cfg.Macro.Timeout)
	}
	svc := macro.NewService(macroSrc, store.NewMacroCache(cfg.DataDir), logger)

	return dashboard.NewBuilder(cfg.Benchmark, reg, fetcher, svc, store.NewSnapshotFile(cfg.DataDir), logger), nil
}
