// Package dashboard runs one full pipeline pass and publishes the snapshot.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"SectorFlow/internal/calculator"
	"SectorFlow/internal/model"
	"SectorFlow/internal/strategy"
	"SectorFlow/internal/universe"
)

// SeriesRefresher returns the up-to-date history of one symbol.
type SeriesRefresher interface {
	Refresh(ctx context.Context, symbol string) (model.PriceSeries, error)
}

// MacroRefresher returns the macro batch; it never fails.
type MacroRefresher interface {
	Refresh(ctx context.Context) []model.MacroObservation
}

// SnapshotWriter publishes the artifact, replacing any prior one.
type SnapshotWriter interface {
	Write(snap *model.DashboardSnapshot) error
}

// Stage names where a symbol was dropped.
type Stage string

const (
	StageFetch    Stage = "fetch"
	StageAlign    Stage = "align"
	StageCompute  Stage = "compute"
	StageClassify Stage = "classify"
)

type symbolOutcome struct {
	Result model.IndicatorResult
	Stage  Stage
	Err    error
}

func (o symbolOutcome) ok() bool { return o.Err == nil }

// Builder wires the collaborators of a run.
type Builder struct {
	Benchmark string
	Registry  *universe.Registry
	Series    SeriesRefresher
	Macro     MacroRefresher
	Writer    SnapshotWriter
	Now       func() time.Time
	Log       *slog.Logger
}

// NewBuilder creates a Builder. macro may be nil, in which case the snapshot
// carries an empty macro list.
func NewBuilder(benchmark string, reg *universe.Registry, series SeriesRefresher, macro MacroRefresher, w SnapshotWriter, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		Benchmark: benchmark,
		Registry:  reg,
		Series:    series,
		Macro:     macro,
		Writer:    w,
		Now:       time.Now,
		Log:       logger.With("component", "dashboard"),
	}
}

// Run performs one pass. It returns an error only when the benchmark cannot
// be refreshed, ctx is cancelled before publishing, or the write fails; in
// each of those cases the prior artifact is left untouched.
func (b *Builder) Run(ctx context.Context) (*model.DashboardSnapshot, error) {
	log := b.Log.With("run_id", uuid.NewString())
	started := b.Now()
	log.Info("run started", "benchmark", b.Benchmark, "symbols", b.Registry.Len())

	bench, err := b.Series.Refresh(ctx, b.Benchmark)
	if err != nil {
		log.Error("benchmark refresh failed, aborting", "symbol", b.Benchmark, "error", err)
		return nil, fmt.Errorf("benchmark %s: %w", b.Benchmark, err)
	}

	sectors := make([]model.IndicatorResult, 0, b.Registry.Len())
	for _, inst := range b.Registry.Instruments() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := b.evaluate(ctx, inst, bench)
		if !out.ok() {
			log.Warn("symbol skipped", "symbol", inst.Symbol, "stage", out.Stage, "error", out.Err)
			continue
		}
		sectors = append(sectors, out.Result)
	}

	macro := []model.MacroObservation{}
	if b.Macro != nil {
		if obs := b.Macro.Refresh(ctx); obs != nil {
			macro = obs
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := &model.DashboardSnapshot{
		Sectors:     sectors,
		Macro:       macro,
		LastUpdated: b.Now().Format(model.LastUpdatedLayout),
	}
	if err := b.Writer.Write(snap); err != nil {
		log.Error("publish failed", "error", err)
		return nil, fmt.Errorf("publish snapshot: %w", err)
	}
	log.Info("run finished",
		"sectors", len(sectors),
		"skipped", b.Registry.Len()-len(sectors),
		"macro", len(macro),
		"elapsed", b.Now().Sub(started).Round(time.Millisecond))
	return snap, nil
}

func (b *Builder) evaluate(ctx context.Context, inst universe.Instrument, bench model.PriceSeries) symbolOutcome {
	series, err := b.Series.Refresh(ctx, inst.Symbol)
	if err != nil {
		return symbolOutcome{Stage: StageFetch, Err: err}
	}
	rows := calculator.Align(series, bench)
	if len(rows) == 0 {
		return symbolOutcome{Stage: StageAlign, Err: fmt.Errorf("no dates shared with %s", b.Benchmark)}
	}
	ind, err := calculator.Compute(rows)
	if err != nil {
		return symbolOutcome{Stage: StageCompute, Err: err}
	}
	return symbolOutcome{Result: strategy.Evaluate(inst, ind), Stage: StageClassify}
}
