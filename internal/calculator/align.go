package calculator

import (
	"time"

	"SectorFlow/internal/model"
)

// Align inner-joins a sector series with the benchmark on trading date. The
// result follows the sector series' order; an empty or short result is valid
// and must be checked by the caller.
func Align(sector, benchmark model.PriceSeries) []model.AlignedRow {
	bench := make(map[time.Time]model.OHLCV, len(benchmark.Bars))
	for _, b := range benchmark.Bars {
		bench[model.CivilDate(b.Date)] = b
	}

	rows := make([]model.AlignedRow, 0, min(len(sector.Bars), len(benchmark.Bars)))
	for _, s := range sector.Bars {
		date := model.CivilDate(s.Date)
		b, ok := bench[date]
		if !ok {
			continue
		}
		rows = append(rows, model.AlignedRow{Date: date, Sector: s, Benchmark: b})
	}
	return rows
}
