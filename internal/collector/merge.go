package collector

import (
	"sort"
	"time"

	"SectorFlow/internal/model"
)

// MergeBars combines cached and fresh bars into one series unique by date,
// preferring fresh bars over cached ones, sorted ascending.
func MergeBars(cached, fresh []model.OHLCV) []model.OHLCV {
	seen := make(map[time.Time]model.OHLCV, len(cached)+len(fresh))
	for _, b := range cached {
		seen[model.CivilDate(b.Date)] = b
	}
	for _, b := range fresh {
		seen[model.CivilDate(b.Date)] = b
	}

	merged := make([]model.OHLCV, 0, len(seen))
	for d, b := range seen {
		b.Date = d
		merged = append(merged, b)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date) })
	return merged
}

// DropPartial removes bars dated on or after today's calendar date. The
// current session's candle is still forming and is never kept.
func DropPartial(bars []model.OHLCV, now time.Time) []model.OHLCV {
	today := model.CivilDate(now)
	out := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if b.Date.Before(today) {
			out = append(out, b)
		}
	}
	return out
}
