package calculator

import (
	"errors"
	"fmt"
	"math"

	"SectorFlow/internal/model"
)

// MomentumLookback is the index offset of the RS reference point: the ratio
// at position n-MomentumLookback is compared with the latest one at n-1, so
// the window spans 20 sessions.
const MomentumLookback = 21

// RelativeStrength returns the per-row ratio of sector close to benchmark close.
func RelativeStrength(rows []model.AlignedRow) ([]float64, error) {
	rs := make([]float64, len(rows))
	for i, r := range rows {
		if r.Benchmark.Close == 0 {
			return nil, fmt.Errorf("benchmark close is zero on %s", r.Date.Format(model.DateLayout))
		}
		rs[i] = r.Sector.Close / r.Benchmark.Close
	}
	return rs, nil
}

// RSMomentum is the percent change of the relative-strength line between
// rs[n-lookback] and rs[n-1].
func RSMomentum(rows []model.AlignedRow, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, errors.New("lookback must be positive")
	}
	if len(rows) < lookback {
		return 0, &InsufficientDataError{Have: len(rows), Need: lookback}
	}
	rs, err := RelativeStrength(rows)
	if err != nil {
		return 0, err
	}
	current := rs[len(rs)-1]
	past := rs[len(rs)-lookback]
	if past == 0 {
		return 0, fmt.Errorf("reference relative strength is zero")
	}
	m := (current - past) / past * 100
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, fmt.Errorf("rs momentum is not finite")
	}
	return m, nil
}
