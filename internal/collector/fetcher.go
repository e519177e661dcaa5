package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"SectorFlow/internal/model"
)

// PriceSource fetches daily bars for a symbol over a lookback range. Bars
// with any missing field are dropped by the source; the result is not
// required to be sorted.
type PriceSource interface {
	FetchDaily(ctx context.Context, symbol string, rng Range) ([]model.OHLCV, error)
	Name() string
}

// Range is an upstream lookback window such as "5d" or "1y".
type Range string

const (
	Range5d  Range = "5d"
	Range1mo Range = "1mo"
	Range3mo Range = "3mo"
	Range6mo Range = "6mo"
	Range1y  Range = "1y"
	Range2y  Range = "2y"
)

// Start returns the first instant covered by r when the window ends at now.
// Supported units are d, wk, mo and y.
func (r Range) Start(now time.Time) (time.Time, error) {
	s := strings.TrimSpace(string(r))
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return time.Time{}, fmt.Errorf("invalid range %q", r)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil || n <= 0 {
		return time.Time{}, fmt.Errorf("invalid range %q", r)
	}
	switch s[i:] {
	case "d":
		return now.AddDate(0, 0, -n), nil
	case "wk":
		return now.AddDate(0, 0, -7*n), nil
	case "mo":
		return now.AddDate(0, -n, 0), nil
	case "y":
		return now.AddDate(-n, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("invalid range unit in %q", r)
	}
}

// Validate reports whether r parses.
func (r Range) Validate() error {
	_, err := r.Start(time.Now())
	return err
}
