package calculator

import (
	"errors"
	"fmt"
	"math"

	"SectorFlow/internal/model"
)

const (
	// CMFWindow is the Chaikin Money Flow rolling window.
	CMFWindow = 21
	// MinAlignedRows is the shortest aligned history indicators are computed on.
	MinAlignedRows = 22

	// zeroRangeDenominator replaces high-low on days with no intraday range.
	zeroRangeDenominator = 0.001
)

// ErrInsufficientData marks histories too short (or too empty) to compute on.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError reports the rows available against the rows needed.
type InsufficientDataError struct {
	Have   int
	Need   int
	Reason string
}

func (e *InsufficientDataError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("insufficient data: %s", e.Reason)
	}
	return fmt.Sprintf("insufficient data: have %d rows, need %d", e.Have, e.Need)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

// MoneyFlowMultiplier returns ((close-low)-(high-close))/(high-low) for one
// bar. A zero range divides by a small constant, pulling the value to zero.
func MoneyFlowMultiplier(b model.OHLCV) float64 {
	hl := b.High - b.Low
	if hl == 0 {
		hl = zeroRangeDenominator
	}
	return ((b.Close - b.Low) - (b.High - b.Close)) / hl
}

// ChaikinMoneyFlow computes CMF over the trailing window of bars: the sum of
// money-flow volume divided by the sum of volume. Only the latest value is
// returned.
func ChaikinMoneyFlow(bars []model.OHLCV, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}
	if len(bars) < window {
		return 0, &InsufficientDataError{Have: len(bars), Need: window}
	}
	var mfv, vol float64
	for _, b := range bars[len(bars)-window:] {
		mfv += MoneyFlowMultiplier(b) * b.Volume
		vol += b.Volume
	}
	if vol == 0 {
		return 0, &InsufficientDataError{Have: len(bars), Need: window, Reason: "zero volume in CMF window"}
	}
	cmf := mfv / vol
	if math.IsNaN(cmf) || math.IsInf(cmf, 0) {
		return 0, fmt.Errorf("cmf is not finite")
	}
	return cmf, nil
}
