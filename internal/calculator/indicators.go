package calculator

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"SectorFlow/internal/model"
)

// Published precision of each indicator.
const (
	CMFPlaces        = 4
	RSMomentumPlaces = 2
)

// Indicators is the unrounded output of Compute.
type Indicators struct {
	CMF        float64
	RSMomentum float64
}

// Rounded returns the published form: cmf to 4 places, momentum to 2.
func (ind Indicators) Rounded() Indicators {
	return Indicators{
		CMF:        Round(ind.CMF, CMFPlaces),
		RSMomentum: Round(ind.RSMomentum, RSMomentumPlaces),
	}
}

// Compute derives CMF(21) and RS momentum from an aligned pair. Histories
// shorter than MinAlignedRows return an *InsufficientDataError. The values
// are not rounded; see Indicators.Rounded.
func Compute(rows []model.AlignedRow) (Indicators, error) {
	if len(rows) < MinAlignedRows {
		return Indicators{}, &InsufficientDataError{Have: len(rows), Need: MinAlignedRows}
	}

	sector := make([]model.OHLCV, len(rows))
	for i, r := range rows {
		sector[i] = r.Sector
	}
	cmf, err := ChaikinMoneyFlow(sector, CMFWindow)
	if err != nil {
		return Indicators{}, fmt.Errorf("cmf: %w", err)
	}
	mom, err := RSMomentum(rows, MomentumLookback)
	if err != nil {
		return Indicators{}, fmt.Errorf("rs momentum: %w", err)
	}
	return Indicators{CMF: cmf, RSMomentum: mom}, nil
}

// exactDigits covers the full decimal expansion of any float64.
const exactDigits = 1074

// Round rounds the exact binary value of v to places decimal places, ties
// to even. 2.675 is stored as 2.67499..., so it rounds to 2.67.
func Round(v float64, places int32) float64 {
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	if err != nil {
		return v
	}
	f, _ := d.RoundBank(places).Float64()
	return f
}
