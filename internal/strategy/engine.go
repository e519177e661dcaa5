package strategy

import (
	"SectorFlow/internal/calculator"
	"SectorFlow/internal/model"
	"SectorFlow/internal/universe"
)

// Rules is the ordered quadrant mapping; the first matching rule wins.
var Rules = []struct {
	Match    func(cmf, rs float64) bool
	Quadrant model.Quadrant
	Color    model.Color
}{
	{func(cmf, rs float64) bool { return cmf > 0 && rs > 0 }, model.QuadrantLeading, model.ColorGreen},
	{func(cmf, rs float64) bool { return cmf < 0 && rs < 0 }, model.QuadrantWeakening, model.ColorRed},
	{func(cmf, rs float64) bool { return cmf > 0 && rs <= 0 }, model.QuadrantImproving, model.ColorOrange},
}

// Default catches everything the rules leave out, including either input
// being exactly zero while the other is not positive.
var Default = struct {
	Quadrant model.Quadrant
	Color    model.Color
}{model.QuadrantDeteriorating, model.ColorYellow}

// Classify maps unrounded (cmf, rs momentum) values to a quadrant and color.
func Classify(cmf, rs float64) (model.Quadrant, model.Color) {
	for _, r := range Rules {
		if r.Match(cmf, rs) {
			return r.Quadrant, r.Color
		}
	}
	return Default.Quadrant, Default.Color
}

// Evaluate builds the published result for one instrument. The quadrant is
// picked from the unrounded indicators; only the published values are rounded.
func Evaluate(inst universe.Instrument, ind calculator.Indicators) model.IndicatorResult {
	q, c := Classify(ind.CMF, ind.RSMomentum)
	out := ind.Rounded()
	return model.IndicatorResult{
		Symbol:     inst.Symbol,
		Name:       inst.Name,
		Group:      inst.Group,
		CMF:        out.CMF,
		RSMomentum: out.RSMomentum,
		Quadrant:   q,
		Color:      c,
	}
}
