package universe

// MacroSeries is one FRED series tracked by the macro snapshot.
type MacroSeries struct {
	ID   string
	Name string
}

var macroSeries = [...]MacroSeries{
	{ID: "DGS2", Name: "2Y Treasury Yield"},
	{ID: "DGS10", Name: "10Y Treasury Yield"},
	{ID: "DGS20", Name: "20Y Treasury Yield"},
	{ID: "DGS30", Name: "30Y Treasury Yield"},
	{ID: "T10Y2Y", Name: "Yield Curve Slope (10Y-2Y)"},
	{ID: "T10YIE", Name: "Inflation Expectations"},
	{ID: "BAMLH0A0HYM2", Name: "High Yield Credit Spreads"},
}

// Macro returns the fixed macro series list in display order.
func Macro() []MacroSeries {
	out := make([]MacroSeries, len(macroSeries))
	copy(out, macroSeries[:])
	return out
}
