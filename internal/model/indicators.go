package model

// Quadrant is one of the four fixed sector-rotation labels.
type Quadrant string

const (
	QuadrantLeading       Quadrant = "Leading / Accumulation"
	QuadrantWeakening     Quadrant = "Weakening / Distribution"
	QuadrantImproving     Quadrant = "Improving"
	QuadrantDeteriorating Quadrant = "Deteriorating"
)

// Color is the display tag paired with a Quadrant.
type Color string

const (
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
)

// IndicatorResult is the computed state of one tracked instrument.
type IndicatorResult struct {
	Symbol     string   `json:"symbol"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	CMF        float64  `json:"cmf"`
	RSMomentum float64  `json:"rs_momentum"`
	Quadrant   Quadrant `json:"quadrant"`
	Color      Color    `json:"color"`
}
