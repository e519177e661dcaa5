package model

// LastUpdatedLayout formats DashboardSnapshot.LastUpdated.
const LastUpdatedLayout = "2006-01-02 15:04:05"

// MacroObservation is the latest single value of one macro series. Value is
// kept as the source emitted it; FRED uses "." for a missing observation.
type MacroObservation struct {
	Indicator string `json:"indicator"`
	Value     string `json:"value"`
	Date      string `json:"date"`
	Series    string `json:"series"`
}

// DashboardSnapshot is the single published artifact.
type DashboardSnapshot struct {
	Sectors     []IndicatorResult  `json:"sectors"`
	Macro       []MacroObservation `json:"macro"`
	LastUpdated string             `json:"last_updated"`
}
