// Package universe holds the fixed tables the pipeline iterates: the tracked
// instruments and the macro series. Both are built once and never mutated.
package universe

import (
	"fmt"
	"strings"
)

// Instrument is one tracked symbol with its display name and group.
type Instrument struct {
	Symbol string
	Name   string
	Group  string
}

// Group is an ordered set of instruments sharing a display group.
type Group struct {
	Name        string
	Instruments []Instrument
}

// Registry is an immutable, ordered instrument universe.
type Registry struct {
	instruments []Instrument
	bySymbol    map[string]int
}

// New flattens groups into a registry, preserving group order and the order
// of instruments inside each group. Symbols are upper-cased and must be unique.
func New(groups []Group) (*Registry, error) {
	r := &Registry{bySymbol: make(map[string]int)}
	for _, g := range groups {
		for _, inst := range g.Instruments {
			sym := strings.ToUpper(strings.TrimSpace(inst.Symbol))
			if sym == "" {
				return nil, fmt.Errorf("group %q: empty symbol", g.Name)
			}
			if _, dup := r.bySymbol[sym]; dup {
				return nil, fmt.Errorf("duplicate symbol %s", sym)
			}
			r.bySymbol[sym] = len(r.instruments)
			r.instruments = append(r.instruments, Instrument{Symbol: sym, Name: inst.Name, Group: g.Name})
		}
	}
	if len(r.instruments) == 0 {
		return nil, fmt.Errorf("universe is empty")
	}
	return r, nil
}

// Instruments returns a copy of the universe in configuration order.
func (r *Registry) Instruments() []Instrument {
	out := make([]Instrument, len(r.instruments))
	copy(out, r.instruments)
	return out
}

// Lookup finds an instrument by symbol.
func (r *Registry) Lookup(symbol string) (Instrument, bool) {
	i, ok := r.bySymbol[strings.ToUpper(symbol)]
	if !ok {
		return Instrument{}, false
	}
	return r.instruments[i], true
}

// Len returns the number of instruments.
func (r *Registry) Len() int { return len(r.instruments) }

// DefaultGroups is the standard sector-rotation universe.
func DefaultGroups() []Group {
	return []Group{
		{Name: "Equities - Core Sectors", Instruments: []Instrument{
			{Symbol: "XLK", Name: "Technology"},
			{Symbol: "XLF", Name: "Financials"},
			{Symbol: "XLE", Name: "Energy"},
			{Symbol: "XLY", Name: "Consumer Discretionary"},
			{Symbol: "XLP", Name: "Consumer Staples"},
			{Symbol: "XLV", Name: "Health Care"},
			{Symbol: "XLI", Name: "Industrials"},
			{Symbol: "XLB", Name: "Materials"},
			{Symbol: "XLRE", Name: "Real Estate"},
			{Symbol: "XLU", Name: "Utilities"},
			{Symbol: "XLC", Name: "Communication Services"},
		}},
		{Name: "Equities - Sub-Sectors", Instruments: []Instrument{
			{Symbol: "SMH", Name: "Semiconductors"},
			{Symbol: "ITA", Name: "Aerospace & Defense"},
			{Symbol: "XHB", Name: "Homebuilders"},
			{Symbol: "XRT", Name: "Retail"},
			{Symbol: "KRE", Name: "Regional Banks"},
			{Symbol: "IYT", Name: "Transportation"},
		}},
		{Name: "Fixed Income", Instruments: []Instrument{
			{Symbol: "TLT", Name: "20+ Year Treasuries (Safe Haven)"},
			{Symbol: "HYG", Name: "High Yield Corp Bonds (Credit Risk)"},
		}},
		{Name: "Commodities", Instruments: []Instrument{
			{Symbol: "GLD", Name: "Gold (Safe Haven)"},
			{Symbol: "CPER", Name: "Copper (Industrial Demand)"},
		}},
	}
}
