package sim

import (
	"fmt"
	"sort"
	"strings"
)

// Precinct is the static roster data for one polling place.
// Read once by the input layer and never mutated during simulation.
type Precinct struct {
	Number          int
	Name            string
	TurnoutPercent  float64
	RegisteredCount int
	ExpectedVoters  int
	ExpectedPerHour int
	Stations        int // informational; the search picks its own counts
	MinorityPercent float64

	// HistogramStations lists candidate station counts whose wait histogram is emitted.
	HistogramStations []int
}

// WantsHistogram reports whether the histogram for stations should be emitted.
func (p *Precinct) WantsHistogram(stations int) bool {
	for _, s := range p.HistogramStations {
		if s == stations {
			return true
		}
	}
	return false
}

// Validate rejects roster values that make no sense for any precinct.
func (p *Precinct) Validate() error {
	if p.ExpectedVoters < 0 {
		return fmt.Errorf("precinct %d: expected voters must be >= 0, got %d", p.Number, p.ExpectedVoters)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("precinct %d: name must not be empty", p.Number)
	}
	return nil
}

// String renders the precinct as a fixed-width roster line.
func (p *Precinct) String() string {
	hs := append([]int(nil), p.HistogramStations...)
	sort.Ints(hs)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%4d %-25s%8.2f%8d%8d%8d%3d%8.2f HH ",
		p.Number, p.Name, p.TurnoutPercent, p.RegisteredCount, p.ExpectedVoters,
		p.ExpectedPerHour, p.Stations, p.MinorityPercent)
	for _, s := range hs {
		fmt.Fprintf(&sb, "%4d", s)
	}
	sb.WriteString(" HH")
	return sb.String()
}

// SortPrecincts orders precincts by number, the order in which a batch simulates them.
func SortPrecincts(pcts []Precinct) {
	sort.SliceStable(pcts, func(i, j int) bool {
		return pcts[i].Number < pcts[j].Number
	})
}
