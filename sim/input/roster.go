package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/votesim/votesim/sim"
)

// precinctFields is the number of whitespace-separated tokens in one roster record:
// number name turnout registered expected perHour stations minority h1 h2 h3.
const precinctFields = 11

// LoadPrecincts reads the precinct roster at path.
func LoadPrecincts(path string) ([]sim.Precinct, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open precincts: %w", err)
	}
	defer f.Close()

	pcts, err := ParsePrecincts(f)
	if err != nil {
		return nil, fmt.Errorf("parse precincts %s: %w", path, err)
	}
	return pcts, nil
}

// ParsePrecincts reads roster records until the input is exhausted.
// Records may span lines; a trailing partial record is an error.
// Precinct numbers must be unique.
func ParsePrecincts(r io.Reader) ([]sim.Precinct, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	pcts := make([]sim.Precinct, 0)
	seen := make(map[int]bool)
	record := make([]string, 0, precinctFields)
	for scanner.Scan() {
		record = append(record, scanner.Text())
		if len(record) < precinctFields {
			continue
		}
		p, err := parsePrecinct(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(pcts)+1, err)
		}
		if seen[p.Number] {
			return nil, fmt.Errorf("record %d: duplicate precinct number %d", len(pcts)+1, p.Number)
		}
		seen[p.Number] = true
		pcts = append(pcts, p)
		record = record[:0]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(record) > 0 {
		return nil, fmt.Errorf("record %d: want %d fields, got %d", len(pcts)+1, precinctFields, len(record))
	}
	return pcts, nil
}

func parsePrecinct(f []string) (sim.Precinct, error) {
	var p sim.Precinct
	var err error
	ints := []struct {
		name string
		src  string
		dst  *int
	}{
		{"number", f[0], &p.Number},
		{"registered", f[3], &p.RegisteredCount},
		{"expected", f[4], &p.ExpectedVoters},
		{"per hour", f[5], &p.ExpectedPerHour},
		{"stations", f[6], &p.Stations},
	}
	for _, field := range ints {
		if *field.dst, err = strconv.Atoi(field.src); err != nil {
			return p, fmt.Errorf("%s: %w", field.name, err)
		}
	}
	p.Name = f[1]
	if p.TurnoutPercent, err = strconv.ParseFloat(f[2], 64); err != nil {
		return p, fmt.Errorf("turnout: %w", err)
	}
	if p.MinorityPercent, err = strconv.ParseFloat(f[7], 64); err != nil {
		return p, fmt.Errorf("minority: %w", err)
	}
	p.HistogramStations = make([]int, 3)
	for i := range p.HistogramStations {
		if p.HistogramStations[i], err = strconv.Atoi(f[8+i]); err != nil {
			return p, fmt.Errorf("histogram station %d: %w", i+1, err)
		}
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
