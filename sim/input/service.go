package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadServiceTimes reads whitespace-separated service durations in seconds.
func LoadServiceTimes(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open service times: %w", err)
	}
	defer f.Close()

	times, err := ParseServiceTimes(f)
	if err != nil {
		return nil, fmt.Errorf("parse service times %s: %w", path, err)
	}
	return times, nil
}

// ParseServiceTimes reads whitespace-separated non-negative integers.
// An empty input yields an empty table.
func ParseServiceTimes(r io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	times := make([]int, 0)
	for scanner.Scan() {
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", len(times)+1, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("value %d: service time must be >= 0, got %d", len(times)+1, v)
		}
		times = append(times, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return times, nil
}
