package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/votesim/votesim/sim"
)

// Environment variables that override values read from the configuration file.
const (
	EnvSeed       = "VOTESIM_SEED"
	EnvIterations = "VOTESIM_ITERATIONS"
)

// LoadRunConfig reads the run configuration at path, applies environment
// overrides, loads the service-time table named by service_times_file
// (relative to the configuration's directory) and validates the result.
func LoadRunConfig(path string) (*sim.RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run config: %w", err)
	}

	var cfg *sim.RunConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = ParseRunConfigYAML(data)
	default:
		cfg, err = ParseLegacyRunConfig(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("parse run config %s: %w", path, err)
	}

	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if cfg.ServiceTimesFile != "" && len(cfg.ServiceTimes) == 0 {
		stPath := cfg.ServiceTimesFile
		if !filepath.IsAbs(stPath) {
			stPath = filepath.Join(filepath.Dir(path), stPath)
		}
		times, err := LoadServiceTimes(stPath)
		if err != nil {
			return nil, err
		}
		cfg.ServiceTimes = times
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseRunConfigYAML decodes a YAML run configuration.
// Unknown keys are rejected so that typos surface as errors.
func ParseRunConfigYAML(data []byte) (*sim.RunConfig, error) {
	var cfg sim.RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty YAML document")
		}
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return &cfg, nil
}

// ParseLegacyRunConfig reads the two-line numeric format.
// Blank lines are ignored; extra values after the last hour are ignored.
func ParseLegacyRunConfig(r io.Reader) (*sim.RunConfig, error) {
	lines := make([][]string, 0, 2)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() && len(lines) < 2 {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("want 2 non-empty lines, got %d", len(lines))
	}

	ints := make([]int64, 7)
	if len(lines[0]) < len(ints) {
		return nil, fmt.Errorf("line 1: want %d integers, got %d", len(ints), len(lines[0]))
	}
	for i := range ints {
		v, err := strconv.ParseInt(lines[0][i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line 1 field %d: %w", i+1, err)
		}
		ints[i] = v
	}

	cfg := &sim.RunConfig{
		Seed:                  ints[0],
		ElectionDayHours:      int(ints[1]),
		MeanServiceSeconds:    int(ints[2]),
		MinExpectedToSimulate: int(ints[3]),
		MaxExpectedToSimulate: int(ints[4]),
		TooLongMinutes:        int(ints[5]),
		Iterations:            int(ints[6]),
	}
	if cfg.ElectionDayHours < 0 {
		return nil, fmt.Errorf("line 1: election day hours must be >= 0, got %d", cfg.ElectionDayHours)
	}

	want := 1 + cfg.ElectionDayHours
	if len(lines[1]) < want {
		return nil, fmt.Errorf("line 2: want %d percentages (zero hour + %d hours), got %d",
			want, cfg.ElectionDayHours, len(lines[1]))
	}
	percents := make([]float64, want)
	for i := range percents {
		v, err := strconv.ParseFloat(lines[1][i], 64)
		if err != nil {
			return nil, fmt.Errorf("line 2 field %d: %w", i+1, err)
		}
		percents[i] = v
	}
	cfg.ArrivalZeroPercent = percents[0]
	cfg.ArrivalFractions = percents[1:]
	return cfg, nil
}

// ApplyEnvOverrides replaces the seed and iteration count with VOTESIM_SEED and
// VOTESIM_ITERATIONS when they are set.
func ApplyEnvOverrides(cfg *sim.RunConfig) error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		logrus.Infof("seed %d overridden by %s=%d", cfg.Seed, EnvSeed, seed)
		cfg.Seed = seed
	}
	if v := os.Getenv(EnvIterations); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvIterations, err)
		}
		logrus.Infof("iterations %d overridden by %s=%d", cfg.Iterations, EnvIterations, n)
		cfg.Iterations = n
	}
	return nil
}
