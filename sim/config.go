package sim

import (
	"fmt"
	"math"
)

// probabilityTolerance bounds |sum(p) - 1| for one station's successor list.
const probabilityTolerance = 1e-6

// StationConfig describes one station's fixed topology.
type StationConfig struct {
	Name       string  // display name (e.g., "Q1")
	Servers    int     // number of parallel servers (must be >= 1)
	Capacity   int     // max units present, waiting plus in service (must be >= Servers)
	MinService float64 // lower bound of the uniform service time
	MaxService float64 // upper bound of the uniform service time
}

// RouteConfig is one weighted edge. Target may be Exit.
type RouteConfig struct {
	Source      StationID
	Target      StationID
	Probability float64
}

// NetworkConfig is the fully decoded input of one simulation run.
type NetworkConfig struct {
	Seed         int64   // initial RandomStream state
	DrawBudget   int     // total draws the run may consume
	FirstArrival float64 // time of the first external arrival (no draw)
	MinArrival   float64 // lower bound of the uniform inter-arrival time
	MaxArrival   float64 // upper bound of the uniform inter-arrival time
	Entry        StationID
	Stations     []StationConfig
	Routes       []RouteConfig
	Trace        bool // record every dispatched event
}

// ConfigError reports an invalid configuration field. It is returned before
// any simulated time advances.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the configuration and returns the first *ConfigError found.
// Routes whose target is out of range are legal here; they route to exit at run time.
func (c *NetworkConfig) Validate() error {
	if c.DrawBudget < 0 {
		return configErrorf("drawBudget", "must be non-negative, got %d", c.DrawBudget)
	}
	if len(c.Stations) == 0 {
		return configErrorf("stations", "at least one station required")
	}
	if err := validateRange("arrival", c.MinArrival, c.MaxArrival); err != nil {
		return err
	}
	if !isFinite(c.FirstArrival) || c.FirstArrival < 0 {
		return configErrorf("firstArrival", "must be a finite non-negative number, got %f", c.FirstArrival)
	}
	if c.Entry < 0 || int(c.Entry) >= len(c.Stations) {
		return configErrorf("entry", "station id %d out of range [0, %d)", c.Entry, len(c.Stations))
	}
	for i := range c.Stations {
		if err := validateStation(i, &c.Stations[i]); err != nil {
			return err
		}
	}
	return validateRoutes(len(c.Stations), c.Routes)
}

func validateStation(idx int, s *StationConfig) error {
	prefix := fmt.Sprintf("stations[%d]", idx)
	if s.Servers < 1 {
		return configErrorf(prefix+".servers", "must be at least 1, got %d", s.Servers)
	}
	if s.Capacity < s.Servers {
		return configErrorf(prefix+".capacity", "must be >= servers (%d), got %d", s.Servers, s.Capacity)
	}
	return validateRange(prefix+".service", s.MinService, s.MaxService)
}

func validateRange(prefix string, min, max float64) error {
	if !isFinite(min) || min < 0 {
		return configErrorf(prefix+".min", "must be a finite non-negative number, got %f", min)
	}
	if !isFinite(max) || max < min {
		return configErrorf(prefix+".max", "must be a finite number >= min (%f), got %f", min, max)
	}
	return nil
}

func validateRoutes(stationCount int, routes []RouteConfig) error {
	sums := make(map[StationID]float64)
	order := make([]StationID, 0)
	for i, r := range routes {
		prefix := fmt.Sprintf("routes[%d]", i)
		if r.Source < 0 || int(r.Source) >= stationCount {
			return configErrorf(prefix+".source", "station id %d out of range [0, %d)", r.Source, stationCount)
		}
		if !isFinite(r.Probability) || r.Probability < 0 || r.Probability > 1 {
			return configErrorf(prefix+".probability", "must be in [0, 1], got %f", r.Probability)
		}
		if _, seen := sums[r.Source]; !seen {
			order = append(order, r.Source)
		}
		sums[r.Source] += r.Probability
	}
	for _, src := range order {
		// A tiny slack keeps sums such as 0.3+0.7+1e-6 on the accepted side.
		if math.Abs(sums[src]-1) > probabilityTolerance+1e-12 {
			return configErrorf(fmt.Sprintf("routes(source=%d)", src),
				"probabilities must sum to 1 within %g, got %f", probabilityTolerance, sums[src])
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
