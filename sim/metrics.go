// Holds the end-of-run result consumed by reporting, plus derived
// occupancy statistics.

package sim

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/qnetsim/qnetsim/sim/trace"
)

// Result is the fully populated outcome of one run.
type Result struct {
	Seed          int64
	TotalTime     float64 // simulated time of the last dispatched event
	Events        int     // number of dispatched events
	DrawsUsed     int
	UnroutedExits int // units sent to exit by a route naming no real station
	StrandedExits int // units sent to exit because no routing draw was left
	Stations      []StationResult
	Trace         *trace.SimulationTrace // nil unless tracing was enabled
}

// StationResult is the final accounting of one station.
type StationResult struct {
	ID          StationID
	Name        string
	Servers     int
	Capacity    int
	LossCount   int
	Admitted    int
	Completed   int
	Elapsed     float64   // equal to Result.TotalTime
	TimeInState []float64 // len == Capacity+1
}

// StateTimeSum returns sum(TimeInState). It equals Elapsed for every station.
func (s StationResult) StateTimeSum() float64 {
	return floats.Sum(s.TimeInState)
}

// Probabilities returns P(state=i) = TimeInState[i] / Elapsed.
// All entries are zero when no time has elapsed.
func (s StationResult) Probabilities() []float64 {
	p := make([]float64, len(s.TimeInState))
	if s.Elapsed <= 0 {
		return p
	}
	copy(p, s.TimeInState)
	floats.Scale(1/s.Elapsed, p)
	return p
}

// MeanPopulation returns the time-weighted mean occupancy, sum(i * P(state=i)).
func (s StationResult) MeanPopulation() float64 {
	if s.StateTimeSum() <= 0 {
		return 0
	}
	levels := make([]float64, len(s.TimeInState))
	for i := range levels {
		levels[i] = float64(i)
	}
	return stat.Mean(levels, s.TimeInState)
}

// EmptyProbability returns P(state=0).
func (s StationResult) EmptyProbability() float64 {
	p := s.Probabilities()
	if len(p) == 0 {
		return 0
	}
	return p[0]
}

// TotalLosses sums LossCount over all stations.
func (r *Result) TotalLosses() int {
	total := 0
	for _, s := range r.Stations {
		total += s.LossCount
	}
	return total
}
