package sim

import "fmt"

// Exit is the routing choice that sends a unit out of the network.
const Exit StationID = NoStation

// Successor is one weighted outgoing edge of a station.
type Successor struct {
	Target      StationID
	Probability float64
}

// RoutingTable maps each station to an ordered list of weighted successors.
// A station with no entries routes every completed service to Exit.
// Targets outside [0, stationCount) are kept verbatim; Resolves reports them.
type RoutingTable struct {
	stationCount int
	successors   map[StationID][]Successor
}

// NewRoutingTable builds a table over stationCount stations. Edge order is
// preserved per source station.
func NewRoutingTable(stationCount int, routes []RouteConfig) *RoutingTable {
	rt := &RoutingTable{
		stationCount: stationCount,
		successors:   make(map[StationID][]Successor),
	}
	for _, r := range routes {
		rt.successors[r.Source] = append(rt.successors[r.Source], Successor{
			Target:      r.Target,
			Probability: r.Probability,
		})
	}
	return rt
}

// Successors returns the ordered successor list for id, empty if absent.
// The returned slice is internal storage and MUST NOT be modified.
func (rt *RoutingTable) Successors(id StationID) []Successor {
	return rt.successors[id]
}

// HasRoutes reports whether id has at least one routing entry.
func (rt *RoutingTable) HasRoutes(id StationID) bool {
	return len(rt.successors[id]) > 0
}

// Choose picks a successor of id for a draw u in [0,1).
// The first successor whose cumulative probability is >= u wins. Entries with
// zero probability are never chosen, and a draw past the final cumulative sum
// (floating slack) selects the last successor with positive probability.
func (rt *RoutingTable) Choose(id StationID, u float64) StationID {
	succ := rt.successors[id]
	if len(succ) == 0 {
		return Exit
	}
	cumulative := 0.0
	last := succ[len(succ)-1].Target
	for _, s := range succ {
		if s.Probability <= 0 {
			continue
		}
		cumulative += s.Probability
		last = s.Target
		if cumulative >= u {
			return s.Target
		}
	}
	return last
}

// Resolves reports whether target names a real station or Exit.
func (rt *RoutingTable) Resolves(target StationID) bool {
	return target == Exit || (target >= 0 && int(target) < rt.stationCount)
}

func (rt *RoutingTable) String() string {
	return fmt.Sprintf("RoutingTable(%d stations, %d routed)", rt.stationCount, len(rt.successors))
}
