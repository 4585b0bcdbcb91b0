package sim

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// buildRouteGraph converts resolved, non-exit routes with positive
// probability into a directed graph over station ids. Self-loops are
// omitted; they never change reachability.
func buildRouteGraph(stationCount int, routes []RouteConfig) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := 0; i < stationCount; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, r := range routes {
		if r.Probability <= 0 || r.Source == r.Target {
			continue
		}
		if r.Target < 0 || int(r.Target) >= stationCount {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(r.Source), simple.Node(r.Target)))
	}
	return g
}

// UnreachableStations returns, sorted, the ids of stations that no unit
// entering at entry can ever visit.
func UnreachableStations(stationCount int, entry StationID, routes []RouteConfig) []StationID {
	g := buildRouteGraph(stationCount, routes)
	reached := map[int64]bool{int64(entry): true}
	bf := traverse.BreadthFirst{
		Visit: func(n graph.Node) { reached[n.ID()] = true },
	}
	bf.Walk(g, g.Node(int64(entry)), nil)

	out := make([]StationID, 0)
	for i := 0; i < stationCount; i++ {
		if !reached[int64(i)] {
			out = append(out, StationID(i))
		}
	}
	return out
}

// UnresolvedRoutes returns the routes whose target is neither Exit nor a
// known station. They are routed to exit at run time.
func UnresolvedRoutes(stationCount int, routes []RouteConfig) []RouteConfig {
	out := make([]RouteConfig, 0)
	for _, r := range routes {
		if r.Target == Exit {
			continue
		}
		if r.Target < 0 || int(r.Target) >= stationCount {
			out = append(out, r)
		}
	}
	return out
}
