// Package trace provides per-event recording for queueing network runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// AdmissionRecord captures one admission attempt at a station.
type AdmissionRecord struct {
	Time     float64
	Station  int
	Admitted bool // false means the unit was lost to a full station
}

// RoutingRecord captures one routing decision taken at a service completion.
type RoutingRecord struct {
	Time   float64
	Origin int
	Target int    // -1 when the unit left the network
	Reason string // "routed", "exit", "unresolved" or "stranded"
}
