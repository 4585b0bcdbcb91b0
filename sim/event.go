package sim

import "fmt"

// StationID indexes a station in declaration order.
type StationID int

// NoStation marks an absent origin or destination on an Event.
const NoStation StationID = -1

// EventKind discriminates the three dispatchable events.
type EventKind int

const (
	// KindArrival is an external arrival at the entry station.
	KindArrival EventKind = iota
	// KindPassage is a service completion that transfers the unit onward.
	KindPassage
	// KindDeparture is a service completion at a station with no routing.
	KindDeparture
)

func (k EventKind) String() string {
	switch k {
	case KindArrival:
		return "Arrival"
	case KindPassage:
		return "Passage"
	case KindDeparture:
		return "Departure"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a pending state change at a point in simulated time.
// Origin is NoStation for external arrivals; Destination is NoStation when
// the receiving station has not been resolved yet (Passage) or does not
// exist (Departure).
type Event struct {
	Time        float64
	Kind        EventKind
	Origin      StationID
	Destination StationID

	seq uint64 // insertion order, assigned by EventScheduler.Push
}

// Seq returns the scheduler-assigned insertion sequence number.
func (e Event) Seq() uint64 {
	return e.seq
}

// Execute dispatches the event to the simulator's handler for its kind.
func (e Event) Execute(sim *NetworkSimulator) {
	switch e.Kind {
	case KindArrival:
		sim.handleArrival(e)
	case KindPassage:
		sim.handlePassage(e)
	case KindDeparture:
		sim.handleDeparture(e)
	default:
		panic(fmt.Sprintf("Execute: unknown event kind %v", e.Kind))
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%.4f(origin=%d, dest=%d)", e.Kind, e.Time, e.Origin, e.Destination)
}
