// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/qnetsim/qnetsim/sim/trace"
)

// conservationTolerance is the relative bound on |sum(timeInState) - Clock|.
const conservationTolerance = 1e-9

// NetworkSimulator owns the stations, the routing table, the event scheduler
// and the random stream of one run, and drives the event loop.
//
// Thread-safety: NOT thread-safe. Independent replications each need their
// own NetworkSimulator.
type NetworkSimulator struct {
	Clock float64

	config    NetworkConfig
	stations  []*QueueStation
	routing   *RoutingTable
	scheduler *EventScheduler
	rng       *RandomStream
	trace     *trace.SimulationTrace

	started       bool
	events        int
	unroutedExits int
	strandedExits int
}

// NewNetworkSimulator validates cfg and builds the network. It returns a
// *ConfigError if the topology is invalid. The simulator starts with a
// RandomStream built from cfg.Seed and cfg.DrawBudget.
func NewNetworkSimulator(cfg NetworkConfig) (*NetworkSimulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stations := make([]*QueueStation, len(cfg.Stations))
	for i, sc := range cfg.Stations {
		stations[i] = NewQueueStation(StationID(i), sc)
	}

	for _, r := range UnresolvedRoutes(len(stations), cfg.Routes) {
		logrus.Warnf("route %s -> station %d: target does not exist, units sent there will exit the network",
			stations[r.Source].Name(), r.Target)
	}
	for _, id := range UnreachableStations(len(stations), cfg.Entry, cfg.Routes) {
		logrus.Warnf("station %s is unreachable from entry station %s", stations[id].Name(), stations[cfg.Entry].Name())
	}

	sim := &NetworkSimulator{
		config:    cfg,
		stations:  stations,
		routing:   NewRoutingTable(len(stations), cfg.Routes),
		scheduler: NewEventScheduler(),
		rng:       NewRandomStream(cfg.Seed, cfg.DrawBudget),
	}
	if cfg.Trace {
		sim.trace = trace.NewSimulationTrace()
	}
	return sim, nil
}

// Reset restores every station and counter to its initial state and installs
// rng for the next run. Topology is untouched.
func (sim *NetworkSimulator) Reset(rng *RandomStream) {
	if rng == nil {
		panic("Reset: rng must not be nil")
	}
	for _, st := range sim.stations {
		st.Reset()
	}
	sim.Clock = 0
	sim.scheduler.Clear()
	sim.rng = rng
	sim.started = false
	sim.events = 0
	sim.unroutedExits = 0
	sim.strandedExits = 0
	if sim.trace != nil {
		sim.trace = trace.NewSimulationTrace()
	}
}

// Schedule pushes an event into the scheduler.
func (sim *NetworkSimulator) Schedule(ev Event) {
	sim.scheduler.Push(ev)
}

// Step dispatches the earliest pending event. It returns false once the
// scheduler is empty or the random stream has no draws left; the first call
// seeds the scheduler with the initial external arrival.
func (sim *NetworkSimulator) Step() bool {
	if !sim.started {
		sim.started = true
		sim.Schedule(Event{
			Time:        sim.config.FirstArrival,
			Kind:        KindArrival,
			Origin:      NoStation,
			Destination: sim.config.Entry,
		})
	}
	if sim.rng.Remaining() <= 0 {
		return false
	}
	ev, ok := sim.scheduler.Pop()
	if !ok {
		return false
	}

	sim.Clock = ev.Time
	for _, st := range sim.stations {
		st.Accrue(sim.Clock)
	}
	logrus.Debugf("[t=%.4f] Executing %v", sim.Clock, ev)
	ev.Execute(sim)
	sim.events++
	sim.checkInvariants()
	return true
}

// Run steps until termination and returns the result.
func (sim *NetworkSimulator) Run() *Result {
	logrus.Infof("Starting run: seed=%d, draws=%d, stations=%d",
		sim.rng.Seed(), sim.rng.Budget(), len(sim.stations))
	for sim.Step() {
	}
	logrus.Infof("[t=%.4f] Run ended after %d events, %d draws left, %d pending events",
		sim.Clock, sim.events, sim.rng.Remaining(), sim.scheduler.Len())
	return sim.Result()
}

func (sim *NetworkSimulator) handleArrival(e Event) {
	sim.admit(sim.stations[e.Destination])
	if sim.rng.Exhausted() {
		logrus.Debugf("[t=%.4f] random stream exhausted, no further arrivals", sim.Clock)
		return
	}
	interval := sim.uniform(sim.config.MinArrival, sim.config.MaxArrival)
	sim.Schedule(Event{
		Time:        sim.Clock + interval,
		Kind:        KindArrival,
		Origin:      NoStation,
		Destination: sim.config.Entry,
	})
}

// handlePassage releases the origin and moves the unit to its routed
// destination at the same instant.
func (sim *NetworkSimulator) handlePassage(e Event) {
	origin := sim.stations[e.Origin]
	sim.complete(origin)

	dest := e.Destination
	if dest == NoStation {
		if sim.rng.Exhausted() {
			sim.strandedExits++
			sim.recordRouting(origin.ID(), Exit, "stranded")
			return
		}
		dest = sim.routing.Choose(origin.ID(), sim.draw())
	}
	if dest == Exit {
		sim.recordRouting(origin.ID(), Exit, "exit")
		return
	}
	if !sim.routing.Resolves(dest) {
		sim.unroutedExits++
		logrus.Warnf("[t=%.4f] station %s routed a unit to unknown station %d; unit exits",
			sim.Clock, origin.Name(), dest)
		sim.recordRouting(origin.ID(), Exit, "unresolved")
		return
	}
	sim.recordRouting(origin.ID(), dest, "routed")
	sim.admit(sim.stations[dest])
}

func (sim *NetworkSimulator) handleDeparture(e Event) {
	origin := sim.stations[e.Origin]
	sim.complete(origin)
	sim.recordRouting(origin.ID(), Exit, "exit")
}

// admit offers one unit to st and starts its service if a server is free.
func (sim *NetworkSimulator) admit(st *QueueStation) {
	admitted := st.TryAdmit()
	if sim.trace != nil {
		sim.trace.RecordAdmission(trace.AdmissionRecord{Time: sim.Clock, Station: int(st.ID()), Admitted: admitted})
	}
	if !admitted {
		logrus.Debugf("[t=%.4f] station %s full, unit lost (losses=%d)", sim.Clock, st.Name(), st.LossCount())
		return
	}
	if st.HasFreeServer() {
		sim.startService(st)
	}
}

// complete releases one unit from st and keeps its servers busy.
func (sim *NetworkSimulator) complete(st *QueueStation) {
	st.Release()
	if st.HasWaitingWork() {
		sim.startService(st)
	}
}

// startService draws a service time at st and schedules its completion.
// Nothing is scheduled once the random stream is exhausted.
func (sim *NetworkSimulator) startService(st *QueueStation) {
	if sim.rng.Exhausted() {
		return
	}
	kind := KindDeparture
	if sim.routing.HasRoutes(st.ID()) {
		kind = KindPassage
	}
	duration := sim.uniform(st.minService, st.maxService)
	sim.Schedule(Event{
		Time:        sim.Clock + duration,
		Kind:        kind,
		Origin:      st.ID(),
		Destination: NoStation,
	})
}

// draw returns the next value; callers check Exhausted first.
func (sim *NetworkSimulator) draw() float64 {
	u, err := sim.rng.Draw()
	if err != nil {
		panic(fmt.Sprintf("draw: %v", err))
	}
	return u
}

func (sim *NetworkSimulator) uniform(min, max float64) float64 {
	v, err := sim.rng.Uniform(min, max)
	if err != nil {
		panic(fmt.Sprintf("uniform: %v", err))
	}
	return v
}

func (sim *NetworkSimulator) recordRouting(origin, target StationID, reason string) {
	if sim.trace == nil {
		return
	}
	sim.trace.RecordRouting(trace.RoutingRecord{Time: sim.Clock, Origin: int(origin), Target: int(target), Reason: reason})
}

// checkInvariants panics if any station left [0, capacity] or lost track of time.
func (sim *NetworkSimulator) checkInvariants() {
	for _, st := range sim.stations {
		st.checkInvariant()
		sum := 0.0
		for _, v := range st.timeInState {
			sum += v
		}
		if math.Abs(sum-sim.Clock) > conservationTolerance*math.Max(1, math.Abs(sim.Clock)) {
			panic(fmt.Sprintf("station %q state time %v does not match clock %v", st.Name(), sum, sim.Clock))
		}
	}
}

// Result snapshots the current accounting. It is safe to call mid-run.
func (sim *NetworkSimulator) Result() *Result {
	res := &Result{
		Seed:          sim.rng.Seed(),
		TotalTime:     sim.Clock,
		Events:        sim.events,
		DrawsUsed:     sim.rng.Budget() - sim.rng.Remaining(),
		UnroutedExits: sim.unroutedExits,
		StrandedExits: sim.strandedExits,
		Stations:      make([]StationResult, len(sim.stations)),
		Trace:         sim.trace,
	}
	for i, st := range sim.stations {
		res.Stations[i] = StationResult{
			ID:          st.ID(),
			Name:        st.Name(),
			Servers:     st.ServerCount(),
			Capacity:    st.Capacity(),
			LossCount:   st.LossCount(),
			Admitted:    st.admitted,
			Completed:   st.completed,
			Elapsed:     sim.Clock,
			TimeInState: st.TimeInState(),
		}
	}
	return res
}

// Remaining returns the draws left in the current random stream.
func (sim *NetworkSimulator) Remaining() int {
	return sim.rng.Remaining()
}

// Pending returns the number of scheduled but undispatched events.
func (sim *NetworkSimulator) Pending() int {
	return sim.scheduler.Len()
}
