// Package sim provides the discrete-event simulation engine for finite-capacity
// queueing networks.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - rng.go: RandomStream, the draw-limited LCG every draw comes from
//   - event.go, event_queue.go: Event kinds and the time-ordered EventScheduler
//   - station.go: QueueStation occupancy, loss and time-in-state accounting
//   - routing.go: RoutingTable cumulative-probability successor selection
//   - simulator.go: the event loop and the Arrival/Passage/Departure handlers
//
// # Event Ordering
//
// Events pop by time ascending. Events sharing a timestamp pop in insertion
// order; sequence numbers are local to each EventScheduler, so identical
// inputs always replay identically.
//
// # Termination
//
// A run ends when the scheduler is empty or the RandomStream has no draws
// left. Every follow-up event needs a draw, so exhaustion starves the
// scheduler and the loop stops before the next pop.
//
// # Sub-packages
//   - sim/trace/: admission and routing decision records (pure data)
//   - sim/report/: plain-text rendering of a Result
package sim
