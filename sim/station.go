// Implements QueueStation, one finite-capacity multi-server node.

package sim

import "fmt"

// QueueStation is a G/G/c/K node: serverCount servers, at most capacity
// units present (waiting plus in service). Topology fields are fixed at
// construction; only the accounting fields change during a run.
type QueueStation struct {
	id          StationID
	name        string
	serverCount int
	capacity    int
	minService  float64
	maxService  float64

	occupancy     int
	lossCount     int
	admitted      int
	completed     int
	timeInState   []float64 // indexed by occupancy, len == capacity+1
	lastEventTime float64
}

// NewQueueStation builds a station from a validated StationConfig.
func NewQueueStation(id StationID, cfg StationConfig) *QueueStation {
	return &QueueStation{
		id:          id,
		name:        cfg.Name,
		serverCount: cfg.Servers,
		capacity:    cfg.Capacity,
		minService:  cfg.MinService,
		maxService:  cfg.MaxService,
		timeInState: make([]float64, cfg.Capacity+1),
	}
}

func (q *QueueStation) ID() StationID    { return q.id }
func (q *QueueStation) Name() string     { return q.name }
func (q *QueueStation) ServerCount() int { return q.serverCount }
func (q *QueueStation) Capacity() int    { return q.capacity }
func (q *QueueStation) Occupancy() int   { return q.occupancy }
func (q *QueueStation) LossCount() int   { return q.lossCount }

// Accrue attributes the time since the last event to the current occupancy
// level, then moves the station's clock to now.
func (q *QueueStation) Accrue(now float64) {
	if q.occupancy <= q.capacity {
		q.timeInState[q.occupancy] += now - q.lastEventTime
	}
	q.lastEventTime = now
}

// TryAdmit admits one unit if there is room. A full station counts a loss
// and leaves occupancy unchanged.
func (q *QueueStation) TryAdmit() bool {
	if q.occupancy < q.capacity {
		q.occupancy++
		q.admitted++
		return true
	}
	q.lossCount++
	return false
}

// Release removes one unit that completed service. Panics at zero occupancy.
func (q *QueueStation) Release() {
	if q.occupancy <= 0 {
		panic(fmt.Sprintf("Release: station %q has no units to release", q.name))
	}
	q.occupancy--
	q.completed++
}

// HasFreeServer reports, right after an admission, whether the admitted unit
// starts service immediately.
func (q *QueueStation) HasFreeServer() bool {
	return q.occupancy <= q.serverCount
}

// HasWaitingWork reports, right after a release, whether a waiting unit
// should take the freed server.
func (q *QueueStation) HasWaitingWork() bool {
	return q.occupancy >= q.serverCount
}

// checkInvariant panics if occupancy has left [0, capacity].
func (q *QueueStation) checkInvariant() {
	if q.occupancy < 0 || q.occupancy > q.capacity {
		panic(fmt.Sprintf("station %q occupancy %d outside [0, %d]", q.name, q.occupancy, q.capacity))
	}
}

// Reset zeroes all accounting without touching topology.
func (q *QueueStation) Reset() {
	q.occupancy = 0
	q.lossCount = 0
	q.admitted = 0
	q.completed = 0
	q.lastEventTime = 0
	for i := range q.timeInState {
		q.timeInState[i] = 0
	}
}

// TimeInState returns a copy of the per-occupancy time accumulators.
func (q *QueueStation) TimeInState() []float64 {
	out := make([]float64, len(q.timeInState))
	copy(out, q.timeInState)
	return out
}
