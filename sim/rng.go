package sim

import "errors"

// ErrExhausted is returned by RandomStream.Draw once the draw budget is spent.
// The simulator treats it as a stop signal, never as a failure.
var ErrExhausted = errors.New("random stream exhausted")

// Linear congruential recurrence constants (Numerical Recipes).
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 1 << 32
)

// RandomStream is a deterministic, draw-limited source of uniform values in [0,1).
//
// Recurrence: state' = (A*state + C) mod 2^32, output = state' / 2^32.
// Two streams built with the same (seed, budget) produce identical sequences.
// The seed is reduced mod 2^32 on its first use, so negative seeds are legal.
//
// Thread-safety: NOT thread-safe. One stream belongs to one run.
type RandomStream struct {
	seed      int64
	budget    int
	state     uint64
	remaining int
}

// NewRandomStream creates a stream that permits exactly budget draws.
func NewRandomStream(seed int64, budget int) *RandomStream {
	if budget < 0 {
		budget = 0
	}
	return &RandomStream{
		seed:      seed,
		budget:    budget,
		state:     uint64(seed),
		remaining: budget,
	}
}

// Draw advances the recurrence once and returns the next value in [0,1).
func (r *RandomStream) Draw() (float64, error) {
	if r.remaining <= 0 {
		return 0, ErrExhausted
	}
	// uint64 wraparound is congruent mod 2^32, so masking after the multiply is exact.
	r.state = (lcgMultiplier*r.state + lcgIncrement) & (lcgModulus - 1)
	r.remaining--
	return float64(r.state) / lcgModulus, nil
}

// Uniform returns min + (max-min)*Draw().
func (r *RandomStream) Uniform(min, max float64) (float64, error) {
	u, err := r.Draw()
	if err != nil {
		return 0, err
	}
	return min + (max-min)*u, nil
}

// Remaining returns the number of draws left in the budget.
func (r *RandomStream) Remaining() int {
	return r.remaining
}

// Exhausted reports whether another Draw would fail.
func (r *RandomStream) Exhausted() bool {
	return r.remaining <= 0
}

// Seed returns the seed the stream was created with.
func (r *RandomStream) Seed() int64 {
	return r.seed
}

// Budget returns the total number of draws the stream was created with.
func (r *RandomStream) Budget() int {
	return r.budget
}
