package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomStream_FirstDraw_MatchesRecurrence(t *testing.T) {
	// (1664525*12345 + 1013904223) mod 2^32 = 87628868
	rs := NewRandomStream(12345, 10)
	u, err := rs.Draw()
	require.NoError(t, err)
	want := 87628868.0 / 4294967296.0
	if math.Float64bits(u) != math.Float64bits(want) {
		t.Errorf("first draw = %v, want %v", u, want)
	}
	assert.InDelta(t, 0.020403, u, 1e-6)
}

func TestRandomStream_Uniform_ScalesDraw(t *testing.T) {
	rs := NewRandomStream(12345, 10)
	v, err := rs.Uniform(2.0, 5.0)
	require.NoError(t, err)
	want := 2.0 + (5.0-2.0)*(87628868.0/4294967296.0)
	if math.Float64bits(v) != math.Float64bits(want) {
		t.Errorf("Uniform(2, 5) = %v, want %v", v, want)
	}
	assert.InDelta(t, 2.061208, v, 1e-6)
}

func TestRandomStream_SameSeedAndBudget_IdenticalSequences(t *testing.T) {
	a := NewRandomStream(987654321, 1000)
	b := NewRandomStream(987654321, 1000)
	for i := 0; i < 1000; i++ {
		ua, errA := a.Draw()
		ub, errB := b.Draw()
		require.NoError(t, errA)
		require.NoError(t, errB)
		if math.Float64bits(ua) != math.Float64bits(ub) {
			t.Fatalf("draw %d: %v != %v", i, ua, ub)
		}
	}
}

func TestRandomStream_DifferentSeeds_DifferentSequences(t *testing.T) {
	a := NewRandomStream(1, 5)
	b := NewRandomStream(2, 5)
	ua, _ := a.Draw()
	ub, _ := b.Draw()
	assert.NotEqual(t, ua, ub)
}

func TestRandomStream_BudgetN_PermitsExactlyNDraws(t *testing.T) {
	const n = 7
	rs := NewRandomStream(42, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, n-i, rs.Remaining())
		_, err := rs.Draw()
		require.NoError(t, err, "draw %d", i)
	}
	assert.Equal(t, 0, rs.Remaining())
	assert.True(t, rs.Exhausted())

	_, err := rs.Draw()
	assert.True(t, errors.Is(err, ErrExhausted), "draw %d: got %v, want ErrExhausted", n+1, err)
	_, err = rs.Uniform(0, 1)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 0, rs.Remaining())
}

func TestRandomStream_DrawsStayInUnitInterval(t *testing.T) {
	rs := NewRandomStream(-31337, 10000)
	for i := 0; i < 10000; i++ {
		u, err := rs.Draw()
		require.NoError(t, err)
		if u < 0 || u >= 1 {
			t.Fatalf("draw %d = %v, want [0,1)", i, u)
		}
	}
}

func TestRandomStream_NegativeBudget_TreatedAsZero(t *testing.T) {
	rs := NewRandomStream(1, -5)
	assert.Equal(t, 0, rs.Remaining())
	assert.Equal(t, 0, rs.Budget())
	_, err := rs.Draw()
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestRandomStream_LargeSeed_ReducesModulo2To32(t *testing.T) {
	// Seeds congruent mod 2^32 produce the same sequence.
	a := NewRandomStream(5, 3)
	b := NewRandomStream(5+(1<<32), 3)
	for i := 0; i < 3; i++ {
		ua, _ := a.Draw()
		ub, _ := b.Draw()
		assert.Equal(t, ua, ub, "draw %d", i)
	}
}
