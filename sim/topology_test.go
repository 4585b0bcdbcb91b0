package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnreachableStations_Tandem_AllReachable(t *testing.T) {
	routes := []RouteConfig{{Source: 0, Target: 1, Probability: 1}, {Source: 1, Target: 2, Probability: 1}}
	assert.Empty(t, UnreachableStations(3, 0, routes))
}

func TestUnreachableStations_DetachedStation(t *testing.T) {
	routes := []RouteConfig{
		{Source: 0, Target: 1, Probability: 1},
		{Source: 2, Target: 1, Probability: 1},
	}
	assert.Equal(t, []StationID{2}, UnreachableStations(3, 0, routes))
}

func TestUnreachableStations_IgnoresZeroProbabilityAndSelfLoops(t *testing.T) {
	routes := []RouteConfig{
		{Source: 0, Target: 0, Probability: 0.5},
		{Source: 0, Target: 1, Probability: 0.5},
		{Source: 0, Target: 2, Probability: 0},
		{Source: 1, Target: 0, Probability: 1},
	}
	assert.Equal(t, []StationID{2}, UnreachableStations(3, 0, routes))
}

func TestUnreachableStations_NonZeroEntry(t *testing.T) {
	routes := []RouteConfig{{Source: 1, Target: 2, Probability: 1}}
	assert.Equal(t, []StationID{0}, UnreachableStations(3, 1, routes))
}

func TestUnresolvedRoutes_SkipsExitAndKnownStations(t *testing.T) {
	routes := []RouteConfig{
		{Source: 0, Target: 1, Probability: 0.5},
		{Source: 0, Target: Exit, Probability: 0.25},
		{Source: 0, Target: 4, Probability: 0.25},
	}
	got := UnresolvedRoutes(2, routes)
	assert.Equal(t, []RouteConfig{{Source: 0, Target: 4, Probability: 0.25}}, got)
}
