package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOverrideCommand binds the override flags on a throwaway command so
// tests can mark them as changed without touching rootCmd.
func newOverrideCommand() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().Int64Var(&seed, "seed", 12345, "")
	c.Flags().IntVar(&drawBudget, "draws", 100000, "")
	c.Flags().Float64Var(&firstArrival, "first-arrival", 2.0, "")
	return c
}

func TestApplyOverrides_NoFlags_UsesModelSeeds(t *testing.T) {
	m, err := ParseModel([]byte(tandemYAML))
	require.NoError(t, err)
	seeds, err := applyOverrides(newOverrideCommand(), m)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, seeds)
	assert.Equal(t, 500, m.DrawBudget)
}

func TestApplyOverrides_FlagsWin(t *testing.T) {
	m, err := ParseModel([]byte(tandemYAML))
	require.NoError(t, err)
	c := newOverrideCommand()
	require.NoError(t, c.Flags().Set("seed", "99"))
	require.NoError(t, c.Flags().Set("draws", "42"))
	require.NoError(t, c.Flags().Set("first-arrival", "0.25"))

	seeds, err := applyOverrides(c, m)
	require.NoError(t, err)
	assert.Equal(t, []int64{99}, seeds)
	assert.Equal(t, 42, m.DrawBudget)
	assert.Equal(t, 0.25, m.FirstArrival)
}

func TestApplyOverrides_NoSeeds_Error(t *testing.T) {
	m, err := ParseModel([]byte("queues: {Q1: {servers: 1, capacity: 1}}\n"))
	require.NoError(t, err)
	_, err = applyOverrides(newOverrideCommand(), m)
	assert.ErrorContains(t, err, "seeds")
}

func TestRunSeeds_OneReportPerSeed(t *testing.T) {
	m, err := ParseModel([]byte(tandemYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runSeeds(&buf, m, []int64{1, 2, 3}))
	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "=== Queue Network Simulation"))
	assert.Contains(t, out, "(seed 1)")
	assert.Contains(t, out, "(seed 2)")
	assert.Contains(t, out, "(seed 3)")
	assert.Equal(t, 3, strings.Count(out, "===== Station A (G/G/2/2) ====="))
}

func TestRunSeeds_RepeatedSeed_IdenticalReports(t *testing.T) {
	m, err := ParseModel([]byte(tandemYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runSeeds(&buf, m, []int64{7, 7}))
	parts := strings.Split(buf.String(), "=== Queue Network Simulation")
	require.Len(t, parts, 3)
	assert.Equal(t, parts[1], parts[2])
}

func TestRunSeeds_InvalidModel_ReturnsError(t *testing.T) {
	m, err := ParseModel([]byte("queues: {Q1: {servers: 3, capacity: 1}}\n"))
	require.NoError(t, err)
	var buf bytes.Buffer
	err = runSeeds(&buf, m, []int64{1})
	assert.ErrorContains(t, err, "stations[0].capacity")
}
