package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khryptorgraphics/mcpscheduler/pkg/graph"
)

func TestComputeALAPChain(t *testing.T) {
	g, err := graph.Build([]graph.TaskRecord{
		{ID: 1, Duration: 5},
		{ID: 2, Duration: 3, Dependencies: []int{1}},
		{ID: 3, Duration: 2, Dependencies: []int{2}},
	})
	require.NoError(t, err)

	alap, ub := computeALAP(g)
	assert.Equal(t, 10, ub)
	assert.Equal(t, -2, alap[3])
	assert.Equal(t, -5, alap[2])
	assert.Equal(t, -10, alap[1])
}

func TestComputeALAPForkJoinTakesTheSlowerBranch(t *testing.T) {
	g, err := graph.Build([]graph.TaskRecord{
		{ID: 1, Duration: 4},
		{ID: 2, Duration: 2, Dependencies: []int{1}},
		{ID: 3, Duration: 5, Dependencies: []int{1}},
		{ID: 4, Duration: 3, Dependencies: []int{2, 3}},
	})
	require.NoError(t, err)

	alap, _ := computeALAP(g)
	assert.Equal(t, -3, alap[4])
	assert.Equal(t, -5, alap[2]) // alap[4] - 2, through branch B
	assert.Equal(t, -8, alap[3]) // alap[4] - 5, through branch C
	// A must be late enough for its slowest-finishing branch, C.
	assert.Equal(t, -12, alap[1]) // min(alap[2]-4, alap[3]-4) = min(-9, -12)
}

func TestComputeALAPIsDeterministicAcrossRuns(t *testing.T) {
	records := []graph.TaskRecord{
		{ID: 5, Duration: 1},
		{ID: 3, Duration: 1, Dependencies: []int{5}},
		{ID: 4, Duration: 1, Dependencies: []int{5}},
		{ID: 1, Duration: 1, Dependencies: []int{3, 4}},
		{ID: 2, Duration: 1, Dependencies: []int{3, 4}},
	}
	g, err := graph.Build(records)
	require.NoError(t, err)

	first, firstUB := computeALAP(g)
	for i := 0; i < 20; i++ {
		next, nextUB := computeALAP(g)
		assert.Equal(t, first, next)
		assert.Equal(t, firstUB, nextUB)
	}
}

func TestPriorityOrderMatchesGraphInsertionOrder(t *testing.T) {
	g, err := graph.Build([]graph.TaskRecord{
		{ID: 7, Duration: 1},
		{ID: 2, Duration: 1},
		{ID: 9, Duration: 1},
	})
	require.NoError(t, err)

	alap, _ := computeALAP(g)
	entries := priorityOrder(g, alap)
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.TaskID
	}
	assert.Equal(t, g.Order(), ids)
}
