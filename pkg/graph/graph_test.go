package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildValidGraph(t *testing.T) {
	g, err := Build([]TaskRecord{
		{ID: 1, Duration: 5, Memory: 0},
		{ID: 2, Duration: 3, Memory: 0, Dependencies: []int{1}},
		{ID: 3, Duration: 2, Memory: 0, Dependencies: []int{2}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, g.Order())
	assert.Equal(t, []int{2}, g.Successors(1))
	assert.Equal(t, []int{1}, g.Predecessors(2))
}

func TestBuildRejectsNonPositiveDuration(t *testing.T) {
	_, err := Build([]TaskRecord{{ID: 1, Duration: 0}})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "non-positive duration", verr.Reason)
}

func TestBuildRejectsNegativeMemory(t *testing.T) {
	_, err := Build([]TaskRecord{{ID: 1, Duration: 1, Memory: -1}})
	require.Error(t, err)
}

func TestBuildRejectsDanglingPredecessor(t *testing.T) {
	_, err := Build([]TaskRecord{{ID: 1, Duration: 1, Dependencies: []int{99}}})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "dangling predecessor", verr.Reason)
}

func TestBuildRejectsCycle(t *testing.T) {
	_, err := Build([]TaskRecord{
		{ID: 1, Duration: 1, Dependencies: []int{2}},
		{ID: 2, Duration: 1, Dependencies: []int{1}},
	})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Cycle)
}

func TestCriticalPathLength(t *testing.T) {
	g, err := Build([]TaskRecord{
		{ID: 1, Duration: 4},
		{ID: 2, Duration: 2, Dependencies: []int{1}},
		{ID: 3, Duration: 2, Dependencies: []int{1}},
		{ID: 4, Duration: 3, Dependencies: []int{2, 3}},
	})
	require.NoError(t, err)
	length, err := CriticalPathLength(g)
	require.NoError(t, err)
	assert.Equal(t, 9, length) // 1 -> 2 -> 4 or 1 -> 3 -> 4, both 4+2+3
}

func TestCriticalPathLengthEmptyGraph(t *testing.T) {
	g, err := Build(nil)
	require.NoError(t, err)
	length, err := CriticalPathLength(g)
	require.NoError(t, err)
	assert.Equal(t, 0, length)
}
