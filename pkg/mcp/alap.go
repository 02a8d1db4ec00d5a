package mcp

import (
	"container/heap"

	"github.com/khryptorgraphics/mcpscheduler/pkg/graph"
)

type idMinHeap []int

func (h idMinHeap) Len() int            { return len(h) }
func (h idMinHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h idMinHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *idMinHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *idMinHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// computeALAP traverses the graph in reverse topological order, ties broken
// lexicographically by task id, and returns each task's As-Late-As-Possible
// latest-finish value together with the upper bound UB (sum of all
// durations). A node with no successors gets alap = -duration; otherwise
// alap = min over successors of (alap[successor] - duration).
//
// Determinism matters here: the priority queue's pop order depends on it.
// Reverse topological order is produced the same way forward topological
// order is — Kahn's algorithm, but counting *successors* instead of
// predecessors, with a min-heap ready queue on ascending task id.
func computeALAP(g *graph.TaskGraph) (map[int]int, int) {
	order := g.Order()
	outdeg := make(map[int]int, len(order))
	for _, id := range order {
		outdeg[id] = len(g.Successors(id))
	}

	ready := &idMinHeap{}
	heap.Init(ready)
	for _, id := range order {
		if outdeg[id] == 0 {
			heap.Push(ready, id)
		}
	}

	alap := make(map[int]int, len(order))
	ub := 0
	for _, id := range order {
		ub += g.Tasks[id].Duration
	}

	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		task := g.Tasks[n]
		successors := g.Successors(n)
		if len(successors) == 0 {
			alap[n] = -task.Duration
		} else {
			min := 0
			first := true
			for _, s := range successors {
				candidate := alap[s] - task.Duration
				if first || candidate < min {
					min = candidate
					first = false
				}
			}
			alap[n] = min
		}
		for _, p := range g.Predecessors(n) {
			outdeg[p]--
			if outdeg[p] == 0 {
				heap.Push(ready, p)
			}
		}
	}

	return alap, ub
}

// priorityOrder builds the initial priority queue entries from ALAP values,
// in the graph's insertion order (the entries themselves carry no ordering
// requirement since the heap reorders them; insertion order only affects
// the SavedOrder snapshot returned to the caller before consumption, which
// must match what a fresh run would compute for warm-start round-tripping
// to be meaningful).
func priorityOrder(g *graph.TaskGraph, alap map[int]int) []PriorityEntry {
	order := g.Order()
	entries := make([]PriorityEntry, len(order))
	for i, id := range order {
		entries[i] = PriorityEntry{Priority: alap[id], TaskID: id}
	}
	return entries
}
