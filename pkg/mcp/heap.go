package mcp

import "container/heap"

// priorityHeap is a min-heap over PriorityEntry keyed on (Priority, TaskID).
// The secondary key on task id guarantees a deterministic total order
// across entries with equal priority. There is no decrease-key: entries are
// never modified after insertion.
type priorityHeap []PriorityEntry

func (h priorityHeap) Len() int { return len(h) }

func (h priorityHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].TaskID < h[j].TaskID
}

func (h priorityHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *priorityHeap) Push(x interface{}) {
	*h = append(*h, x.(PriorityEntry))
}

func (h *priorityHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// newPriorityHeap builds and initializes a heap from a set of entries,
// copying the slice first so the caller's original ordering (returned later
// as SavedOrder) is never mutated by subsequent heap operations.
func newPriorityHeap(entries []PriorityEntry) *priorityHeap {
	h := make(priorityHeap, len(entries))
	copy(h, entries)
	heap.Init(&h)
	return &h
}

// heapPop removes and returns the minimum entry.
func heapPop(h *priorityHeap) PriorityEntry {
	return heap.Pop(h).(PriorityEntry)
}
