// Package graph builds and validates the task DAG that the scheduling core
// operates on: a labeled graph whose nodes carry a duration and a memory
// requirement, and whose edges encode precedence.
package graph

import (
	"container/heap"
	"fmt"
	"sort"
)

// Task is one node of the graph: a stable integer id, a positive duration,
// a non-negative memory requirement, and its predecessor ids in the order
// they were declared in the input document. Order matters — Tier-1 locality
// selection in the placement engine picks the *first* placed predecessor in
// this order.
type Task struct {
	ID           int
	Duration     int
	Memory       int
	Dependencies []int
}

// TaskGraph holds the task set plus forward (successor) and reverse
// (predecessor) adjacency, both in insertion order, which the ALAP analyzer
// and placement engine depend on for determinism.
type TaskGraph struct {
	Tasks       map[int]*Task
	order       []int // insertion order of task ids, for deterministic iteration
	successors  map[int][]int
	predecessor map[int][]int
}

// ValidationError reports a structural defect in a task graph: a cycle, a
// dangling predecessor reference, or an out-of-range duration/memory value.
type ValidationError struct {
	Reason string
	TaskID int
	Cycle  []int
}

func (e *ValidationError) Error() string {
	if len(e.Cycle) > 0 {
		return fmt.Sprintf("invalid graph: cycle detected: %v", e.Cycle)
	}
	if e.TaskID != 0 || e.Reason == "dangling predecessor" {
		return fmt.Sprintf("invalid graph: %s (task %d)", e.Reason, e.TaskID)
	}
	return fmt.Sprintf("invalid graph: %s", e.Reason)
}

// Build constructs a TaskGraph from task records, validating every
// invariant §4.1 requires: positive duration, non-negative memory, no
// dangling predecessor id, and acyclicity. Validation runs before any
// placement occurs, per the error handling design.
func Build(records []TaskRecord) (*TaskGraph, error) {
	g := &TaskGraph{
		Tasks:       make(map[int]*Task, len(records)),
		successors:  make(map[int][]int, len(records)),
		predecessor: make(map[int][]int, len(records)),
	}

	for _, r := range records {
		if r.Duration < 1 {
			return nil, &ValidationError{Reason: "non-positive duration", TaskID: r.ID}
		}
		if r.Memory < 0 {
			return nil, &ValidationError{Reason: "negative memory", TaskID: r.ID}
		}
		if _, exists := g.Tasks[r.ID]; exists {
			return nil, &ValidationError{Reason: "duplicate task id", TaskID: r.ID}
		}
		deps := append([]int(nil), r.Dependencies...)
		g.Tasks[r.ID] = &Task{ID: r.ID, Duration: r.Duration, Memory: r.Memory, Dependencies: deps}
		g.order = append(g.order, r.ID)
	}

	for _, r := range records {
		for _, dep := range r.Dependencies {
			if _, ok := g.Tasks[dep]; !ok {
				return nil, &ValidationError{Reason: "dangling predecessor", TaskID: r.ID}
			}
			g.successors[dep] = append(g.successors[dep], r.ID)
			g.predecessor[r.ID] = append(g.predecessor[r.ID], dep)
		}
	}

	if cycle := g.findCycle(); cycle != nil {
		return nil, &ValidationError{Reason: "cycle detected", Cycle: cycle}
	}

	return g, nil
}

// Order returns the task ids in the order they were declared in the input.
func (g *TaskGraph) Order() []int {
	return g.order
}

// Successors returns the ordered successor ids of a task.
func (g *TaskGraph) Successors(id int) []int {
	return g.successors[id]
}

// Predecessors returns the ordered predecessor ids of a task, in the order
// they were declared on that task's record.
func (g *TaskGraph) Predecessors(id int) []int {
	return g.predecessor[id]
}

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

// findCycle proves acyclicity with Kahn's algorithm over a min-heap ready
// queue (ascending task id), which gives a deterministic topological order
// when one exists. If one doesn't, it returns one witness cycle found by a
// deterministic DFS with white/gray/black coloring in ascending id order.
func (g *TaskGraph) findCycle() []int {
	indeg := make(map[int]int, len(g.order))
	for _, id := range g.order {
		indeg[id] = len(g.predecessor[id])
	}

	ready := &idMinHeap{}
	heap.Init(ready)
	for _, id := range g.order {
		if indeg[id] == 0 {
			heap.Push(ready, id)
		}
	}

	visited := 0
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		visited++
		for _, m := range g.successors[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}
	if visited == len(g.order) {
		return nil
	}

	return g.deterministicCycleWitness()
}

func (g *TaskGraph) deterministicCycleWitness() []int {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[int]int, len(g.order))
	parent := make(map[int]int, len(g.order))
	for _, id := range g.order {
		parent[id] = -1
	}

	var cycle []int

	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		succ := append([]int(nil), g.successors[u]...)
		sort.Ints(succ)
		for _, v := range succ {
			if color[v] == white {
				parent[v] = u
				if dfs(v) {
					return true
				}
				continue
			}
			if color[v] == gray {
				cycle = append(cycle, v)
				cur := u
				for cur != -1 && cur != v {
					cycle = append(cycle, cur)
					cur = parent[cur]
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	ids := append([]int(nil), g.order...)
	sort.Ints(ids)
	for _, id := range ids {
		if color[id] != white {
			continue
		}
		if dfs(id) {
			break
		}
	}

	if len(cycle) == 0 {
		return nil
	}
	rev := make([]int, len(cycle))
	for i := range cycle {
		rev[i] = cycle[len(cycle)-1-i]
	}
	return rev
}

// CriticalPathLength returns the length (sum of durations) of the longest
// path through the graph, computed by a topological relaxation. Supplements
// the core scheduling contract for benchmarking and reporting, mirroring
// the original implementation's find_critical_path.
func CriticalPathLength(g *TaskGraph) (int, error) {
	longest := make(map[int]int, len(g.order))
	indeg := make(map[int]int, len(g.order))
	for _, id := range g.order {
		indeg[id] = len(g.predecessor[id])
	}

	ready := &idMinHeap{}
	heap.Init(ready)
	for _, id := range g.order {
		if indeg[id] == 0 {
			longest[id] = g.Tasks[id].Duration
			heap.Push(ready, id)
		}
	}

	visited := 0
	best := 0
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		visited++
		if longest[n] > best {
			best = longest[n]
		}
		for _, m := range g.successors[n] {
			candidate := longest[n] + g.Tasks[m].Duration
			if candidate > longest[m] {
				longest[m] = candidate
			}
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}
	if visited != len(g.order) {
		return 0, fmt.Errorf("critical path: graph is not acyclic")
	}
	return best, nil
}
