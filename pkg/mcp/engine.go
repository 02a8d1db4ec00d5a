package mcp

import (
	"sort"

	"github.com/khryptorgraphics/mcpscheduler/internal/schedulererrors"
	"github.com/khryptorgraphics/mcpscheduler/pkg/graph"
)

// CommunicationPenalty is the fixed cost charged once when a task starts on
// a processor different from the one that produced one of its inputs. C = 1
// in the canonical configuration.
const CommunicationPenalty = 1

// BuildGraph validates task records into a TaskGraph, wrapping any
// *graph.ValidationError into a schedulererrors.SchedulerError of kind
// invalid_graph so that callers can type-switch on a single error surface
// across all three fatal failure kinds, rather than handling graph
// validation as a structurally distinct error type from the ones Schedule
// itself returns.
func BuildGraph(records []graph.TaskRecord) (*graph.TaskGraph, error) {
	g, err := graph.Build(records)
	if err != nil {
		return nil, schedulererrors.InvalidGraph(err.Error(), err)
	}
	return g, nil
}

// Options configures a single scheduling run.
type Options struct {
	MemoryLimit          int
	CommunicationPenalty int
	WarmStart            *Binding
}

// Binding is the warm-start priority ordering handed back and forth between
// runs: a heap snapshot plus the upper bound computed alongside it.
type Binding struct {
	Order []PriorityEntry
	UB    int
}

// Schedule is the core's public entry point: a pure function from a task
// graph, an availability timeline, a memory limit, and an optional
// warm-start binding to a placed schedule, its makespan, the priority
// ordering used (for a future warm-start), and the upper bound.
//
// It performs no I/O and mutates no state outside its own locals. On any
// failure it returns no schedule.
func Schedule(g *graph.TaskGraph, timeline *Timeline, opts Options) (*Result, error) {
	penalty := opts.CommunicationPenalty
	if penalty == 0 {
		penalty = CommunicationPenalty
	}

	entries, ub, err := resolveEntries(g, opts.WarmStart)
	if err != nil {
		return nil, err
	}

	savedOrder := make([]PriorityEntry, len(entries))
	copy(savedOrder, entries)

	pq := newPriorityHeap(entries)
	state := newAvailabilityState(timeline, ub)

	placements := make(map[int]PlacedTask, len(entries))
	schedule := make(Placements, 0, len(entries))

	for pq.Len() > 0 {
		entry := popPriority(pq)
		task := g.Tasks[entry.TaskID]

		depEnd := 0
		var preferred int
		havePreferred := false
		for _, pred := range g.Predecessors(task.ID) {
			p, ok := placements[pred]
			if !ok {
				continue
			}
			if p.EndTime() > depEnd {
				depEnd = p.EndTime()
			}
			if !havePreferred {
				preferred = p.Processor
				havePreferred = true
			}
		}

		chosen, ok := chooseTier1(state, task, opts.MemoryLimit, preferred, havePreferred, depEnd, penalty)
		if !ok {
			chosen, err = chooseActiveProcessor(state, task, opts.MemoryLimit, depEnd)
			if err != nil {
				return nil, err
			}
		}

		start := depEnd
		if havePreferred && chosen != preferred {
			start += penalty
		}
		if ready := state.ready(chosen); ready > start {
			start = ready
		}

		placed := PlacedTask{TaskID: task.ID, Duration: task.Duration, StartTime: start, Processor: chosen}
		schedule = append(schedule, placed)
		placements[task.ID] = placed
		state.commit(chosen, start+task.Duration)
		state.advance()
	}

	sort.SliceStable(schedule, func(i, j int) bool {
		if schedule[i].StartTime != schedule[j].StartTime {
			return schedule[i].StartTime < schedule[j].StartTime
		}
		return schedule[i].TaskID < schedule[j].TaskID
	})

	makespan := 0
	for _, p := range schedule {
		if p.EndTime() > makespan {
			makespan = p.EndTime()
		}
	}

	return &Result{Schedule: schedule, Makespan: makespan, SavedOrder: savedOrder, UB: ub}, nil
}

// popPriority removes and returns the minimum entry from the heap.
func popPriority(h *priorityHeap) PriorityEntry {
	return heapPop(h)
}

func resolveEntries(g *graph.TaskGraph, warmStart *Binding) ([]PriorityEntry, int, error) {
	if warmStart == nil {
		alap, ub := computeALAP(g)
		return priorityOrder(g, alap), ub, nil
	}

	if warmStart.UB <= 0 {
		return nil, 0, schedulererrors.MalformedWarmStart("ub must be positive")
	}
	if len(warmStart.Order) != len(g.Order()) {
		return nil, 0, schedulererrors.MalformedWarmStart("order does not cover the current graph's node set")
	}
	seen := make(map[int]bool, len(warmStart.Order))
	for _, e := range warmStart.Order {
		if _, ok := g.Tasks[e.TaskID]; !ok {
			return nil, 0, schedulererrors.MalformedWarmStart("order references a task not in the current graph")
		}
		seen[e.TaskID] = true
	}
	if len(seen) != len(g.Order()) {
		return nil, 0, schedulererrors.MalformedWarmStart("order does not cover the current graph's node set")
	}

	entries := make([]PriorityEntry, len(warmStart.Order))
	copy(entries, warmStart.Order)
	return entries, warmStart.UB, nil
}

// chooseTier1 implements the preferred-processor rule: select π if it is
// defined, memory-compatible with the task (high-only when the task's
// memory exceeds the limit), and free within the communication-penalty
// slack (R[π] ≤ L_dep + C).
func chooseTier1(state *availabilityState, task *graph.Task, limit int, preferred int, havePreferred bool, depEnd, penalty int) (int, bool) {
	if !havePreferred {
		return 0, false
	}
	if !memoryCompatible(state, task.Memory, limit, preferred) {
		return 0, false
	}
	if state.ready(preferred) <= depEnd+penalty {
		return preferred, true
	}
	return 0, false
}

// memoryCompatible reports whether processor p is a member of the
// currently active set the task's memory class requires: the high set
// alone when memory exceeds the limit, low-or-high otherwise.
func memoryCompatible(state *availabilityState, memory, limit, p int) bool {
	if memory > limit {
		return contains(state.activeHigh(), p)
	}
	return contains(state.activeLow(), p) || contains(state.activeHigh(), p)
}

func contains(set []int, p int) bool {
	for _, v := range set {
		if v == p {
			return true
		}
	}
	return false
}

// chooseActiveProcessor implements Tier 2 and Tier 3: among the currently
// active, memory-compatible processors, prefer one already free
// (R[p] ≤ L_dep), breaking ties by ascending id; otherwise fall back to the
// one with the smallest R[p], again breaking ties by ascending id. If no
// memory-compatible active processor exists at all, the task is infeasible.
func chooseActiveProcessor(state *availabilityState, task *graph.Task, limit int, depEnd int) (int, error) {
	var candidates []int
	if task.Memory > limit {
		candidates = state.activeHigh()
	} else {
		candidates = append(append([]int(nil), state.activeLow()...), state.activeHigh()...)
	}
	if len(candidates) == 0 {
		return 0, schedulererrors.InfeasibleMemoryClass(task.ID)
	}

	sorted := append([]int(nil), candidates...)
	sort.Ints(sorted)

	bestIdle := -1
	for _, p := range sorted {
		if state.ready(p) <= depEnd {
			bestIdle = p
			break
		}
	}
	if bestIdle != -1 {
		return bestIdle, nil
	}

	best := sorted[0]
	for _, p := range sorted[1:] {
		if state.ready(p) < state.ready(best) {
			best = p
		}
	}
	return best, nil
}
