package mcp_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/khryptorgraphics/mcpscheduler/pkg/benchmark"
	"github.com/khryptorgraphics/mcpscheduler/pkg/graph"
	"github.com/khryptorgraphics/mcpscheduler/pkg/mcp"
)

// fixedTimeline builds a two-processor, single-threshold timeline (one low,
// one high processor), used throughout the property suite since the
// invariants under test do not depend on threshold transitions.
func fixedTimeline() *mcp.Timeline {
	return &mcp.Timeline{
		Thresholds: []int{0},
		Low:        [][]int{{0}},
		High:       [][]int{{1}},
	}
}

// genScheduledRun generates a random DAG (via seed and node count) together
// with the scheduling options to run it under, and returns the graph and the
// resulting Result. testing.Short mode is respected by the caller.
type scheduledRun struct {
	graph  *graph.TaskGraph
	result *mcp.Result
	opts   mcp.Options
}

func genScheduledRun() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 25),
		gen.Int64Range(1, 1<<30),
		gen.IntRange(1, 20),
	).Map(func(values []interface{}) *scheduledRun {
		nodes := values[0].(int)
		seed := values[1].(int64)
		memLimit := values[2].(int)

		records := benchmark.RandomDAG(benchmark.RandomDAGOptions{
			Nodes:       nodes,
			MinDuration: 1,
			MaxDuration: 9,
			MaxMemory:   30,
			Seed:        seed,
		})
		g, err := graph.Build(records)
		if err != nil {
			return nil
		}
		opts := mcp.Options{MemoryLimit: memLimit, CommunicationPenalty: mcp.CommunicationPenalty}
		result, err := mcp.Schedule(g, fixedTimeline(), opts)
		if err != nil {
			// fixedTimeline always has an active high-memory processor, so no
			// draw is infeasible; a run that errors is skipped all the same.
			return nil
		}
		return &scheduledRun{graph: g, result: result, opts: opts}
	})
}

func TestScheduleProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based tests in short mode")
	}

	properties := gopter.NewProperties(nil)

	properties.Property("TaskCoverage", prop.ForAll(
		func(run *scheduledRun) bool {
			if run == nil {
				return true
			}
			if len(run.result.Schedule) != len(run.graph.Order()) {
				return false
			}
			seen := make(map[int]bool, len(run.result.Schedule))
			for _, p := range run.result.Schedule {
				seen[p.TaskID] = true
			}
			for _, id := range run.graph.Order() {
				if !seen[id] {
					return false
				}
			}
			return true
		},
		genScheduledRun(),
	))

	properties.Property("PredecessorOrdering", prop.ForAll(
		func(run *scheduledRun) bool {
			if run == nil {
				return true
			}
			byID := make(map[int]mcp.PlacedTask, len(run.result.Schedule))
			for _, p := range run.result.Schedule {
				byID[p.TaskID] = p
			}
			for _, id := range run.graph.Order() {
				task := byID[id]
				for _, pred := range run.graph.Predecessors(id) {
					if byID[pred].EndTime() > task.StartTime {
						return false
					}
				}
			}
			return true
		},
		genScheduledRun(),
	))

	properties.Property("ProcessorNonOverlap", prop.ForAll(
		func(run *scheduledRun) bool {
			if run == nil {
				return true
			}
			byProc := run.result.Schedule.ByProcessor()
			for _, tasks := range byProc {
				for i := 0; i < len(tasks); i++ {
					for j := i + 1; j < len(tasks); j++ {
						a, b := tasks[i], tasks[j]
						if a.StartTime < b.EndTime() && b.StartTime < a.EndTime() {
							return false
						}
					}
				}
			}
			return true
		},
		genScheduledRun(),
	))

	properties.Property("MemoryClassCompliance", prop.ForAll(
		func(run *scheduledRun) bool {
			if run == nil {
				return true
			}
			for _, p := range run.result.Schedule {
				task := run.graph.Tasks[p.TaskID]
				if task.Memory > run.opts.MemoryLimit && p.Processor != 1 {
					// Processor 1 is the fixed high-class processor in fixedTimeline.
					return false
				}
			}
			return true
		},
		genScheduledRun(),
	))

	properties.Property("MakespanMatchesLatestEndTime", prop.ForAll(
		func(run *scheduledRun) bool {
			if run == nil {
				return true
			}
			latest := 0
			for _, p := range run.result.Schedule {
				if p.EndTime() > latest {
					latest = p.EndTime()
				}
			}
			return run.result.Makespan == latest
		},
		genScheduledRun(),
	))

	properties.Property("MakespanNeverExceedsUB", prop.ForAll(
		func(run *scheduledRun) bool {
			if run == nil {
				return true
			}
			return run.result.Makespan <= run.result.UB
		},
		genScheduledRun(),
	))

	properties.TestingRun(t)
}

func TestWarmStartRoundTripProperty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based tests in short mode")
	}

	properties := gopter.NewProperties(nil)

	properties.Property("WarmStartReproducesMakespan", prop.ForAll(
		func(nodes int, seed int64) bool {
			records := benchmark.RandomDAG(benchmark.RandomDAGOptions{
				Nodes: nodes, MinDuration: 1, MaxDuration: 9, Seed: seed,
			})
			g, err := graph.Build(records)
			if err != nil {
				return true
			}
			opts := mcp.Options{MemoryLimit: 1000, CommunicationPenalty: mcp.CommunicationPenalty}
			timeline := fixedTimeline()

			cold, err := mcp.Schedule(g, timeline, opts)
			if err != nil {
				return false
			}
			warm := mcp.Binding{Order: cold.SavedOrder, UB: cold.UB}
			warmOpts := opts
			warmOpts.WarmStart = &warm
			reheated, err := mcp.Schedule(g, timeline, warmOpts)
			if err != nil {
				return false
			}
			return cold.Makespan == reheated.Makespan
		},
		gen.IntRange(0, 20),
		gen.Int64Range(1, 1<<30),
	))

	properties.TestingRun(t)
}
