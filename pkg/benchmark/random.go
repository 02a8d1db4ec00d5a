// Package benchmark generates synthetic task graphs and orchestrates timed
// runs of the scheduling core over them, reimplementing
// generate_random_dag and the benchmark driver from the original
// implementation for a Go CLI.
package benchmark

import (
	"math/rand"

	"github.com/khryptorgraphics/mcpscheduler/pkg/graph"
)

// RandomDAGOptions parameterizes synthetic DAG generation.
type RandomDAGOptions struct {
	Nodes           int
	MaxExtraEdges   int // not read by RandomDAG: every interior (i, j) pair is a candidate edge
	MinDuration     int
	MaxDuration     int
	MaxMemory       int
	Seed            int64
}

// RandomDAG builds a layered random DAG of opts.Nodes task records: node 0
// is a candidate source for every other node, node N-1 a candidate sink for
// every interior node, and every interior (i, j) pair with i < j is an
// additional candidate edge — each edge included independently at 50%
// odds, mirroring the original's generate_random_dag. Durations and memory
// values are drawn uniformly from the configured ranges.
func RandomDAG(opts RandomDAGOptions) []graph.TaskRecord {
	if opts.Nodes <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	deps := make([][]int, opts.Nodes)
	for j := 1; j < opts.Nodes; j++ {
		if rng.Intn(2) == 0 {
			deps[j] = append(deps[j], 0)
		}
	}
	if opts.Nodes >= 2 {
		sink := opts.Nodes - 1
		for i := 1; i < sink; i++ {
			if rng.Intn(2) == 0 {
				deps[sink] = append(deps[sink], i)
			}
		}
	}
	for i := 1; i < opts.Nodes-1; i++ {
		for j := i + 1; j < opts.Nodes-1; j++ {
			if rng.Intn(2) == 0 {
				deps[j] = append(deps[j], i)
			}
		}
	}

	minDur, maxDur := opts.MinDuration, opts.MaxDuration
	if minDur <= 0 {
		minDur = 1
	}
	if maxDur < minDur {
		maxDur = minDur
	}
	maxMem := opts.MaxMemory

	records := make([]graph.TaskRecord, opts.Nodes)
	for i := 0; i < opts.Nodes; i++ {
		duration := minDur
		if maxDur > minDur {
			duration = minDur + rng.Intn(maxDur-minDur+1)
		}
		memory := 0
		if maxMem > 0 {
			memory = rng.Intn(maxMem + 1)
		}
		records[i] = graph.TaskRecord{
			ID:           i,
			Duration:     duration,
			Memory:       memory,
			Dependencies: deps[i],
		}
	}
	return records
}
