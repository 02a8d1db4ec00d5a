package benchmark

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/khryptorgraphics/mcpscheduler/pkg/graph"
	"github.com/khryptorgraphics/mcpscheduler/pkg/mcp"
)

// Row is one measured data point: a DAG size and the wall-clock time,
// makespan, and critical-path length the core produced for it.
type Row struct {
	Nodes             int
	WallClockSeconds  float64
	Makespan          int
	CriticalPathLength int
}

// Suite runs the core over increasing DAG sizes and reports timing,
// makespan, and critical-path length for each, mirroring
// benchmark_efficiency.py's local measurement loop (its cloud/Lambda
// comparison has no analogue here — the core has no cloud leg).
func Suite(sizes []int, timeline *mcp.Timeline, opts mcp.Options, seed int64) ([]Row, error) {
	rows := make([]Row, 0, len(sizes))
	for _, n := range sizes {
		records := RandomDAG(RandomDAGOptions{
			Nodes:       n,
			MinDuration: 1,
			MaxDuration: 10,
			MaxMemory:   0,
			Seed:        seed + int64(n),
		})
		g, err := graph.Build(records)
		if err != nil {
			return nil, fmt.Errorf("benchmark: build graph (n=%d): %w", n, err)
		}

		cpl, err := graph.CriticalPathLength(g)
		if err != nil {
			return nil, fmt.Errorf("benchmark: critical path (n=%d): %w", n, err)
		}

		start := time.Now()
		result, err := mcp.Schedule(g, timeline, opts)
		elapsed := time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("benchmark: schedule (n=%d): %w", n, err)
		}

		rows = append(rows, Row{
			Nodes:              n,
			WallClockSeconds:   elapsed.Seconds(),
			Makespan:           result.Makespan,
			CriticalPathLength: cpl,
		})
	}
	return rows, nil
}

// WriteCSV writes rows as a CSV table to w.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"nodes", "wall_clock_seconds", "makespan", "critical_path_length"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Nodes),
			strconv.FormatFloat(r.WallClockSeconds, 'f', 6, 64),
			strconv.Itoa(r.Makespan),
			strconv.Itoa(r.CriticalPathLength),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return cw.Error()
}
