package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/khryptorgraphics/mcpscheduler/internal/config"
	"github.com/khryptorgraphics/mcpscheduler/pkg/benchmark"
	"github.com/khryptorgraphics/mcpscheduler/pkg/mcp"
)

func benchmarkCmd() *cobra.Command {
	var sizesFlag, outPath string
	var seed int64

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Generate synthetic DAGs at increasing sizes and report timing, makespan, and critical path length",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			sizes, err := parseSizes(sizesFlag)
			if err != nil {
				return err
			}

			thresholds := make([]int, len(cfg.Availability.Thresholds))
			low := make([][]int, len(cfg.Availability.Thresholds))
			high := make([][]int, len(cfg.Availability.Thresholds))
			for i, t := range cfg.Availability.Thresholds {
				thresholds[i] = t.Threshold
				low[i] = t.Low
				high[i] = t.High
			}
			timeline, err := mcp.TimelineFromThresholds(thresholds, low, high)
			if err != nil {
				return err
			}

			opts := mcp.Options{
				MemoryLimit:          cfg.Scheduler.MemoryLimit,
				CommunicationPenalty: cfg.Scheduler.CommunicationPenalty,
			}

			rows, err := benchmark.Suite(sizes, timeline, opts, seed)
			if err != nil {
				return err
			}

			var out *os.File
			if outPath == "" {
				out = os.Stdout
			} else {
				out, err = os.Create(outPath)
				if err != nil {
					return err
				}
				defer out.Close()
			}
			if err := benchmark.WriteCSV(out, rows); err != nil {
				return err
			}

			fmt.Fprintln(os.Stderr, color.CyanString("ran %d benchmark sizes", len(rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&sizesFlag, "sizes", "10,50,100,500", "comma-separated list of DAG node counts")
	cmd.Flags().StringVar(&outPath, "out", "", "path to write the CSV report (default: stdout)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for DAG generation")
	return cmd
}

func parseSizes(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", p, err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
