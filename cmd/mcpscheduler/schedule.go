package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/khryptorgraphics/mcpscheduler/internal/config"
	"github.com/khryptorgraphics/mcpscheduler/pkg/graph"
	"github.com/khryptorgraphics/mcpscheduler/pkg/mcp"
	"github.com/khryptorgraphics/mcpscheduler/pkg/storage"
)

func scheduleCmd() *cobra.Command {
	var graphPath, bindingInPath, outPath, bindingOutPath string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the core over a task graph document and write the resulting schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if graphPath == "" {
				graphPath = cfg.Paths.DefaultGraphPath
			}
			if bindingOutPath == "" {
				bindingOutPath = cfg.Paths.DefaultBindingPath
			}

			store, err := storage.NewFileStore("/")
			if err != nil {
				return err
			}
			ctx := context.Background()

			graphKey, err := storeKey(graphPath)
			if err != nil {
				return err
			}
			data, err := store.Get(ctx, graphKey)
			if err != nil {
				return fmt.Errorf("read task graph: %w", err)
			}
			records, err := mcp.DecodeDocument(data)
			if err != nil {
				return err
			}
			g, err := mcp.BuildGraph(records)
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
			if bindingInPath != "" {
				bindingKey, err := storeKey(bindingInPath)
				if err != nil {
					return err
				}
				bindingData, err := store.Get(ctx, bindingKey)
				if err != nil {
					return fmt.Errorf("read warm-start binding: %w", err)
				}
				var raw graph.Binding
				if err := json.Unmarshal(bindingData, &raw); err != nil {
					return fmt.Errorf("decode warm-start binding: %w", err)
				}
				binding := mcp.BindingFromJSON(raw.Order, raw.UB)
				opts.WarmStart = &binding
			}

			result, err := mcp.Schedule(g, timeline, opts)
			if err != nil {
				return err
			}

			scheduleDoc := mcp.EncodeSchedule(result, timeline)
			scheduleBytes, err := json.MarshalIndent(scheduleDoc, "", "  ")
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Println(string(scheduleBytes))
			} else {
				outKey, err := storeKey(outPath)
				if err != nil {
					return err
				}
				if err := store.Put(ctx, outKey, scheduleBytes); err != nil {
					return fmt.Errorf("write schedule: %w", err)
				}
			}

			order, ub := mcp.EncodeBinding(result)
			bindingBytes, err := json.MarshalIndent(graph.Binding{Order: order, UB: ub}, "", "  ")
			if err != nil {
				return err
			}
			bindingOutKey, err := storeKey(bindingOutPath)
			if err != nil {
				return err
			}
			if err := store.Put(ctx, bindingOutKey, bindingBytes); err != nil {
				return fmt.Errorf("write updated binding: %w", err)
			}

			fmt.Println(color.GreenString("makespan %d (UB %d)", result.Makespan, result.UB))
			return nil
		},
	}

	cmd.Flags().StringVar(&graphPath, "graph", "", "path to the task graph JSON document")
	cmd.Flags().StringVar(&bindingInPath, "binding", "", "optional path to a warm-start binding JSON document")
	cmd.Flags().StringVar(&outPath, "out", "", "path to write the schedule JSON document (default: stdout)")
	cmd.Flags().StringVar(&bindingOutPath, "binding-out", "", "path to write the updated binding JSON document")
	return cmd
}

// storeKey converts a filesystem path (absolute, or relative to the current
// working directory) into a storage.Store key rooted at "/", so the CLI's
// file reads and writes go through the storage.Store abstraction instead of
// calling os.ReadFile/os.WriteFile directly.
func storeKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return strings.TrimPrefix(abs, string(filepath.Separator)), nil
}
