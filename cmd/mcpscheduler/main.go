package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	version = "dev"
	rootCmd *cobra.Command
)

func main() {
	rootCmd = &cobra.Command{
		Use:     "mcpscheduler",
		Short:   "Modified-Critical-Path DAG scheduler",
		Version: version,
		Long: `mcpscheduler places a DAG of tasks onto a heterogeneous, time-varying
processor pool under a per-task memory constraint, minimizing makespan
with the Modified-Critical-Path heuristic.

  mcpscheduler schedule --graph tasks.json --out schedule.json
  mcpscheduler serve --listen :8080
  mcpscheduler benchmark --sizes 10,50,100,500`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./mcpscheduler.yaml)")

	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(benchmarkCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}
