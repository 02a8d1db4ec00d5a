package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khryptorgraphics/mcpscheduler/internal/config"
	"github.com/khryptorgraphics/mcpscheduler/internal/logging"
	"github.com/khryptorgraphics/mcpscheduler/pkg/api"
)

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduling core as a long-lived HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.API.Listen = listen
			}

			logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: logging.Format(cfg.Logging.Format)})

			server := api.New(api.Config{
				Listen:             cfg.API.Listen,
				RateLimitPerSecond: cfg.API.RateLimitPerSecond,
				RateLimitBurst:     cfg.API.RateLimitBurst,
			}, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (overrides config)")
	return cmd
}
