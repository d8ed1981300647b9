package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/advdv/bpipe/internal/demo"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server until interrupted.

Examples:
  BP_SERVICE_NAME=demo bpipedemo serve
  BP_SERVICE_NAME=demo BP_ADDR=:8080 BP_OTEL_EXPORTER=none bpipedemo serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := demo.NewApp()
			if err := app.Err(); err != nil {
				return errors.Wrap(err, "failed to create app")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.Start(ctx)
		},
	}
}
