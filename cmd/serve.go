package cmd

import (
	"os"

	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/server"

	"github.com/spf13/cobra"
)

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduling worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(os.Stdout)
			if err != nil {
				return err
			}
			app, err := server.NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			logger.Info("Cmd:Serve:Start", "addr", cfg.Server.Address(), "version", version)
			return app.Serve(cmd.Context())
		},
	}
}

func newWorkerCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run only the scheduling worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(os.Stdout)
			if err != nil {
				return err
			}
			app, err := server.NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			logger.Info("Cmd:Worker:Start", "queue", cfg.Queue.Queue, "concurrency", cfg.Queue.Concurrency)
			return app.Worker().Run(cmd.Context())
		},
	}
}
