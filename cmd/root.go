// Package cmd defines the meeting-scheduler command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"meeting-scheduler/core/config"
	"meeting-scheduler/core/logger"

	"github.com/spf13/cobra"
)

var version = "dev" // set via ldflags at build time

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "meeting-scheduler",
		Short: "Negotiate meeting slots between participants",
		Long: `meeting-scheduler stores participants, their availability and meeting
requests, and negotiates a time slot for every meeting that reaches its quorum.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml)")

	load := func(logOut io.Writer) (*config.Config, error) {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		logger.Init(logger.Options{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Output:    logOut,
		})
		return cfg, nil
	}

	root.AddCommand(
		newServeCmd(load),
		newWorkerCmd(load),
		newSimulateCmd(load),
		newTokenCmd(load),
	)
	return root
}

type configLoader func(logOut io.Writer) (*config.Config, error)

// Execute runs the root command. Called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
