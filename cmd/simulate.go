package cmd

import (
	"encoding/json"
	"fmt"

	"meeting-scheduler/modules/scheduling/negotiation"
	"meeting-scheduler/modules/scheduling/scenario"

	"github.com/spf13/cobra"
)

func newSimulateCmd(load configLoader) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "simulate -f scenario.yaml",
		Short: "Negotiate a YAML scenario offline and print the outcomes as JSON",
		Long: `simulate runs the negotiation on participants and meetings read from a
YAML file. Nothing is stored; the database and Redis are not needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Logs go to stderr so stdout stays valid JSON.
			cfg, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			s, err := scenario.Load(file)
			if err != nil {
				return err
			}

			base := negotiation.CandidateSearch{
				OpeningHour: cfg.Scheduling.OpeningHour,
				ClosingHour: cfg.Scheduling.ClosingHour,
				StepHours:   cfg.Scheduling.StepHours,
			}
			report, err := s.Run(cmd.Context(), base)
			if report == nil {
				return fmt.Errorf("simulate: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(report); encErr != nil {
				return encErr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
