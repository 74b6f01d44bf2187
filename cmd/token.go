package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/utils"

	"github.com/spf13/cobra"
)

func newTokenCmd(load configLoader) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a service token allowed to start scheduling runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(io.Discard)
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("auth.jwt_secret is not set")
			}
			if ttl <= 0 {
				return fmt.Errorf("invalid --ttl %s", ttl)
			}
			token, err := utils.GenerateServiceToken(cfg.Auth.JWTSecret, subject, constants.ScopeServiceToken, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "scheduler-cli", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
