package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check a running server's health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			err := NewClient(cfg.ServerURL).Get(cmd.Context(), "/api/health", &result)
			var statusErr *StatusError
			if err != nil && !errors.As(err, &statusErr) {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			if statusErr != nil {
				return fmt.Errorf("server unhealthy: %w", statusErr)
			}
			return nil
		},
	}
}
