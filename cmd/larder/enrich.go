package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich one batch of stored items that have no nutrition yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.close()

		if a.job == nil {
			return errors.New("item store not configured (set LARDER_DATABASE_DSN)")
		}

		summary, err := a.job.RunPending(cmd.Context())
		if err != nil {
			return err
		}
		a.logger.Info("enrichment finished",
			zap.String("run_id", summary.RunID),
			zap.Int("scheduled", summary.Scheduled),
			zap.Int("completed", summary.Completed),
			zap.Int("skipped", summary.Skipped),
			zap.Int("failed", summary.Failed),
			zap.Duration("duration", summary.Duration),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}
