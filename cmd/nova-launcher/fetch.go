package main

import (
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <version-id>",
		Short: "Download and verify a version's runtime and artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, logger, err := newPipeline()
			if err != nil {
				return err
			}
			if err := p.Prepare(cmd.Context(), args[0]); err != nil {
				return err
			}
			logger.Info("✅ Version ready", "version", args[0])
			return nil
		},
	}
}
