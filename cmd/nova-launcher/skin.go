package main

import (
	"github.com/spf13/cobra"

	"github.com/nova-client/launcher/internal/config"
	"github.com/nova-client/launcher/internal/logging"
	"github.com/nova-client/launcher/internal/skins"
)

func newSkinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skin <path-to-png>",
		Short: "Apply a custom skin file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.NewLogger("nova-launcher", logging.GetLogLevel(), nil)
			return skins.Apply(args[0], cfg, logger)
		},
	}
}
