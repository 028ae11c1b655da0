package main

import (
	"github.com/spf13/cobra"

	"github.com/nova-client/launcher/internal/launch"
)

func newLaunchCmd() *cobra.Command {
	var (
		username   string
		ramGB      int
		extraFlags []string
	)

	cmd := &cobra.Command{
		Use:   "launch <version-id>",
		Short: "Prepare a version and start the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, logger, err := newPipeline()
			if err != nil {
				return err
			}

			req := launch.Request{
				VersionID:  args[0],
				Username:   username,
				RAMGB:      ramGB,
				ExtraFlags: extraFlags,
			}
			if err := p.Launch(cmd.Context(), req); err != nil {
				return err
			}
			logger.Info("🚀 Game started", "version", args[0], "user", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Player name (required)")
	cmd.Flags().IntVarP(&ramGB, "ram", "r", 4, "Heap size in GB")
	cmd.Flags().StringArrayVar(&extraFlags, "extra", nil,
		"Extra JVM flag appended verbatim to the launch command (repeatable)")

	if err := cmd.MarkFlagRequired("username"); err != nil {
		panic(err)
	}
	return cmd
}
