// Command nova-launcher resolves, verifies, and launches game versions from
// the command line.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/nova-client/launcher/internal/config"
	"github.com/nova-client/launcher/internal/launcher"
	"github.com/nova-client/launcher/internal/logging"
)

const version = "5.3.25"

var (
	logLevel    string
	rootCmd     *cobra.Command
	versionFlag bool
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "nova-launcher",
		Short: "Resolve, verify, and launch game versions",
		Long:  `Resolve, verify, and launch game versions`,
		Run: func(cmd *cobra.Command, args []string) {
			if versionFlag {
				fmt.Printf("nova-launcher %s\n", version)
				return
			}
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(newVersionsCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newLaunchCmd())
	rootCmd.AddCommand(newSkinCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newPipeline builds the shared pipeline from config and flags.
func newPipeline() (*launcher.Pipeline, hclog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level := logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	logger := logging.NewLogger("nova-launcher", level, nil)

	p, err := launcher.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return p, logger, nil
}
