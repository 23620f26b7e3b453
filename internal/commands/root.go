package commands

import (
	"github.com/hearthkit/hearth"
	"github.com/hearthkit/hearth/internal/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the Hearth CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "hearth",
		Short: "Scaffold Home Assistant automations and packages",
		Long: `Hearth scaffolds Home Assistant configuration from the command line.

It writes tidy, review-friendly YAML into your config directory:
• Single automation files under automation_helper/
• Package directories (automations, scripts, scenes, README, blueprints)

Existing files are never overwritten unless you ask for it.`,
		Version: hearth.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
		// main reports errors through output.Error instead.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("config-root", "",
		"Home Assistant configuration directory (default: hearth.yaml config_root, HEARTH_CONFIG_ROOT, or the working directory)")

	return cmd
}
