package main

import (
	"github.com/spf13/cobra"

	"github.com/subframe7536/unobundle/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "unobundle",
	Short: "Utility-class CSS generation for bundler pipelines",
	Long: `Scan source files for utility-class tokens, expand variant groups,
and emit one aggregated stylesheet for the whole tree.`,
	// Default behavior: run build when no subcommand is given. loadConfig
	// must be called here because buildCmd's PreRunE is not triggered when
	// delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runBuild(buildCmd, nil)
	},
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level, _ := cmd.Flags().GetString("log-level")
		jsonLog, _ := cmd.Flags().GetBool("log-json")
		logging.Configure(logging.Options{Level: level, JSON: jsonLog})
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".unobundle.yaml", "Config file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
