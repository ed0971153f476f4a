// internal/cli/show_config.go
package zoolaunch

import "github.com/spf13/cobra"

var showConfigRaw bool

// configCmd implements 'show config', which prints the merged launcher
// configuration (flags > config file > defaults).
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the merged launcher configuration",
	Long:  `The 'config' subcommand prints the configuration the launcher is running with after merging flags, the config file, and defaults. Use --raw to dump the underlying struct.`,
	Run: func(cmd *cobra.Command, args []string) {
		runShowConfig(showConfigRaw)
	},
}

func init() {
	configCmd.Flags().BoolVar(&showConfigRaw, "raw", false, "dump the raw configuration struct")

	showCmd.AddCommand(configCmd)
}
