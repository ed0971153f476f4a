// internal/cli/show.go
package zoolaunch

import "github.com/spf13/cobra"

// showCmd represents the 'show' command group for inspecting launcher state.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for showing launcher state",
	Long:  `The 'show' command groups subcommands that display the launcher's current state, such as the merged configuration.`,
}

func init() {
	rootCmd.AddCommand(showCmd)
}
