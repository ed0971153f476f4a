// internal/cli/list.go
package zoolaunch

import "github.com/spf13/cobra"

// listCmd represents the 'list' command group for enumerating launcher state.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing launcher state",
	Long:  `The 'list' command groups subcommands that enumerate what the launcher can see, such as the benchmark implementations available in the zoo.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
