// internal/cli/list_implementations.go
package zoolaunch

import "github.com/spf13/cobra"

var (
	listImplFramework string
	listImplUseCase   string
	listImplOutput    string
)

// implementationsCmd implements 'list implementations', which enumerates
// every benchmark implementation directory in the zoo.
var implementationsCmd = &cobra.Command{
	Use:   "implementations",
	Short: "List benchmark implementations available in the zoo",
	Long:  `The 'implementations' subcommand walks the benchmarks tree and prints every use-case/framework/model/mode/precision directory it finds, optionally filtered by framework or use case.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListImplementations(listImplFramework, listImplUseCase, listImplOutput)
	},
}

func init() {
	implementationsCmd.Flags().StringVar(&listImplFramework, "framework", "", "only list implementations for this framework")
	implementationsCmd.Flags().StringVar(&listImplUseCase, "use-case", "", "only list implementations for this use case")
	implementationsCmd.Flags().StringVar(&listImplOutput, "output", "text", "output format: text, json, or yaml")

	listCmd.AddCommand(implementationsCmd)
}
