package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "stint",
	Short:   "Phase-based instrumentation for measuring time and memory",
	Version: version,
	Long: `Stint measures named phases of a workload: elapsed time, allocation
activity observed through its allocator shim, and free-form data, all
gathered into a hierarchical JSON document and a sortable RESULT line.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute runs the root command. It is called once from main.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(benchCmd)
}
