// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ggbuild version %s\n", Version)
		fmt.Fprintln(cmd.OutOrStdout(), "Native build orchestrator for ggml")
	},
}
