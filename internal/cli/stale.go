// internal/cli/stale.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var staleCmd = &cobra.Command{
	Use:   "stale",
	Short: "Report whether the generated bindings need regeneration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCoordinator(cmd)
		if err != nil {
			return err
		}
		stale, err := c.Stale()
		if err != nil {
			return err
		}
		if stale {
			fmt.Fprintln(cmd.OutOrStdout(), "stale")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "fresh")
		}
		return nil
	},
}
