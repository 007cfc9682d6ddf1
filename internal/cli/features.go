// internal/cli/features.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show the resolved target and the CPU features the build assumes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCoordinator(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Target:   %s\n", c.Target())
		fmt.Fprintf(cmd.OutOrStdout(), "Features: %s\n", c.Features())
		return nil
	},
}
