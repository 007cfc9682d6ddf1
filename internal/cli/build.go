// internal/cli/build.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	buildFormat   string
	buildLinkFile string
	buildReadonly bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the native library and print link directives",
	Long: `Regenerate the bindings if they are stale, compile the sources (directly or
through CMake) and print the link directives of the result.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildFormat, "format", "", "directive format (lines, ldflags, yaml)")
	buildCmd.Flags().StringVar(&buildLinkFile, "link-file", "", "also write the directives as a cgo Go file")
	buildCmd.Flags().BoolVar(&buildReadonly, "readonly", false, "skip all work (read-only packaging environments)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	if buildFormat != "" {
		cfg.Format = buildFormat
	}
	if buildLinkFile != "" {
		cfg.LinkFile = buildLinkFile
	}
	if buildReadonly {
		cfg.Readonly = true
	}

	c, err := newCoordinator(cmd)
	if err != nil {
		return err
	}

	res, err := c.Run(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.Debug {
		fmt.Fprintf(cmd.ErrOrStderr(), "Build %s (bindings regenerated: %t, %d directives)\n",
			res.Final(), res.Regenerated, len(res.Directives))
	}
	return nil
}
