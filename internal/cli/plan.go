// internal/cli/plan.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/ggbuild/pkg/backend"
)

var planYAML bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the flags and link directives of a build without running it",
	Args:  cobra.NoArgs,
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planYAML, "yaml", false, "print the plan as YAML")
}

// planView is the YAML form of a plan
type planView struct {
	Target     string              `yaml:"target"`
	Compiler   string              `yaml:"compiler"`
	Native     bool                `yaml:"native"`
	Features   []string            `yaml:"features,omitempty"`
	Flags      []string            `yaml:"flags,omitempty"`
	Defines    []string            `yaml:"defines,omitempty"`
	Directives []backend.Directive `yaml:"directives"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	c, err := newCoordinator(cmd)
	if err != nil {
		return err
	}

	res, err := c.Plan()
	if err != nil {
		return err
	}

	view := planView{
		Target:     res.Target.Triple().String(),
		Compiler:   string(res.Target.Compiler),
		Native:     res.Target.Native,
		Features:   res.Features.Names(),
		Flags:      res.Flags.Flags,
		Defines:    res.Defines,
		Directives: res.Directives,
	}
	for _, d := range res.Flags.Defines {
		view.Defines = append(view.Defines, d.String())
	}

	out := cmd.OutOrStdout()
	if planYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprintf(out, "Target:   %s\n", res.Target)
	fmt.Fprintf(out, "Features: %s\n", res.Features)
	fmt.Fprintf(out, "Flags:    %s\n", strings.Join(view.Flags, " "))
	fmt.Fprintf(out, "Defines:  %s\n", strings.Join(view.Defines, " "))
	fmt.Fprintln(out, "Directives:")
	for _, d := range res.Directives {
		fmt.Fprintf(out, "  %s\n", d)
	}
	return nil
}
