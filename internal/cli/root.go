// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/ggbuild/pkg/backend"
	"github.com/arc-language/ggbuild/pkg/build"
	"github.com/arc-language/ggbuild/pkg/config"
)

// Version of the ggbuild command
const Version = "0.1.0"

var (
	cfgFile   string
	target    string
	profile   string
	debug     bool
	backends  []string
	cfg       *config.Config
	configErr error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ggbuild",
	Short: "Native build orchestrator for ggml",
	Long: `ggbuild - native build orchestrator for ggml

Regenerates stale bindings, compiles the ggml sources with the vector
extensions the target supports, selects acceleration backends and prints
the link directives of the result.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ggbuild.yaml or $HOME/.config/ggbuild/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&target, "target", "", "target triple (e.g. x86_64-linux, aarch64-apple-darwin)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "build profile (debug, release)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringSliceVar(&backends, "backend", nil, "enable a backend (cublas, clblast, openblas, metal, accelerate); repeatable")

	// Add commands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(staleCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// Environment overrides the file, flags override both
	configErr = cfg.ApplyEnv(os.LookupEnv)

	if target != "" {
		cfg.Target = target
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if debug {
		cfg.Debug = true
	}
	if err := enableBackends(cfg, backends); err != nil && configErr == nil {
		configErr = err
	}
}

// enableBackends switches on each named backend in cfg
func enableBackends(cfg *config.Config, names []string) error {
	for _, name := range names {
		b, err := backend.ParseBackendType(name)
		if err != nil {
			return fmt.Errorf("--backend: %w", err)
		}
		cfg.Backends.Enable(b)
	}
	return nil
}

// newCoordinator builds a coordinator writing directives to cmd's output
func newCoordinator(cmd *cobra.Command) (*build.Coordinator, error) {
	if configErr != nil {
		return nil, fmt.Errorf("reading configuration: %w", configErr)
	}
	return build.New(cfg, build.Deps{Output: cmd.OutOrStdout()})
}
