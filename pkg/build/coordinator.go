// Package build runs the native build pipeline: binding regeneration,
// compilation, backend selection and link directive emission.
package build

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/ggbuild/pkg/backend"
	"github.com/arc-language/ggbuild/pkg/bindgen"
	"github.com/arc-language/ggbuild/pkg/cmake"
	"github.com/arc-language/ggbuild/pkg/config"
	"github.com/arc-language/ggbuild/pkg/core"
	"github.com/arc-language/ggbuild/pkg/env"
	"github.com/arc-language/ggbuild/pkg/features"
	"github.com/arc-language/ggbuild/pkg/flags"
	"github.com/arc-language/ggbuild/pkg/platform"
	"github.com/arc-language/ggbuild/pkg/source"
	"github.com/arc-language/ggbuild/pkg/staleness"
	"github.com/arc-language/ggbuild/pkg/toolchain"
)

// Deps are the external collaborators of a Coordinator. Nil fields get the
// command-line implementations.
type Deps struct {
	Generator bindgen.Generator
	Compiler  toolchain.Compiler
	CMake     cmake.Builder
	Prober    features.Prober
	Output    io.Writer                   // Directives are rendered here
	Lookup    func(string) (string, bool) // Environment for vendor prefixes
}

// Coordinator drives one build. The target, features and profile are
// resolved once when it is created and never change afterwards.
type Coordinator struct {
	cfg      *config.Config
	target   *platform.Target
	features features.Set
	profile  platform.Profile
	format   backend.Format

	deps   Deps
	logger *log.Logger
}

// Result describes a finished run
type Result struct {
	Target      *platform.Target
	Features    features.Set
	States      []State
	Unpacked    bool // Sources were unpacked from the bundle
	Regenerated bool // The binding generator ran
	Flags       flags.Flags
	Defines     []string // External build defines
	Directives  []backend.Directive
}

// Final returns the last state of the run
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return StateInit
	}
	return r.States[len(r.States)-1]
}

// New resolves cfg into a Coordinator
func New(cfg *config.Config, deps Deps) (*Coordinator, error) {
	logger := core.NewLogger(cfg.Logger, cfg.Debug)

	target, err := platform.Detect(platform.Options{
		Target:   cfg.Target,
		Host:     cfg.Host,
		Compiler: cfg.Compiler,
	})
	if err != nil {
		return nil, core.NewError(core.ErrConfiguration, "resolve target", "", err)
	}
	profile, err := platform.ParseProfile(cfg.Profile)
	if err != nil {
		return nil, core.NewError(core.ErrConfiguration, "resolve profile", "", err)
	}
	format, err := backend.ParseFormat(cfg.Format)
	if err != nil {
		return nil, core.NewError(core.ErrConfiguration, "resolve format", "", err)
	}

	if deps.Prober == nil {
		deps.Prober = features.Host{}
	}
	if deps.Generator == nil {
		deps.Generator = &bindgen.Command{
			Path:      cfg.Bindgen.Command,
			ExtraArgs: cfg.Bindgen.ExtraArgs,
			ClangArgs: cfg.Bindgen.ClangArgs,
		}
	}
	if deps.Compiler == nil {
		deps.Compiler = toolchain.New(target.Compiler, cfg.Compiler, cfg.Archiver, logger)
	}
	if deps.CMake == nil {
		deps.CMake = cmake.New(cfg.CMake.Command, logger)
	}
	if deps.Output == nil {
		deps.Output = io.Discard
	}
	if deps.Lookup == nil {
		deps.Lookup = os.LookupEnv
	}

	set := features.Detect(target, cfg.TargetFeatures, deps.Prober)
	logger.Printf("Target %s, features %s, profile %s", target, set, profile)

	return &Coordinator{
		cfg:      cfg,
		target:   target,
		features: set,
		profile:  profile,
		format:   format,
		deps:     deps,
		logger:   logger,
	}, nil
}

// Target returns the resolved target
func (c *Coordinator) Target() *platform.Target {
	return c.target
}

// Features returns the resolved feature set
func (c *Coordinator) Features() features.Set {
	return c.features
}

// Run executes the pipeline. Any failure moves the run to StateFailed and
// nothing after the failing stage is attempted.
func (c *Coordinator) Run(ctx context.Context) (*Result, error) {
	m := newMachine()
	res := &Result{Target: c.target, Features: c.features}

	err := c.run(ctx, m, res)
	if err != nil {
		from := m.current()
		if terr := m.transition(StateFailed); terr != nil {
			c.logger.Printf("recording failure: %v", terr)
		}
		c.logger.Printf("Build failed after %s: %v", from, err)
	}
	res.States = m.history
	return res, err
}

func (c *Coordinator) run(ctx context.Context, m *machine, res *Result) error {
	if c.cfg.Readonly {
		c.logger.Printf("Readonly mode, nothing to build")
		return m.transition(StateDone)
	}

	// Backend conflicts abort before any file is touched
	if err := backend.Validate(c.cfg.Backends); err != nil {
		return err
	}

	unpacked, err := source.Ensure(c.cfg.SourceDir, c.cfg.Bundle, source.Options{
		Strip:  c.cfg.Strip,
		SHA256: c.cfg.BundleSHA256,
		Logger: c.logger,
	})
	if err != nil {
		return err
	}
	res.Unpacked = unpacked

	regenerated, err := c.bindings(ctx)
	if err != nil {
		return err
	}
	res.Regenerated = regenerated
	if err := m.transition(StateBindingsReady); err != nil {
		return err
	}

	out, err := c.compile(ctx, res)
	if err != nil {
		return err
	}
	if err := m.transition(StateCompiling); err != nil {
		return err
	}

	ds, err := c.directives(out)
	if err != nil {
		return err
	}
	res.Directives = ds
	if err := m.transition(StateLinkPlanned); err != nil {
		return err
	}

	if err := c.emit(ds); err != nil {
		return err
	}
	return m.transition(StateDone)
}

// Stale reports whether the bindings are older than the source tree or
// any extra input
func (c *Coordinator) Stale() (bool, error) {
	sources := append([]string{c.cfg.SourceDir}, c.cfg.Inputs...)
	return staleness.New(c.logger).IsStale(c.cfg.Bindings, sources)
}

// bindings regenerates the bindings when they are stale
func (c *Coordinator) bindings(ctx context.Context) (bool, error) {
	stale, err := c.Stale()
	if err != nil {
		return false, err
	}
	if !stale {
		c.logger.Printf("Bindings %s are up to date", c.cfg.Bindings)
		return false, nil
	}

	rawLines := c.cfg.Bindgen.RawLines
	if len(rawLines) == 0 {
		rawLines = bindgen.DefaultPreamble(c.cfg.Version)
	}
	req := bindgen.Request{
		Headers:  bindgen.Headers(c.cfg.SourceDir, c.cfg.Header, c.cfg.Backends),
		RawLines: rawLines,
		Output:   c.cfg.Bindings,
	}
	if err := bindgen.NewInvoker(c.deps.Generator, c.logger).Generate(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}

// Flags plans the direct-compile flags for the resolved target
func (c *Coordinator) Flags() flags.Flags {
	return flags.Plan(flags.Input{
		Target:       *c.target,
		Features:     c.features,
		Profile:      c.profile,
		NoAccelerate: c.cfg.Backends.NoAccelerate,
		NoKQuants:    c.cfg.Backends.NoKQuants,
	})
}

// CMakeDefines returns every define the external build is configured with
func (c *Coordinator) CMakeDefines() []string {
	defs := backend.CMakeDefines(c.target.OS, c.cfg.Backends)
	if prefixes := c.vendorPrefixes(); len(prefixes) > 0 {
		defs = append(defs, "CMAKE_PREFIX_PATH="+strings.Join(prefixes, ";"))
	}
	return append(defs, c.cfg.CMake.Defines...)
}

// compile builds the library. Both tools run inside the output directory,
// so every path handed to them is absolute.
func (c *Coordinator) compile(ctx context.Context, res *Result) (backend.Output, error) {
	srcDir, err := filepath.Abs(c.cfg.SourceDir)
	if err != nil {
		return backend.Output{}, core.NewError(core.ErrCompile, "resolve", c.cfg.SourceDir, err)
	}

	if c.cfg.Backends.UseCMake {
		res.Defines = c.CMakeDefines()
		dst, err := filepath.Abs(c.cfg.CMakeDst())
		if err != nil {
			return backend.Output{}, core.NewError(core.ErrCompile, "resolve", c.cfg.CMakeDst(), err)
		}
		dir, err := c.deps.CMake.Build(ctx, cmake.Request{
			SourceDir: srcDir,
			DstDir:    dst,
			Defines:   res.Defines,
			Target:    backend.CMakeTarget,
			Config:    c.cfg.CMake.BuildConfig,
			Generator: c.cfg.CMake.Generator,
		})
		if err != nil {
			return backend.Output{}, err
		}
		return backend.Output{Dir: dir, Library: backend.CMakeTarget}, nil
	}

	res.Flags = c.Flags()
	outDir, err := filepath.Abs(c.cfg.OutDir)
	if err != nil {
		return backend.Output{}, core.NewError(core.ErrCompile, "resolve", c.cfg.OutDir, err)
	}
	err = c.deps.Compiler.Compile(ctx, toolchain.Request{
		Sources:     flags.Sources(srcDir, c.cfg.Backends.NoKQuants),
		IncludeDirs: []string{filepath.Join(srcDir, c.cfg.IncludeDir)},
		Flags:       res.Flags,
		OutDir:      outDir,
		Library:     c.cfg.Library,
	})
	if err != nil {
		return backend.Output{}, err
	}
	return backend.Output{Dir: outDir, Library: c.cfg.Library, Frameworks: res.Flags.Frameworks}, nil
}

// vendorEnv searches the configured prefixes, then the platform defaults
func (c *Coordinator) vendorEnv() *env.Environment {
	prefixes := append([]string(nil), c.cfg.SearchPrefixes...)
	for _, p := range env.DefaultPrefixes(c.target.OS, c.cfg.Backends, c.deps.Lookup) {
		if !contains(prefixes, p) {
			prefixes = append(prefixes, p)
		}
	}
	return env.New(c.target.OS, prefixes)
}

// vendorPrefixes returns the prefixes providing a library of the primary
// backend, in search order
func (c *Coordinator) vendorPrefixes() []string {
	if !c.cfg.Backends.UseCMake {
		return nil
	}
	e := c.vendorEnv()
	var found []string
	for _, name := range env.Libraries(c.target.OS, c.cfg.Backends) {
		for _, p := range e.Prefixes {
			if env.New(c.target.OS, []string{p}).HasLibrary(name) {
				if !contains(found, p) {
					found = append(found, p)
				}
				break
			}
		}
	}
	return found
}

func (c *Coordinator) directives(out backend.Output) ([]backend.Directive, error) {
	if c.cfg.Backends.UseCMake {
		out.VendorDirs = c.vendorEnv().LibraryDirs(env.Libraries(c.target.OS, c.cfg.Backends))
	}
	return backend.Select(c.target.OS, c.cfg.Backends, out)
}

func (c *Coordinator) emit(ds []backend.Directive) error {
	if err := backend.Render(c.deps.Output, ds, c.format); err != nil {
		return core.NewError(core.ErrLink, "render", "", err)
	}
	if c.cfg.LinkFile != "" {
		if err := backend.WriteCgoFile(c.cfg.LinkFile, c.cfg.LinkPackage, ds); err != nil {
			return core.NewError(core.ErrLink, "write", c.cfg.LinkFile, err)
		}
		c.logger.Printf("Wrote link directives to %s", c.cfg.LinkFile)
	}
	return nil
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// String returns a string representation of the coordinator's inputs
func (c *Coordinator) String() string {
	return fmt.Sprintf("%s features=%s profile=%s cmake=%t", c.target, c.features, c.profile, c.cfg.Backends.UseCMake)
}
