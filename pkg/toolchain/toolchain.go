// Package toolchain compiles the native sources into a static library with
// the platform C compiler and archiver.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/ggbuild/pkg/core"
	"github.com/arc-language/ggbuild/pkg/flags"
	"github.com/arc-language/ggbuild/pkg/platform"
)

// Request describes one static library build
type Request struct {
	Sources     []string
	IncludeDirs []string
	Flags       flags.Flags
	OutDir      string // Objects and the archive are written here
	Library     string // Archive name without prefix or extension
}

// Compiler is the native compiler collaborator
type Compiler interface {
	Compile(ctx context.Context, req Request) error
}

// Toolchain compiles with a concrete compiler family
type Toolchain struct {
	Family platform.Compiler
	CC     string // C compiler command
	AR     string // Archiver command
	Exec   Executor
	logger *log.Logger
}

// New creates a Toolchain for family. Empty commands fall back to the
// family defaults.
func New(family platform.Compiler, cc, ar string, logger *log.Logger) *Toolchain {
	if cc == "" {
		cc = defaultCC(family)
	}
	if ar == "" {
		ar = defaultAR(family)
	}
	return &Toolchain{
		Family: family,
		CC:     cc,
		AR:     ar,
		Exec:   ExecRunner{},
		logger: core.NewLogger(logger, false),
	}
}

func defaultCC(family platform.Compiler) string {
	switch family {
	case platform.CompilerMSVC:
		return "cl"
	case platform.CompilerClang:
		return "clang"
	default:
		return "cc"
	}
}

func defaultAR(family platform.Compiler) string {
	if family == platform.CompilerMSVC {
		return "lib"
	}
	return "ar"
}

// StaticLibName returns the file name of the archive for library
func StaticLibName(family platform.Compiler, library string) string {
	if family == platform.CompilerMSVC {
		return library + ".lib"
	}
	return "lib" + library + ".a"
}

// ObjectName returns the object file name for src
func ObjectName(family platform.Compiler, src string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if family == platform.CompilerMSVC {
		return base + ".obj"
	}
	return base + ".o"
}

// CompileArgs returns the arguments compiling src into obj
func CompileArgs(family platform.Compiler, src, obj string, req Request) []string {
	if family == platform.CompilerMSVC {
		args := []string{"/nologo", "/c"}
		if !req.Flags.Warnings {
			args = append(args, "/W0")
		}
		for _, dir := range req.IncludeDirs {
			args = append(args, "/I"+dir)
		}
		for _, d := range req.Flags.Defines {
			args = append(args, "/D"+d.String())
		}
		args = append(args, req.Flags.Flags...)
		return append(args, "/Fo"+obj, src)
	}

	args := []string{"-c"}
	if !req.Flags.Warnings {
		args = append(args, "-w")
	}
	for _, dir := range req.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	for _, d := range req.Flags.Defines {
		args = append(args, "-D"+d.String())
	}
	args = append(args, req.Flags.Flags...)
	return append(args, "-o", obj, src)
}

// ArchiveArgs returns the arguments packing objs into archive
func ArchiveArgs(family platform.Compiler, archive string, objs []string) []string {
	if family == platform.CompilerMSVC {
		return append([]string{"/nologo", "/OUT:" + archive}, objs...)
	}
	return append([]string{"crs", archive}, objs...)
}

// Compile implements Compiler. Diagnostics of a failing tool are returned
// verbatim in the error's Output.
func (t *Toolchain) Compile(ctx context.Context, req Request) error {
	if len(req.Sources) == 0 {
		return core.NewError(core.ErrCompile, "compile", req.OutDir, errors.New("no sources given"))
	}
	if req.Library == "" {
		return core.NewError(core.ErrCompile, "compile", req.OutDir, errors.New("no library name given"))
	}
	if err := os.MkdirAll(req.OutDir, 0755); err != nil {
		return core.NewError(core.ErrCompile, "compile", req.OutDir, fmt.Errorf("creating output directory: %w", err))
	}

	var objs []string
	for _, src := range req.Sources {
		obj := filepath.Join(req.OutDir, ObjectName(t.Family, src))
		t.logger.Printf("Compiling %s", src)
		if out, err := t.Exec.Run(ctx, req.OutDir, t.CC, CompileArgs(t.Family, src, obj, req)...); err != nil {
			e := core.NewError(core.ErrCompile, t.CC, src, err)
			e.Output = out
			return e
		}
		objs = append(objs, obj)
	}

	archive := filepath.Join(req.OutDir, StaticLibName(t.Family, req.Library))
	// ar appends to an existing archive
	if err := os.Remove(archive); err != nil && !os.IsNotExist(err) {
		return core.NewError(core.ErrCompile, "archive", archive, err)
	}

	t.logger.Printf("Archiving %d objects into %s", len(objs), archive)
	if out, err := t.Exec.Run(ctx, req.OutDir, t.AR, ArchiveArgs(t.Family, archive, objs)...); err != nil {
		e := core.NewError(core.ErrCompile, t.AR, archive, err)
		e.Output = out
		return e
	}

	return nil
}
