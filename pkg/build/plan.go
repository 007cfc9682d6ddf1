package build

import (
	"path/filepath"

	"github.com/arc-language/ggbuild/pkg/backend"
	"github.com/arc-language/ggbuild/pkg/cmake"
	"github.com/arc-language/ggbuild/pkg/core"
)

// Plan computes the flags, external build defines and link directives a
// run would produce, without generating or compiling anything.
func (c *Coordinator) Plan() (*Result, error) {
	res := &Result{Target: c.target, Features: c.features, States: []State{StateInit}}
	if err := backend.Validate(c.cfg.Backends); err != nil {
		return res, err
	}

	var out backend.Output
	if c.cfg.Backends.UseCMake {
		res.Defines = c.CMakeDefines()
		dst, err := filepath.Abs(c.cfg.CMakeDst())
		if err != nil {
			return res, core.NewError(core.ErrConfiguration, "resolve", c.cfg.CMakeDst(), err)
		}
		out = backend.Output{Dir: cmake.BuildDir(dst), Library: backend.CMakeTarget}
	} else {
		res.Flags = c.Flags()
		dir, err := filepath.Abs(c.cfg.OutDir)
		if err != nil {
			return res, core.NewError(core.ErrConfiguration, "resolve", c.cfg.OutDir, err)
		}
		out = backend.Output{Dir: dir, Library: c.cfg.Library, Frameworks: res.Flags.Frameworks}
	}

	ds, err := c.directives(out)
	if err != nil {
		return res, err
	}
	res.Directives = ds
	return res, nil
}
