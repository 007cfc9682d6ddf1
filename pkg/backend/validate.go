// pkg/backend/validate.go
package backend

import (
	"fmt"
	"strings"

	"github.com/arc-language/ggbuild/pkg/core"
)

// Validate checks the mutual-exclusion rules of a backend configuration.
//
// At most one GPU backend may be active, and every GPU or alternate BLAS
// backend requires the external build system: the direct compile path cannot
// express them.
func Validate(cfg Config) error {
	if cfg.CuBLAS && cfg.CLBlast {
		return core.Errorf(core.ErrConfiguration, "validate backends",
			"%s and %s cannot be enabled together", BackendCuBLAS, BackendCLBlast)
	}

	if !cfg.UseCMake {
		if enabled := cfg.Enabled(); len(enabled) > 0 {
			names := make([]string, len(enabled))
			for i, b := range enabled {
				names[i] = string(b)
			}
			return core.Errorf(core.ErrConfiguration, "validate backends",
				"%s requires use_cmake", strings.Join(names, ", "))
		}
	}

	return nil
}

// ParseBackendType maps a name to a BackendType
func ParseBackendType(s string) (BackendType, error) {
	switch b := BackendType(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendCuBLAS, BackendCLBlast, BackendOpenBLAS, BackendMetal, BackendAccelerate, BackendNone:
		return b, nil
	default:
		return "", fmt.Errorf("unknown backend: %q", s)
	}
}

// Enable switches on the named backend
func (c *Config) Enable(b BackendType) {
	switch b {
	case BackendCuBLAS:
		c.CuBLAS = true
	case BackendCLBlast:
		c.CLBlast = true
	case BackendOpenBLAS:
		c.OpenBLAS = true
	case BackendMetal:
		c.Metal = true
	case BackendAccelerate:
		c.NoAccelerate = false
	}
}
