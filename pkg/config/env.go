// pkg/config/env.go
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnv
const (
	EnvTarget         = "GGBUILD_TARGET"
	EnvHost           = "GGBUILD_HOST"
	EnvTargetFeatures = "GGBUILD_TARGET_FEATURES"
	EnvProfile        = "GGBUILD_PROFILE"
	EnvCC             = "GGBUILD_CC"
	EnvReadonly       = "GGBUILD_READONLY"
	EnvUseCMake       = "GGBUILD_USE_CMAKE"
	EnvCuBLAS         = "GGBUILD_CUBLAS"
	EnvCLBlast        = "GGBUILD_CLBLAST"
	EnvOpenBLAS       = "GGBUILD_OPENBLAS"
	EnvMetal          = "GGBUILD_METAL"
	EnvNoAccelerate   = "GGBUILD_NO_ACCELERATE"
	EnvNoKQuants      = "GGBUILD_NO_K_QUANTS"
)

// ApplyEnv overlays environment variables onto c. lookup is usually
// os.LookupEnv. Unset variables leave c unchanged.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(EnvTarget, &c.Target)
	str(EnvHost, &c.Host)
	str(EnvTargetFeatures, &c.TargetFeatures)
	str(EnvProfile, &c.Profile)
	str("CC", &c.Compiler)
	str(EnvCC, &c.Compiler)

	bools := []struct {
		key string
		dst *bool
	}{
		{EnvReadonly, &c.Readonly},
		{EnvUseCMake, &c.Backends.UseCMake},
		{EnvCuBLAS, &c.Backends.CuBLAS},
		{EnvCLBlast, &c.Backends.CLBlast},
		{EnvOpenBLAS, &c.Backends.OpenBLAS},
		{EnvMetal, &c.Backends.Metal},
		{EnvNoAccelerate, &c.Backends.NoAccelerate},
		{EnvNoKQuants, &c.Backends.NoKQuants},
	}
	for _, b := range bools {
		v, ok := lookup(b.key)
		if !ok {
			continue
		}
		// Presence alone switches a flag on
		if strings.TrimSpace(v) == "" {
			*b.dst = true
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", b.key, err)
		}
		*b.dst = parsed
	}

	return nil
}
