// pkg/backend/cmake.go
package backend

import (
	"github.com/arc-language/ggbuild/pkg/platform"
)

// CMakeTarget is the external build target producing the static library
const CMakeTarget = "llama"

// CMakeDefines returns the NAME=VALUE defines the external build is
// configured with. The BLAS choice follows the same precedence as Select.
func CMakeDefines(targetOS platform.OS, cfg Config) []string {
	var defs []string
	if cfg.NoKQuants {
		defs = append(defs, "LLAMA_K_QUANTS=OFF")
	}

	switch cfg.Primary() {
	case BackendCuBLAS:
		defs = append(defs, "LLAMA_CUBLAS=ON")
	case BackendCLBlast:
		defs = append(defs, "LLAMA_CLBLAST=ON")
	case BackendOpenBLAS:
		defs = append(defs, "LLAMA_BLAS=ON", "LLAMA_BLAS_VENDOR=OpenBLAS")
	}

	if targetOS == platform.OSMacOS {
		defs = append(defs, "LLAMA_ACCELERATE="+onOff(!cfg.NoAccelerate))
		defs = append(defs, "LLAMA_METAL="+onOff(cfg.Metal))
	}
	return defs
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
