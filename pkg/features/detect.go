package features

import (
	"github.com/arc-language/ggbuild/pkg/platform"
)

// Prober reports the x86 extensions of the running CPU
type Prober interface {
	Probe() Set
}

// Detect resolves the feature set for target.
//
// Native x86 builds ask the prober; cross x86 builds use the declared list.
// aarch64 has no discrete flags, only the tuning mode. Every other
// architecture gets the empty set.
func Detect(target *platform.Target, declared string, prober Prober) Set {
	switch {
	case target.Arch.IsX86():
		if target.Native && prober != nil {
			p := prober.Probe()
			return Set{FMA: p.FMA, AVX: p.AVX, AVX2: p.AVX2, F16C: p.F16C, SSE3: p.SSE3}
		}
		return ParseList(declared)
	case target.Arch == platform.ArchAarch64:
		return Set{
			NativeTune: target.Native,
			AppleTune:  !target.Native && target.OS == platform.OSMacOS,
		}
	default:
		return Set{}
	}
}
