package features

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// Host probes the CPU this process runs on. On non-x86 hosts every field
// reads false.
type Host struct{}

// Probe implements Prober
func (Host) Probe() Set {
	return Set{
		FMA:  cpu.X86.HasFMA,
		AVX:  cpu.X86.HasAVX,
		AVX2: cpu.X86.HasAVX2,
		SSE3: cpu.X86.HasSSE3,
		// x/sys/cpu does not expose F16C
		F16C: cpuid.CPU.Supports(cpuid.F16C),
	}
}
