package flags

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arc-language/ggbuild/pkg/features"
	"github.com/arc-language/ggbuild/pkg/platform"
)

func linuxX86(cc platform.Compiler) platform.Target {
	return platform.Target{Arch: platform.ArchX8664, OS: platform.OSLinux, Native: true, Compiler: cc}
}

func TestPlanGNUFeatureOrder(t *testing.T) {
	f := Plan(Input{
		Target:    linuxX86(platform.CompilerGNU),
		Features:  features.Set{SSE3: true, AVX2: true, FMA: true},
		NoKQuants: true,
	})
	assert.Equal(t, []string{"-pthread", "-mfma", "-mavx2", "-msse3"}, f.Flags)
	assert.Empty(t, f.Defines)
	assert.False(t, f.Warnings)
}

func TestPlanGNUAllFeatures(t *testing.T) {
	f := Plan(Input{
		Target:   linuxX86(platform.CompilerClang),
		Features: features.ParseList("sse3,f16c,avx2,avx,fma"),
	})
	assert.Equal(t, []string{"-pthread", "-mfma", "-mavx", "-mavx2", "-mf16c", "-msse3"}, f.Flags)
}

func TestPlanMSVC(t *testing.T) {
	for _, avx := range []bool{false, true} {
		for _, avx2 := range []bool{false, true} {
			for _, fma := range []bool{false, true} {
				set := features.Set{AVX: avx, AVX2: avx2, FMA: fma, F16C: true, SSE3: true}
				f := Plan(Input{Target: linuxX86(platform.CompilerMSVC), Features: set})

				switch {
				case avx2:
					assert.Equal(t, []string{"/arch:AVX2"}, f.Flags, set.String())
				case avx:
					assert.Equal(t, []string{"/arch:AVX"}, f.Flags, set.String())
				default:
					assert.Empty(t, f.Flags, set.String())
				}
			}
		}
	}
}

func TestPlanAarch64(t *testing.T) {
	tests := []struct {
		name   string
		target platform.Target
		set    features.Set
		want   []string
	}{
		{
			"native",
			platform.Target{Arch: platform.ArchAarch64, OS: platform.OSLinux, Native: true, Compiler: platform.CompilerGNU},
			features.Set{NativeTune: true},
			[]string{"-mcpu=native", "-pthread"},
		},
		{
			"cross to macos",
			platform.Target{Arch: platform.ArchAarch64, OS: platform.OSMacOS, Compiler: platform.CompilerClang},
			features.Set{AppleTune: true},
			[]string{"-mcpu=apple-m1", "-mfpu=neon", "-pthread"},
		},
		{
			"cross to linux",
			platform.Target{Arch: platform.ArchAarch64, OS: platform.OSLinux, Compiler: platform.CompilerGNU},
			features.Set{},
			[]string{"-pthread"},
		},
		{
			"msvc",
			platform.Target{Arch: platform.ArchAarch64, OS: platform.OSWindows, Compiler: platform.CompilerMSVC},
			features.Set{},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Plan(Input{Target: tt.target, Features: tt.set, NoKQuants: true}).Flags)
		})
	}
}

func TestPlanOtherArch(t *testing.T) {
	f := Plan(Input{
		Target:   platform.Target{Arch: platform.ArchOther, OS: platform.OSLinux, Compiler: platform.CompilerGNU},
		Features: features.Set{AVX: true},
	})
	assert.Empty(t, f.Flags)
}

func TestPlanProfile(t *testing.T) {
	release := Plan(Input{Target: linuxX86(platform.CompilerGNU), Profile: platform.ProfileRelease, NoKQuants: true})
	assert.Equal(t, []Define{{Name: "NDEBUG"}}, release.Defines)

	debug := Plan(Input{Target: linuxX86(platform.CompilerGNU), Profile: platform.ProfileDebug, NoKQuants: true})
	assert.Empty(t, debug.Defines)
}

func TestPlanAccelerate(t *testing.T) {
	mac := platform.Target{Arch: platform.ArchAarch64, OS: platform.OSMacOS, Native: true, Compiler: platform.CompilerClang}

	f := Plan(Input{Target: mac, Profile: platform.ProfileRelease})
	assert.Equal(t, []Define{{Name: "GGML_USE_ACCELERATE"}, {Name: "GGML_USE_K_QUANTS"}, {Name: "NDEBUG"}}, f.Defines)
	assert.Equal(t, []string{"Accelerate"}, f.Frameworks)

	f = Plan(Input{Target: mac, NoAccelerate: true})
	assert.Equal(t, []Define{{Name: "GGML_USE_K_QUANTS"}}, f.Defines)
	assert.Empty(t, f.Frameworks)
}

func TestPlanIsDeterministic(t *testing.T) {
	in := Input{Target: linuxX86(platform.CompilerGNU), Features: features.Set{AVX: true}, Profile: platform.ProfileRelease}
	assert.Equal(t, Plan(in), Plan(in))
}

func TestDefineString(t *testing.T) {
	assert.Equal(t, "NDEBUG", Define{Name: "NDEBUG"}.String())
	assert.Equal(t, "GGML_MAX=4", Define{Name: "GGML_MAX", Value: "4"}.String())
}

func TestSources(t *testing.T) {
	assert.Equal(t, []string{filepath.Join("src", "ggml.c"), filepath.Join("src", "k_quants.c")}, Sources("src", false))
	assert.Equal(t, []string{filepath.Join("src", "ggml.c")}, Sources("src", true))
}
