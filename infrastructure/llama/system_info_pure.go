//go:build !(llamacpp && cgo)

package llama

import (
	"runtime"
	"strings"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Backend names the implementation linked into this binary.
const Backend = "go"

// flag is one entry of the report.
type flag struct {
	name string
	set  func() bool
}

func has(ids ...cpuid.FeatureID) func() bool {
	return func() bool { return cpuid.CPU.Supports(ids...) }
}

func arch(archs ...string) func() bool {
	return func() bool {
		for _, a := range archs {
			if runtime.GOARCH == a {
				return true
			}
		}
		return false
	}
}

func never() bool { return false }

// Same order as llama.cpp's report.
var flags = []flag{
	{"AVX", has(cpuid.AVX)},
	{"AVX_VNNI", has(cpuid.AVXVNNI)},
	{"AVX2", has(cpuid.AVX2)},
	{"AVX512", has(cpuid.AVX512F)},
	{"AVX512_VBMI", has(cpuid.AVX512VBMI)},
	{"AVX512_VNNI", has(cpuid.AVX512VNNI)},
	{"FMA", has(cpuid.FMA3)},
	{"NEON", has(cpuid.ASIMD)},
	{"ARM_FMA", has(cpuid.ASIMD)},
	{"F16C", has(cpuid.F16C)},
	{"FP16_VA", has(cpuid.ASIMDHP)},
	{"WASM_SIMD", arch("wasm")},
	{"BLAS", never},
	{"SSE3", has(cpuid.SSE3)},
	{"SSSE3", has(cpuid.SSSE3)},
	{"VSX", arch("ppc64", "ppc64le")},
}

var report = sync.OnceValue(func() string {
	var b strings.Builder
	for _, f := range flags {
		b.WriteString(f.name)
		b.WriteString(" = ")
		if f.set() {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
		b.WriteString(" | ")
	}
	return b.String()
})

// SystemInfo returns the feature report for the running CPU.
// Detection runs once per process.
func SystemInfo() string {
	return report()
}
