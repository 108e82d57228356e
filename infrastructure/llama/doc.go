// Package llama adapts the llama.cpp inference library to the shim's
// SystemInfoProvider port.
//
// Built with -tags llamacpp (and cgo enabled) it links libllama and returns
// llama_print_system_info() verbatim. Include and library paths come from
// CGO_CFLAGS / CGO_LDFLAGS, e.g.
//
//	CGO_CFLAGS=-I$LLAMA/include CGO_LDFLAGS=-L$LLAMA/build/src go build -tags llamacpp ./...
//
// Without the tag no inference library is linked. The report is then
// produced in pure Go and describes the CPU the process runs on, as detected
// at runtime, not the flags any llama.cpp build was compiled with. It only
// borrows the "NAME = 0|1 | " layout; BLAS is always 0. Backend reports
// which of the two sources is in use.
package llama

import "github.com/modelfusion/llamacpp-bindings/domain/ports"

// Compile-time interface compliance check
var _ ports.SystemInfoProvider = Provider{}

// Provider implements ports.SystemInfoProvider on top of the linked backend.
type Provider struct{}

// NewProvider returns the system info provider for this build.
func NewProvider() Provider {
	return Provider{}
}

// SystemInfo implements ports.SystemInfoProvider.
func (Provider) SystemInfo() string {
	return SystemInfo()
}
