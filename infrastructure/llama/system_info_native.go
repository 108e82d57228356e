//go:build llamacpp && cgo

package llama

/*
#cgo LDFLAGS: -lllama -lggml -lggml-base -lm -lstdc++ -lpthread
#include <llama.h>
*/
import "C"

// Backend names the implementation linked into this binary.
const Backend = "llama.cpp"

// SystemInfo returns llama_print_system_info(). The library owns the
// returned buffer; it is copied before the next call can overwrite it.
func SystemInfo() string {
	return C.GoString(C.llama_print_system_info())
}
