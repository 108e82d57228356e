//go:build wasip1

package guest

import (
	"fmt"

	"github.com/modelfusion/llamacpp-bindings/application/bindings"
	"github.com/modelfusion/llamacpp-bindings/internal/abi"
)

//go:wasmimport llamacpp llamacppBindings
func hostConstruct(request uint64) uint64

//go:wasmimport llamacpp llamacppBindings.greet
func hostGreet(request uint64) uint64

//go:wasmimport llamacpp systemInfo
func hostSystemInfo(request uint64) uint64

func hostTransport(export string, request []byte) ([]byte, error) {
	var fn func(uint64) uint64
	switch export {
	case bindings.ExportConstructor:
		fn = hostConstruct
	case bindings.ExportGreet:
		fn = hostGreet
	case bindings.ExportSystemInfo:
		fn = hostSystemInfo
	default:
		return nil, fmt.Errorf("guest: no host import for %q", export)
	}
	return abi.Call(fn, request), nil
}
