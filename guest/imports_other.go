//go:build !wasip1

package guest

func hostTransport(string, []byte) ([]byte, error) {
	return nil, ErrNotWasm
}
