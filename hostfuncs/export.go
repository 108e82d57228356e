package hostfuncs

// ExportKind tells the guest how an export is meant to be called.
type ExportKind string

const (
	// KindConstructor creates a bound object and returns its state.
	KindConstructor ExportKind = "constructor"

	// KindMethod takes a bound object as receiver.
	KindMethod ExportKind = "method"

	// KindFunction is a free function.
	KindFunction ExportKind = "function"
)

// Export describes one binding exposed to the guest runtime.
type Export struct {
	// Handler performs the call. Required.
	Handler ByteHandler `json:"-"`

	// Name is the exported symbol, e.g. "llamacppBindings.greet".
	Name string `json:"name"`

	// Kind is constructor, method or function.
	Kind ExportKind `json:"kind"`

	// Type is the owning type name for constructors and methods.
	Type string `json:"type,omitempty"`

	// Params lists the expected argument kinds in order.
	Params []string `json:"params"`

	// Returns is the kind of the returned value.
	Returns string `json:"returns"`
}
