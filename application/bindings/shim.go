package bindings

import (
	"fmt"
	"io"
	"os"

	"github.com/modelfusion/llamacpp-bindings/domain/entities"
	domainerrors "github.com/modelfusion/llamacpp-bindings/domain/errors"
	"github.com/modelfusion/llamacpp-bindings/domain/ports"
)

// Exported names as seen by the guest runtime.
const (
	TypeName          = "llamacppBindings"
	ExportConstructor = TypeName
	ExportGreet       = TypeName + ".greet"
	ExportSystemInfo  = "systemInfo"
)

// Shim performs the native side of every binding. It holds no per-instance
// state: bound objects live with the guest and come back as receivers.
type Shim struct {
	stdout io.Writer
	info   ports.SystemInfoProvider
}

// Option configures a Shim.
type Option func(*Shim)

// WithStdout redirects the diagnostic lines written by Greet.
// Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(s *Shim) {
		s.stdout = w
	}
}

// New creates a Shim reporting system information from info.
func New(info ports.SystemInfoProvider, opts ...Option) *Shim {
	s := &Shim{
		stdout: os.Stdout,
		info:   info,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Construct creates a bound object labelled with the text in args[0].
// On error no object is produced.
func (s *Shim) Construct(args entities.Args) (entities.BoundObject, error) {
	label, err := requireText(ExportConstructor, args, 0, domainerrors.MsgNameYourself)
	if err != nil {
		return entities.BoundObject{}, err
	}
	return entities.NewBoundObject(TypeName, label), nil
}

// Greet writes "Hello <args[0]>" and "I am <label>" to the shim's stdout
// and returns the receiver's label. The lines are diagnostics: write errors
// are ignored and never turn a valid call into a failure.
func (s *Shim) Greet(self entities.Value, args entities.Args) (string, error) {
	obj, err := requireReceiver(ExportGreet, self)
	if err != nil {
		return "", err
	}

	name, err := requireText(ExportGreet, args, 0, domainerrors.MsgIntroduceYourself)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(s.stdout, "Hello %s\n", name)
	fmt.Fprintf(s.stdout, "I am %s\n", obj.Label)

	return obj.Label, nil
}

// SystemInfo returns the inference library's system information report.
// Failures inside the library are not translated here.
func (s *Shim) SystemInfo() string {
	return s.info.SystemInfo()
}
