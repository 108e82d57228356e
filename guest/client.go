package guest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelfusion/llamacpp-bindings/application/bindings"
	"github.com/modelfusion/llamacpp-bindings/domain/entities"
)

// ErrNotWasm is returned when the host imports are unavailable.
var ErrNotWasm = errors.New("guest: llamacpp host imports require GOOS=wasip1")

// Transport delivers one encoded invocation to the named export and returns
// the encoded result.
type Transport func(export string, request []byte) ([]byte, error)

// Client calls the bindings through a Transport.
type Client struct {
	transport Transport
}

// NewClient creates a Client over t.
func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

var defaultClient = NewClient(hostTransport)

// Greeter is a bound llamacppBindings object. Its state lives here, in the
// guest, and travels with every method call.
type Greeter struct {
	client *Client
	self   entities.BoundObject
}

// Label is the name the greeter was constructed with.
func (g *Greeter) Label() string {
	return g.self.Label
}

// NewGreeter constructs a greeter named name using the host imports.
func NewGreeter(name any) (*Greeter, error) {
	return defaultClient.NewGreeter(name)
}

// SystemInfo returns the host's inference library system information.
func SystemInfo() (string, error) {
	return defaultClient.SystemInfo()
}

// NewGreeter invokes the llamacppBindings constructor.
func (c *Client) NewGreeter(name any) (*Greeter, error) {
	var self entities.BoundObject
	if err := c.call(bindings.ExportConstructor, nil, &self, name); err != nil {
		return nil, err
	}
	return &Greeter{client: c, self: self}, nil
}

// Greet invokes llamacppBindings.greet with g as receiver and returns the
// label echoed by the host.
func (g *Greeter) Greet(name any) (string, error) {
	var label string
	if err := g.client.call(bindings.ExportGreet, &g.self, &label, name); err != nil {
		return "", err
	}
	return label, nil
}

// SystemInfo invokes the systemInfo function.
func (c *Client) SystemInfo() (string, error) {
	var info string
	if err := c.call(bindings.ExportSystemInfo, nil, &info); err != nil {
		return "", err
	}
	return info, nil
}

func (c *Client) call(export string, self *entities.BoundObject, dst any, args ...any) error {
	inv, err := entities.NewInvocation(self, args...)
	if err != nil {
		return fmt.Errorf("guest: %s: %w", export, err)
	}
	request, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("guest: %s: failed to marshal invocation: %w", export, err)
	}

	response, err := c.transport(export, request)
	if err != nil {
		return err
	}
	if len(response) == 0 {
		return fmt.Errorf("guest: %s: host returned no response", export)
	}

	var result entities.Result
	if err := json.Unmarshal(response, &result); err != nil {
		return fmt.Errorf("guest: %s: failed to unmarshal result: %w", export, err)
	}
	return result.Decode(dst)
}
