// Package schema describes the exported bindings and generates JSON schemas
// for the wire envelopes.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/modelfusion/llamacpp-bindings/domain/entities"
	"github.com/modelfusion/llamacpp-bindings/hostfuncs"
)

var valueType = reflect.TypeOf(entities.Value(nil))

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
// Guest values (entities.Value) are unconstrained.
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == valueType {
				return &jsonschema.Schema{}
			}
			return nil
		},
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// Description is what a guest toolchain needs to bind to a host module.
type Description struct {
	Module           string             `json:"module"`
	Exports          []hostfuncs.Export `json:"exports"`
	InvocationSchema json.RawMessage    `json:"invocation_schema"`
	ResultSchema     json.RawMessage    `json:"result_schema"`
}

// Describe lists the exports of reg as served under module.
func Describe(module string, reg *hostfuncs.HandlerRegistry) (Description, error) {
	inv, err := GenerateSchema(&entities.Invocation{})
	if err != nil {
		return Description{}, fmt.Errorf("invocation schema: %w", err)
	}
	res, err := GenerateSchema(&entities.Result{})
	if err != nil {
		return Description{}, fmt.Errorf("result schema: %w", err)
	}

	return Description{
		Module:           module,
		Exports:          reg.Exports(),
		InvocationSchema: inv,
		ResultSchema:     res,
	}, nil
}
