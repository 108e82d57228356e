package entities

import "encoding/json"

// BoundObject is the state of one instance of an exported type as held by
// the guest runtime. The guest owns it: the constructor hands it out and the
// guest passes it back as the receiver of every method call.
type BoundObject struct {
	// Type is the exported type name the object was constructed from.
	Type string `json:"$type"`

	// Label is the text captured at construction. It never changes.
	Label string `json:"label"`
}

// NewBoundObject creates the state for a freshly constructed instance.
func NewBoundObject(typeName, label string) BoundObject {
	return BoundObject{Type: typeName, Label: label}
}

// BoundObjectFrom decodes a receiver value. The boolean is false if v is not
// an object of the given type carrying a text label.
func BoundObjectFrom(v Value, typeName string) (BoundObject, bool) {
	if v.Kind() != KindObject {
		return BoundObject{}, false
	}
	var raw struct {
		Type  string  `json:"$type"`
		Label *string `json:"label"`
	}
	if err := json.Unmarshal(v, &raw); err != nil {
		return BoundObject{}, false
	}
	if raw.Type != typeName || raw.Label == nil {
		return BoundObject{}, false
	}
	return BoundObject{Type: raw.Type, Label: *raw.Label}, true
}
