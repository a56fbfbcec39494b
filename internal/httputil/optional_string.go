package httputil

import (
	"encoding/json"
	"strings"
)

// OptionalString is a PATCH field that distinguishes "absent" from "null".
// Absent leaves the stored value alone; null or "" clears it.
type OptionalString struct {
	Present bool
	Value   *string
}

// Set returns a present OptionalString holding s
func Set(s string) OptionalString {
	return OptionalString{Present: true, Value: &s}
}

// UnmarshalJSON is only called when the key exists in the body
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	o.Value = nil
	if strings.TrimSpace(string(data)) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// MarshalJSON writes null for absent or cleared values
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// Apply returns the field's effect on current: current itself when absent,
// nil when cleared, else a trimmed copy of the new value.
func (o OptionalString) Apply(current *string) *string {
	if !o.Present {
		return current
	}
	if o.Value == nil {
		return nil
	}
	v := strings.TrimSpace(*o.Value)
	if v == "" {
		return nil
	}
	return &v
}
