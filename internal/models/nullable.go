package models

import "encoding/json"

// NullableString tells an absent JSON field apart from an explicit null.
// Set is only true when the key was present in the payload.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// NewNullableString returns a Set value holding s
func NewNullableString(s *string) NullableString {
	return NullableString{Set: true, Value: s}
}
