package dto

import "encoding/json"

// Optional distinguishes a field that was absent from the request body from
// one that was explicitly sent as null. Absent fields leave the stored value
// unchanged; null clears it.
type Optional[T any] struct {
	Present bool
	Valid   bool
	Value   T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr returns the value as a pointer, nil when the field was null or absent.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
