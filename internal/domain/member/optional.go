package member

import (
	"encoding/json"
	"time"
)

// OptionalString is a JSON field that remembers whether it appeared in the
// request body. Absent leaves Set false; an explicit null sets Set with a
// nil Value; a string sets both.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	o.Value = &value
	return nil
}

// OptionalDate is the date-valued counterpart of OptionalString.
type OptionalDate struct {
	Set   bool
	Value *time.Time
}
