package models

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// OptionalUUID is a UUID field that tracks whether it appeared in the request
// body at all. Set reports presence; Valid reports a non-null value. An
// explicit JSON null (or empty string) yields Set=true, Valid=false, which
// callers treat as "clear the reference".
type OptionalUUID struct {
	UUID  uuid.UUID
	Set   bool
	Valid bool
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.UUID); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o OptionalUUID) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.UUID)
}

// Ptr returns the value as a nullable pointer, nil when unset or null.
func (o OptionalUUID) Ptr() *uuid.UUID {
	if !o.Valid {
		return nil
	}
	id := o.UUID
	return &id
}
