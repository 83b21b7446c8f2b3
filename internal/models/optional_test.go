package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestOptionalUUIDUnmarshal(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValid bool
	}{
		{"absent field", `{}`, false, false},
		{"explicit null", `{"table":null}`, true, false},
		{"empty string", `{"table":""}`, true, false},
		{"value", `{"table":"` + id.String() + `"}`, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req OrderUpdateRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}

			if req.Table.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", req.Table.Set, tt.wantSet)
			}
			if req.Table.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", req.Table.Valid, tt.wantValid)
			}
			if tt.wantValid && req.Table.UUID != id {
				t.Errorf("UUID = %s, want %s", req.Table.UUID, id)
			}
			if !tt.wantValid && req.Table.Ptr() != nil {
				t.Error("Ptr() should be nil for unset or null values")
			}
		})
	}
}

func TestOptionalUUIDUnmarshalRejectsGarbage(t *testing.T) {
	var req OrderUpdateRequest
	if err := json.Unmarshal([]byte(`{"table":"not-a-uuid"}`), &req); err == nil {
		t.Error("expected error for malformed UUID")
	}
}
