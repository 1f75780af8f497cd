package valueobjects

import (
	"encoding/json"
	"testing"
)

func TestField_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Email Field[string] `json:"email"`
	}

	t.Run("campo ausente", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
			t.Fatal(err)
		}
		if p.Email.IsPresent() {
			t.Error("campo ausente não deveria estar presente")
		}
	})

	t.Run("campo nulo", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"email": null}`), &p); err != nil {
			t.Fatal(err)
		}
		if !p.Email.IsNull() {
			t.Error("esperava campo nulo")
		}
		if p.Email.Ptr() != nil {
			t.Error("ponteiro de campo nulo deveria ser nil")
		}
	})

	t.Run("campo com valor", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"email": "a@b.com"}`), &p); err != nil {
			t.Fatal(err)
		}
		v, ok := p.Email.Get()
		if !ok || v != "a@b.com" {
			t.Errorf("esperava 'a@b.com', obteve %q (ok=%v)", v, ok)
		}
	})
}
