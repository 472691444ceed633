package dialog

import (
	"encoding/json"
	"testing"
)

func TestGetString(t *testing.T) {
	p := Payload{"name": "Maths", "n": 3}

	if s, ok := GetString(p, "name"); !ok || s != "Maths" {
		t.Errorf("GetString(name) = %q, %v", s, ok)
	}
	if _, ok := GetString(p, "n"); ok {
		t.Error("GetString must reject non-string values")
	}
	if _, ok := GetString(p, "missing"); ok {
		t.Error("GetString must report missing keys")
	}
}

func TestGetInt_AfterJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(Payload{"lab_present": 3, "name": "Maths"})
	if err != nil {
		t.Fatal(err)
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatal(err)
	}

	if n, ok := GetInt(p, "lab_present"); !ok || n != 3 {
		t.Errorf("GetInt(lab_present) = %d, %v, want 3, true", n, ok)
	}
	if _, ok := GetInt(p, "name"); ok {
		t.Error("GetInt must reject strings")
	}
	if _, ok := GetInt(p, "missing"); ok {
		t.Error("GetInt must report missing keys")
	}
}
