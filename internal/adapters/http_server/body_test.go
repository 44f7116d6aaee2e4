package httpserver

import (
	"encoding/json"
	"testing"
)

func TestJSONFields_Text(t *testing.T) {
	var f jsonFields
	if err := json.Unmarshal([]byte(`{"s":"Rome","e":"","z":0,"n":12,"t":true,"f":false,"nil":null,"o":{"a":1}}`), &f); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		key  string
		want *string
	}{
		{"s", ptr("Rome")},
		{"e", ptr("")},
		{"n", ptr("12")},
		{"t", ptr("true")},
		{"z", nil},
		{"f", nil},
		{"nil", nil},
		{"o", nil},
		{"missing", nil},
	}
	for _, tt := range tests {
		got := f.text(tt.key)
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("text(%q) = %v, want %v", tt.key, deref(got), deref(tt.want))
		}
	}
}

func TestJSONFields_Number(t *testing.T) {
	var f jsonFields
	if err := json.Unmarshal([]byte(`{"n":3,"f":3.0,"s":"4","half":1.5,"word":"x","b":true}`), &f); err != nil {
		t.Fatal(err)
	}
	for key, want := range map[string]int64{"n": 3, "f": 3, "s": 4} {
		if got := f.number(key); got == nil || *got != want {
			t.Errorf("number(%q) = %v, want %d", key, got, want)
		}
	}
	for _, key := range []string{"half", "word", "b", "missing"} {
		if got := f.number(key); got != nil {
			t.Errorf("number(%q) = %d, want nil", key, *got)
		}
	}
}

func ptr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
