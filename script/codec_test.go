package script

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want any
	}{
		{"object", `{"path": "a.txt"}`, map[string]any{"path": "a.txt"}},
		{"array", `[1, "x"]`, []any{float64(1), "x"}},
		{"string", `"hi"`, "hi"},
		{"number", `2.5`, 2.5},
		{"bool", `true`, true},
		{"null", `null`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePayload(tt.doc)
			if err != nil {
				t.Fatalf("DecodePayload(%q) error = %v", tt.doc, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodePayload(%q) = %v (%T), want %v (%T)", tt.doc, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestDecodePayloadInvalid(t *testing.T) {
	for _, doc := range []string{"{broken", "", "{'single': 1}"} {
		if _, err := DecodePayload(doc); !errors.Is(err, ErrInvalidJSON) {
			t.Errorf("DecodePayload(%q) error = %v, want ErrInvalidJSON", doc, err)
		}
	}
}

func TestEncodePayload(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"string", "hi", `"hi"`},
		{"int", int64(3), "3"},
		{"float", 2.5, "2.5"},
		{"bool", true, "true"},
		{"error", errors.New("boom"), `"boom"`},
		{"empty map", map[string]any{}, "{}"},
		{"empty slice", []any{}, "[]"},
		{"slice", []any{int64(1), "x", nil}, `[1,"x",null]`},
		{
			"nested",
			map[string]any{"b": int64(1), "a": []any{true}},
			`{"a":[true],"b":1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodePayload(tt.in)
			if err != nil {
				t.Fatalf("EncodePayload(%v) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("EncodePayload(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodePayloadSortedKeys(t *testing.T) {
	in := map[string]any{"c": int64(3), "a": int64(1), "b": int64(2)}
	got, err := EncodePayload(in)
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}
	if want := `{"a":1,"b":2,"c":3}`; got != want {
		t.Errorf("EncodePayload() = %s, want %s", got, want)
	}
}

func TestEncodePayloadPathKeys(t *testing.T) {
	in := map[string]any{"cursor.moved": true, "a*b": "x"}
	doc, err := EncodePayload(in)
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}

	back, err := DecodePayload(doc)
	if err != nil {
		t.Fatalf("DecodePayload(%s) error = %v", doc, err)
	}
	if !reflect.DeepEqual(back, in) {
		t.Errorf("round trip = %v, want %v", back, in)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := map[string]any{
		"path": "a.txt",
		"tags": []any{"draft", "todo"},
		"meta": map[string]any{"saved": false},
	}
	doc, err := EncodePayload(in)
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}
	back, err := DecodePayload(doc)
	if err != nil {
		t.Fatalf("DecodePayload() error = %v", err)
	}
	if !reflect.DeepEqual(back, in) {
		t.Errorf("round trip = %v, want %v", back, in)
	}
}
