package jsonio

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecode_Object(t *testing.T) {
	v, err := Decode([]byte(`{"choice": "Apply", "count": 2}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", v)
	}
	if m["choice"] != "Apply" || m["count"] != float64(2) {
		t.Errorf("unexpected value: %v", m)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, text := range []string{``, `{`, `{"a":}`, `not json`} {
		if _, err := Decode([]byte(text)); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("Decode(%q): expected ErrMalformedPayload, got %v", text, err)
		}
	}
}

func TestDecode_TrailingData(t *testing.T) {
	if _, err := Decode([]byte(`{"a":1} {"b":2}`)); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload for trailing data, got %v", err)
	}
}

func TestDecodeInto_KnownShape(t *testing.T) {
	var dst struct {
		UDIDs []string `json:"udids"`
	}
	if err := DecodeInto([]byte(`{"udids":["a","b"]}`), &dst); err != nil {
		t.Fatalf("DecodeInto: %v", err)
	}
	if len(dst.UDIDs) != 2 || dst.UDIDs[0] != "a" {
		t.Errorf("unexpected decode result: %v", dst.UDIDs)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	in := map[string]any{
		"busy":     false,
		"activity": []any{"Step 2 of 7"},
		"count":    float64(3),
	}
	text, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %v\nout: %v", in, out)
	}
}

func TestEncode_NoTrailingNewline(t *testing.T) {
	text, err := Encode(map[string]string{"a": "b"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(text) == 0 || text[len(text)-1] == '\n' {
		t.Errorf("expected trimmed output, got %q", text)
	}
}

func TestEncode_HTMLNotEscaped(t *testing.T) {
	text, err := Encode(map[string]string{"title": "a<b>&c"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(text) != `{"title":"a<b>&c"}` {
		t.Errorf("expected raw HTML characters, got %s", text)
	}
}

func TestEncode_UnsupportedValues(t *testing.T) {
	cases := map[string]any{
		"channel":        make(chan int),
		"function":       func() {},
		"nested channel": map[string]any{"ok": true, "bad": make(chan int)},
		"int keys":       map[int]string{1: "a"},
	}
	for name, v := range cases {
		if _, err := Encode(v); !errors.Is(err, ErrUnsupportedValue) {
			t.Errorf("%s: expected ErrUnsupportedValue, got %v", name, err)
		}
	}
}

func TestEncode_StructWithTags(t *testing.T) {
	in := struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}{Message: "device window not found", Code: 12}
	text, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(text) != `{"message":"device window not found","code":12}` {
		t.Errorf("unexpected encoding: %s", text)
	}
}

func TestEncode_SkipsExcludedFields(t *testing.T) {
	in := struct {
		Name   string   `json:"name"`
		Handle chan int `json:"-"`
	}{Name: "iPad A", Handle: make(chan int)}
	text, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(text) != `{"name":"iPad A"}` {
		t.Errorf("unexpected encoding: %s", text)
	}
}

func TestEncode_Nil(t *testing.T) {
	text, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil): %v", err)
	}
	if string(text) != "null" {
		t.Errorf("expected null, got %s", text)
	}
}
