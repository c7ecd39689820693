// Package jsonio is the serialization bridge: the only conversion point
// between structured values and JSON text at a process boundary. The
// command dispatcher uses it for its stdin/stdout payloads and the darwin
// driver uses it for the osascript exchange; everything in between works
// on structured values.
package jsonio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ErrMalformedPayload is returned by Decode for text that is not valid
// JSON.
var ErrMalformedPayload = errors.New("malformed payload")

// ErrUnsupportedValue is returned by Encode for values outside the
// supported subset (string, number, boolean, sequence, string-keyed
// mapping), such as a live element handle or a channel.
var ErrUnsupportedValue = errors.New("unsupported value")

// Decode parses JSON text into a structured value. Objects decode to
// map[string]any, arrays to []any, numbers to float64.
func Decode(text []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	// Trailing garbage after the first value is malformed too.
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrMalformedPayload)
	}
	return v, nil
}

// DecodeInto parses JSON text directly into dst, for callers with a
// known payload shape.
func DecodeInto(text []byte, dst any) error {
	if err := json.Unmarshal(text, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

// Encode serializes a structured value to JSON text. Decode(Encode(v))
// reproduces v for the supported subset.
func Encode(v any) ([]byte, error) {
	if err := validate(reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// validate walks v and rejects kinds that have no JSON representation
// before any partial output is produced.
func validate(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Invalid:
		return nil // nil encodes as null
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := validate(v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: mapping keys must be strings, got %s", ErrUnsupportedValue, v.Type().Key())
		}
		iter := v.MapRange()
		for iter.Next() {
			if err := validate(iter.Value()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Type().Field(i)
			// Fields excluded from the JSON form never reach the encoder.
			if !f.IsExported() || f.Tag.Get("json") == "-" {
				continue
			}
			if err := validate(v.Field(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return validate(v.Elem())
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedValue, v.Kind())
	}
}
