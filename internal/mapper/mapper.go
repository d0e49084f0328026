// Package mapper converts between upstream JSON payloads and the typed
// records in internal/models.
//
// Struct tags are the rename table: the tag name is the wire key and the
// omitzero option marks a field optional. Every other field must be present
// and non-null. Unknown keys are ignored. Decoding either returns a complete
// value or fails with *SyntaxError or *SchemaError; nothing partial escapes.
//
// The package keeps no mutable state and is safe for concurrent use.
package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"

	"github.com/bxxf/flight-schema/internal/models/extras"
	"github.com/bxxf/flight-schema/internal/models/search"
)

// Decode parses data into a new T.
func Decode[T any](data []byte) (T, error) {
	var out T

	tree, err := parse(data)
	if err != nil {
		return out, err
	}
	if err := check(reflect.TypeOf(&out).Elem(), tree, ""); err != nil {
		return out, err
	}

	// Decode from the checked tree only; encoding/json matches keys
	// case-insensitively.
	pruned, err := json.Marshal(tree)
	if err != nil {
		return out, &SchemaError{Expected: "decodable value", Actual: err.Error()}
	}
	var decoded T
	if err := json.Unmarshal(pruned, &decoded); err != nil {
		return out, &SchemaError{Expected: "decodable value", Actual: err.Error()}
	}
	return decoded, nil
}

// Encode writes v using its wire names. Optional fields that are unset are
// left out; required fields are always written. The output is checked
// against the shape of v's type, so anything Encode returns decodes back.
func Encode(v any) ([]byte, error) {
	if v == nil {
		return nil, &SchemaError{Expected: "object", Actual: "null"}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &SchemaError{Expected: "encodable value", Actual: err.Error()}
	}

	tree, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := check(reflect.TypeOf(v), tree, ""); err != nil {
		return nil, err
	}
	return data, nil
}

func DecodeSearch(data []byte) (*search.Response, error) {
	resp, err := Decode[search.Response](data)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func DecodeExtras(data []byte) (*extras.Extras, error) {
	ex, err := Decode[extras.Extras](data)
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

func EncodeExtras(ex *extras.Extras) ([]byte, error) {
	if ex == nil {
		return nil, &SchemaError{Expected: "object", Actual: "null"}
	}
	return Encode(ex)
}

// parse reads exactly one JSON value, keeping numbers as json.Number so
// integer width can be checked later.
func parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fromSyntax(err, dec.InputOffset())
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &SyntaxError{Offset: dec.InputOffset(), Msg: "unexpected data after top-level value"}
	}
	return tree, nil
}

func fromSyntax(err error, offset int64) error {
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		return &SyntaxError{Offset: syntaxErr.Offset, Msg: syntaxErr.Error()}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &SyntaxError{Offset: offset, Msg: "unexpected end of JSON input"}
	}
	return &SyntaxError{Offset: offset, Msg: err.Error()}
}
