package mapper

import (
	"encoding/json"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// shaper is implemented by wire types whose JSON shape cannot be described
// by their Go kind, such as fields that arrive either as a string or as a
// list.
type shaper interface {
	AcceptShape(v any) bool
	ExpectedShape() string
}

var (
	shaperType      = reflect.TypeFor[shaper]()
	unmarshalerType = reflect.TypeFor[json.Unmarshaler]()
)

type field struct {
	index    int
	name     string
	optional bool
}

var fieldCache sync.Map // reflect.Type -> []field

// fieldsOf reads the rename table for a struct type from its json tags.
func fieldsOf(t reflect.Type) []field {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]field)
	}

	var fields []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}
		optional := false
		for _, opt := range strings.Split(opts, ",") {
			if opt == "omitzero" || opt == "omitempty" {
				optional = true
			}
		}
		fields = append(fields, field{index: i, name: name, optional: optional})
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]field)
}

// check walks a generic JSON tree (decoded with UseNumber) against t.
// Object keys that name no field of the struct they sit in are deleted from
// the tree, so the tree left behind holds only exact wire names.
func check(t reflect.Type, v any, path string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface {
		return nil
	}
	if t.Implements(shaperType) {
		s := reflect.Zero(t).Interface().(shaper)
		if v == nil || !s.AcceptShape(v) {
			return mismatch(path, s.ExpectedShape(), v)
		}
		return nil
	}
	if v == nil {
		return mismatch(path, describeType(t), v)
	}
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, "object", v)
		}
		fields := fieldsOf(t)
		for key := range obj {
			if !slices.ContainsFunc(fields, func(f field) bool { return f.name == key }) {
				delete(obj, key)
			}
		}
		for _, f := range fields {
			raw, present := obj[f.name]
			if !present || raw == nil {
				if f.optional {
					continue
				}
				actual := "missing"
				if present {
					actual = "null"
				}
				return &SchemaError{
					Path:     join(path, f.name),
					Expected: describeType(t.Field(f.index).Type),
					Actual:   actual,
				}
			}
			if err := check(t.Field(f.index).Type, raw, join(path, f.name)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Slice, reflect.Array:
		arr, ok := v.([]any)
		if !ok {
			return mismatch(path, "array", v)
		}
		for i, item := range arr {
			if err := check(t.Elem(), item, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, "object", v)
		}
		for _, key := range slices.Sorted(maps.Keys(obj)) {
			if err := check(t.Elem(), obj[key], join(path, key)); err != nil {
				return err
			}
		}
		return nil

	case reflect.String:
		if _, ok := v.(string); !ok {
			return mismatch(path, "string", v)
		}
		return nil

	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			return mismatch(path, "boolean", v)
		}
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(path, describeType(t), v)
		}
		if _, err := strconv.ParseInt(n.String(), 10, t.Bits()); err != nil {
			return &SchemaError{Path: path, Expected: describeType(t), Actual: "number " + n.String()}
		}
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(path, describeType(t), v)
		}
		if _, err := strconv.ParseUint(n.String(), 10, t.Bits()); err != nil {
			return &SchemaError{Path: path, Expected: describeType(t), Actual: "number " + n.String()}
		}
		return nil

	case reflect.Float32, reflect.Float64:
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(path, "number", v)
		}
		if _, err := strconv.ParseFloat(n.String(), t.Bits()); err != nil {
			return &SchemaError{Path: path, Expected: "number", Actual: "number " + n.String()}
		}
		return nil
	}

	return &SchemaError{Path: path, Expected: t.String(), Actual: describeValue(v)}
}

func mismatch(path, expected string, v any) *SchemaError {
	return &SchemaError{Path: path, Expected: expected, Actual: describeValue(v)}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Implements(shaperType) {
		return reflect.Zero(t).Interface().(shaper).ExpectedShape()
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.Itoa(t.Bits()) + "-bit integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Interface:
		return "any value"
	}
	return t.String()
}

func describeValue(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	}
	return reflect.TypeOf(v).String()
}
