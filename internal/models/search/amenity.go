package search

import (
	"encoding/json"
	"errors"
	"slices"
)

var errAmenityShape = errors.New("amenity type must be a string or an array of strings")

// AmenityType is the amenity "type" field, which the upstream sends either as
// a single string or as an array of strings. The shape that arrived is kept
// and written back unchanged.
type AmenityType struct {
	values []string
	list   bool
}

func TextAmenityType(s string) AmenityType {
	return AmenityType{values: []string{s}}
}

func ListAmenityType(values ...string) AmenityType {
	if values == nil {
		values = []string{}
	}
	return AmenityType{values: values, list: true}
}

func (t AmenityType) IsList() bool {
	return t.list
}

// Text returns the value when the field arrived as a single string.
func (t AmenityType) Text() (string, bool) {
	if t.list || len(t.values) == 0 {
		return "", false
	}
	return t.values[0], true
}

// List returns the values when the field arrived as an array.
func (t AmenityType) List() ([]string, bool) {
	if !t.list {
		return nil, false
	}
	return t.values, true
}

// Values flattens either shape into a slice.
func (t AmenityType) Values() []string {
	return slices.Clone(t.values)
}

func (t AmenityType) MarshalJSON() ([]byte, error) {
	if t.list {
		if t.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(t.values)
	}
	s, _ := t.Text()
	return json.Marshal(s)
}

func (t *AmenityType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = TextAmenityType(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil || list == nil {
		return errAmenityShape
	}
	*t = ListAmenityType(list...)
	return nil
}

// AcceptShape reports whether a generic JSON value is a string or an array
// of strings.
func (AmenityType) AcceptShape(v any) bool {
	switch v := v.(type) {
	case string:
		return true
	case []any:
		for _, item := range v {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func (AmenityType) ExpectedShape() string {
	return "string or array of strings"
}
