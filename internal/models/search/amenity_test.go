package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmenityType_Accessors(t *testing.T) {
	text := TextAmenityType("WIFI")
	assert.False(t, text.IsList())
	s, ok := text.Text()
	assert.True(t, ok)
	assert.Equal(t, "WIFI", s)
	_, ok = text.List()
	assert.False(t, ok)

	list := ListAmenityType("WIFI", "POWER")
	assert.True(t, list.IsList())
	_, ok = list.Text()
	assert.False(t, ok)
	values, ok := list.List()
	assert.True(t, ok)
	assert.Equal(t, []string{"WIFI", "POWER"}, values)

	flat := list.Values()
	flat[0] = "SEAT"
	assert.Equal(t, []string{"WIFI", "POWER"}, list.Values())
}

func TestAmenityType_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AmenityType
		wantErr bool
	}{
		{name: "text", input: `"WIFI"`, want: TextAmenityType("WIFI")},
		{name: "list", input: `["WIFI","POWER"]`, want: ListAmenityType("WIFI", "POWER")},
		{name: "empty list", input: `[]`, want: ListAmenityType()},
		{name: "number", input: `7`, wantErr: true},
		{name: "object", input: `{"type":"WIFI"}`, wantErr: true},
		{name: "list of numbers", input: `[1,2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AmenityType
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			out, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(out))
		})
	}
}

func TestAmenityType_AcceptShape(t *testing.T) {
	var a AmenityType
	assert.True(t, a.AcceptShape("WIFI"))
	assert.True(t, a.AcceptShape([]any{"WIFI", "POWER"}))
	assert.True(t, a.AcceptShape([]any{}))
	assert.False(t, a.AcceptShape([]any{"WIFI", nil}))
	assert.False(t, a.AcceptShape(map[string]any{}))
	assert.False(t, a.AcceptShape(nil))
	assert.False(t, a.AcceptShape(true))
}
