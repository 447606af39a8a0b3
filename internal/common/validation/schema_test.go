package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(src), &v))
	return v
}

func TestValidateRecordArray(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantField string
	}{
		{
			name:      "well shaped",
			input:     `[{"nombre":"Proyecto A","ubicacion":"Madrid","descripcion":"ciclo cerrado"}]`,
			wantValid: true,
		},
		{
			name:      "nulls allowed",
			input:     `[{"nombre":null,"actionUrl":null}]`,
			wantValid: true,
		},
		{
			name:      "empty object allowed",
			input:     `[{}]`,
			wantValid: true,
		},
		{
			name:      "english field names rejected",
			input:     `[{"nombre":"A"},{"name":"B","description":"x"}]`,
			wantValid: false,
			wantField: "1",
		},
		{
			name:      "wrong type",
			input:     `[{"nombre":42}]`,
			wantValid: false,
			wantField: "0.nombre",
		},
		{
			name:      "not an array",
			input:     `{"nombre":"A"}`,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateRecordArray(decode(t, tt.input))
			assert.Equal(t, tt.wantValid, res.Valid, "errors: %v", res.GetErrorMessages())
			if tt.wantField != "" {
				assert.True(t, res.HasErrors(tt.wantField), "errors: %v", res.GetErrorMessages())
			}
		})
	}
}

func TestValidateWrappedDocument(t *testing.T) {
	assert.True(t, ValidateWrappedDocument(decode(t, `{"data":[{"title":"A","labels":[{"icon":"x","text":"y"}]}]}`)).Valid)
	assert.True(t, ValidateWrappedDocument(decode(t, `{"data":[]}`)).Valid)
	assert.True(t, ValidateWrappedDocument(decode(t, `{"data":[{"title":42,"labels":"x"}]}`)).Valid)
	assert.False(t, ValidateWrappedDocument(decode(t, `{"data":"nope"}`)).Valid)
	assert.False(t, ValidateWrappedDocument(decode(t, `{"data":[1,2]}`)).Valid)
	assert.False(t, ValidateWrappedDocument(decode(t, `{"items":[]}`)).Valid)
}

func TestGetErrorsForField(t *testing.T) {
	vr := &ValidationResult{Errors: []ValidationError{
		{Field: "0.nombre", Message: "bad"},
		{Field: "1", Message: "extra"},
	}}
	assert.Len(t, vr.GetErrorsForField("0"), 1)
	assert.Equal(t, []string{"0.nombre: bad", "1: extra"}, vr.GetErrorMessages())
}
