package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// RecordArraySchema describes a JSON input that is already shaped as project
// records. Unknown keys are rejected so a mis-shaped export fails loudly
// instead of producing empty rows.
const RecordArraySchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "nombre":      {"type": ["string", "null"]},
      "ubicacion":   {"type": ["string", "null"]},
      "actionUrl":   {"type": ["string", "null"]},
      "descripcion": {"type": ["string", "null"]}
    },
    "additionalProperties": false
  }
}`

// WrappedDocumentSchema describes the {"data": [...]} listing export. Only the
// structure is checked: items must be objects. Their fields are read
// leniently by the normalizer.
const WrappedDocumentSchema = `{
  "type": "object",
  "required": ["data"],
  "properties": {
    "data": {
      "type": "array",
      "items": {"type": "object"}
    }
  }
}`

var (
	recordArraySchema     = mustSchema(RecordArraySchema)
	wrappedDocumentSchema = mustSchema(WrappedDocumentSchema)
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return schema
}

// ValidateRecordArray checks a decoded JSON value against RecordArraySchema.
func ValidateRecordArray(doc interface{}) *ValidationResult {
	return validate(recordArraySchema, doc)
}

// ValidateWrappedDocument checks a decoded JSON value against
// WrappedDocumentSchema.
func ValidateWrappedDocument(doc interface{}) *ValidationResult {
	return validate(wrappedDocumentSchema, doc)
}

func validate(schema *gojsonschema.Schema, doc interface{}) *ValidationResult {
	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: err.Error(),
				Code:    "SCHEMA_LOAD_FAILED",
			}},
		}
	}

	errors := make([]ValidationError, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		errors = append(errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}

	return &ValidationResult{
		Valid:  res.Valid(),
		Errors: errors,
	}
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}
