// internal/workers/project/normalize-records/structured.go
package normalizerecords

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "project-analyzer/internal/common/errors"
	"project-analyzer/internal/common/validation"
	"project-analyzer/internal/models"
)

const (
	shapeArray   = "array"
	shapeWrapped = "wrapped"
)

// wrappedDocument is the listing export: {"data": [item, ...]}.
type wrappedDocument struct {
	Data []wrappedItem `json:"data"`
}

// Item fields are read leniently: a value of the wrong JSON type counts as
// absent instead of failing the whole document.
type wrappedItem struct {
	Title       lenientString `json:"title"`
	Nombre      lenientString `json:"nombre"`
	Labels      lenientLabels `json:"labels"`
	ActionURL   lenientString `json:"actionUrl"`
	Descripcion lenientString `json:"descripcion"`
}

type wrappedLabel struct {
	Icon lenientString `json:"icon"`
	Text lenientString `json:"text"`
}

// lenientString holds a JSON string, or nil for null and non-string values.
type lenientString struct {
	v *string
}

func (l *lenientString) UnmarshalJSON(data []byte) error {
	l.v = nil
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.v = &s
	}
	return nil
}

// lenientLabels holds the labels array. A non-array value means no labels;
// a non-object entry is kept as a label without icon or text.
type lenientLabels []wrappedLabel

func (l *lenientLabels) UnmarshalJSON(data []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	labels := make([]wrappedLabel, len(raw))
	for i, r := range raw {
		if err := json.Unmarshal(r, &labels[i]); err != nil {
			labels[i] = wrappedLabel{}
		}
	}
	*l = labels
	return nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// structuredShape picks the JSON variant from the first significant byte, so
// the document is decoded straight into the matching typed form.
func structuredShape(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(trimmed) == 0 {
		return "", apperrors.NewInputDecodeFailedError(string(FormatStructured), fmt.Errorf("empty document"))
	}
	switch trimmed[0] {
	case '[':
		return shapeArray, nil
	case '{':
		return shapeWrapped, nil
	}
	return "", apperrors.NewRecordValidationFailedError("top-level JSON value must be an array of records or an object with a \"data\" array")
}

func (h *Handler) normalizeStructured(data []byte) ([]models.ProjectRecord, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	shape, err := structuredShape(data)
	if err != nil {
		return nil, "", err
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, "", apperrors.NewInputDecodeFailedError(string(FormatStructured), err)
	}

	switch shape {
	case shapeArray:
		records, err := h.normalizeRecordArray(data, generic)
		return records, shape, err
	default:
		records, err := h.normalizeWrapped(data, generic)
		return records, shape, err
	}
}

// normalizeRecordArray accepts records that already use the project field
// names, and rejects anything else instead of guessing.
func (h *Handler) normalizeRecordArray(data []byte, generic interface{}) ([]models.ProjectRecord, error) {
	if res := validation.ValidateRecordArray(generic); !res.Valid {
		return nil, apperrors.NewRecordValidationFailedError(strings.Join(res.GetErrorMessages(), "; "))
	}

	var records []models.ProjectRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperrors.NewInputDecodeFailedError(string(FormatStructured), err)
	}
	if records == nil {
		records = []models.ProjectRecord{}
	}
	return records, nil
}

func (h *Handler) normalizeWrapped(data []byte, generic interface{}) ([]models.ProjectRecord, error) {
	if res := validation.ValidateWrappedDocument(generic); !res.Valid {
		return nil, apperrors.NewRecordValidationFailedError(strings.Join(res.GetErrorMessages(), "; "))
	}

	var doc wrappedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewInputDecodeFailedError(string(FormatStructured), err)
	}

	records := make([]models.ProjectRecord, 0, len(doc.Data))
	for _, item := range doc.Data {
		records = append(records, models.ProjectRecord{
			Name:        itemName(item),
			Location:    h.itemLocation(item.Labels),
			ActionURL:   item.ActionURL.v,
			Description: item.Descripcion.v,
		})
	}
	return records, nil
}

// itemName prefers a non-empty title and falls back to nombre.
func itemName(item wrappedItem) *string {
	if item.Title.v != nil && *item.Title.v != "" {
		return item.Title.v
	}
	return item.Nombre.v
}

// itemLocation takes the text of the first label carrying the location icon,
// falling back to the first label when that yields nothing.
func (h *Handler) itemLocation(labels []wrappedLabel) *string {
	var location *string
	for _, lab := range labels {
		if lab.Icon.v != nil && *lab.Icon.v == h.config.LocationIcon {
			location = lab.Text.v
			break
		}
	}
	if (location == nil || *location == "") && len(labels) > 0 {
		location = labels[0].Text.v
	}
	return location
}
