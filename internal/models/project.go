// internal/models/project.go
package models

// ProjectRecord is one normalized input entry. Absent fields stay nil so that
// "missing" and "present but empty" survive the trip to the output document.
type ProjectRecord struct {
	Name        *string `json:"nombre"`
	Location    *string `json:"ubicacion"`
	ActionURL   *string `json:"actionUrl,omitempty"`
	Description *string `json:"descripcion"`
}

// AnalyzedProject is the write-once classification result for one record.
type AnalyzedProject struct {
	Name               *string `json:"nombre"`
	Location           *string `json:"ubicacion"`
	URL                string  `json:"url"`
	IsRegenerative     bool    `json:"regenerativo"`
	IsBiomimetic       bool    `json:"biomimetico"`
	RegenerativeReason string  `json:"razon_regenerativo"`
	BiomimeticReason   string  `json:"razon_biomimetico"`
}

// HasDescription reports whether the record carries a non-empty description.
func (r ProjectRecord) HasDescription() bool {
	return r.Description != nil && *r.Description != ""
}

// DescriptionText returns the description or "" when absent.
func (r ProjectRecord) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// ActionPath returns the relative action URL or "" when absent.
func (r ProjectRecord) ActionPath() string {
	if r.ActionURL == nil {
		return ""
	}
	return *r.ActionURL
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}
