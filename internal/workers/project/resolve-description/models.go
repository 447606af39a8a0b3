// internal/workers/project/resolve-description/models.go
package resolvedescription

import "project-analyzer/internal/models"

// Source tells where a resolved description came from.
type Source string

const (
	SourceRecord Source = "record"
	SourceCache  Source = "cache"
	SourceFetch  Source = "fetch"
	SourceNone   Source = "none"
)

type Input struct {
	Record models.ProjectRecord `json:"record"`
}

type Output struct {
	Description string `json:"descripcion"`
	Found       bool   `json:"found"`
	Source      Source `json:"source"`
	URL         string `json:"url,omitempty"`
	// FetchErrorCode is set when a fetch was attempted and failed.
	FetchErrorCode string `json:"fetchErrorCode,omitempty"`
}
