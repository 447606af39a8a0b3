// internal/workers/project/normalize-records/models.go
package normalizerecords

import "project-analyzer/internal/models"

// Input names the source. Data, when non-nil, is used instead of reading
// Path; Format, when set, overrides detection from Path.
type Input struct {
	Path   string
	Data   []byte
	Format InputFormat
}

type Output struct {
	Records []models.ProjectRecord `json:"records"`
	Format  InputFormat            `json:"format"`
	// Shape refines FormatStructured into "array" or "wrapped".
	Shape string `json:"shape,omitempty"`
	// Skipped counts free-text blocks dropped for having too few lines.
	Skipped int `json:"skipped"`
}
