// internal/workers/project/classify-description/models.go
package classifydescription

type Input struct {
	Description string `json:"descripcion"`
}

// Output carries one verdict and one human-readable reason per category.
type Output struct {
	IsRegenerative     bool     `json:"regenerativo"`
	IsBiomimetic       bool     `json:"biomimetico"`
	RegenerativeReason string   `json:"razon_regenerativo"`
	BiomimeticReason   string   `json:"razon_biomimetico"`
	RegenerativeTerms  []string `json:"-"`
	BiomimeticTerms    []string `json:"-"`
}
