// pkg/registry/schema.go
package registry

// KeywordSet names one of the two classification categories.
type KeywordSet string

const (
	Regenerative KeywordSet = "regenerative"
	Biomimetic   KeywordSet = "biomimetic"
)

// KeywordFile is the on-disk form of a registry override.
type KeywordFile struct {
	Version      string   `json:"version"`
	LastUpdated  string   `json:"lastUpdated,omitempty"`
	Regenerative []string `json:"regenerative"`
	Biomimetic   []string `json:"biomimetic"`
}

// MatchResult lists the keywords of one set found in a text, in registry
// definition order.
type MatchResult struct {
	Found   bool
	Matched []string
}

// Spanish regenerative-design terms. Accented and unaccented spellings are
// both listed because matching is a plain substring test.
var defaultRegenerative = []string{
	"regeneracion",
	"regeneración",
	"ciclo cerrado",
	"restauracion ecologica",
	"restauración ecológica",
	"biodiversidad",
	"mejora del habitat",
	"mejora del hábitat",
	"recuperacion de recursos",
	"recuperación de recursos",
	"soluciones basadas en la naturaleza",
	"sbn",
	"nbs",
	"ciclos cerrados",
	"cierre de ciclos",
	"integracion con comunidades",
	"integración con comunidades",
}

// Spanish biomimicry terms.
var defaultBiomimetic = []string{
	"inspirado en la naturaleza",
	"ventilacion pasiva",
	"ventilación pasiva",
	"estructura alveolar",
	"eficiencia energetica natural",
	"eficiencia energética natural",
	"alas",
	"panales",
	"enfriamiento por evaporacion",
	"enfriamiento por evaporación",
	"estructura adaptativa",
	"resiliente",
	"organismos vivos",
}
