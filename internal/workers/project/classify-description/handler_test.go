// internal/workers/project/classify-description/handler_test.go
package classifydescription

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-analyzer/internal/common/logger"
	"project-analyzer/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Classify(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name        string
		description string
		wantRegen   bool
		wantBio     bool
		regenReason string
		bioReason   string
	}{
		{
			name:        "regenerative only",
			description: "Proyecto con ciclo cerrado y biodiversidad",
			wantRegen:   true,
			wantBio:     false,
			regenReason: "Se encontraron términos: ciclo cerrado, biodiversidad",
			bioReason:   NotFoundReason,
		},
		{
			name:        "biomimetic only",
			description: "Fachada con estructura alveolar inspirada en panales",
			wantRegen:   false,
			wantBio:     true,
			regenReason: NotFoundReason,
			bioReason:   "Se encontraron términos: estructura alveolar, panales",
		},
		{
			name:        "both categories",
			description: "Restauración ecológica con ventilación pasiva",
			wantRegen:   true,
			wantBio:     true,
			regenReason: "Se encontraron términos: restauración ecológica",
			bioReason:   "Se encontraron términos: ventilación pasiva",
		},
		{
			name:        "neither",
			description: "Autopista de peaje de cuatro carriles",
			regenReason: NotFoundReason,
			bioReason:   NotFoundReason,
		},
		{
			name:        "empty description",
			description: "",
			regenReason: NotFoundReason,
			bioReason:   NotFoundReason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := h.Classify(tt.description)
			assert.Equal(t, tt.wantRegen, out.IsRegenerative)
			assert.Equal(t, tt.wantBio, out.IsBiomimetic)
			assert.Equal(t, tt.regenReason, out.RegenerativeReason)
			assert.Equal(t, tt.bioReason, out.BiomimeticReason)
		})
	}
}

func TestHandler_Classify_CaseInsensitive(t *testing.T) {
	h := newTestHandler(t)

	lower := h.Classify("soluciones basadas en la naturaleza y organismos vivos")
	upper := h.Classify(strings.ToUpper("soluciones basadas en la naturaleza y organismos vivos"))
	mixed := h.Classify("Soluciones Basadas En La Naturaleza y Organismos VIVOS")

	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
	assert.True(t, lower.IsRegenerative)
	assert.True(t, lower.IsBiomimetic)
}

func TestHandler_Classify_ReasonListsEveryMatchInRegistryOrder(t *testing.T) {
	h := newTestHandler(t)

	// Text order is the reverse of registry order.
	out := h.Classify("Integración con comunidades, biodiversidad y regeneración")

	assert.Equal(t, []string{"regeneración", "biodiversidad", "integración con comunidades"}, out.RegenerativeTerms)
	assert.Equal(t, "Se encontraron términos: regeneración, biodiversidad, integración con comunidades", out.RegenerativeReason)
}

func TestHandler_CustomRegistryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"v2","regenerative":["compostaje"],"biomimetic":["termitero"]}`), 0o644))

	h, err := NewHandler(&Config{RegistryPath: path}, nil, logger.NewNoOpLogger())
	require.NoError(t, err)

	out := h.Classify("Compostaje comunitario")
	assert.True(t, out.IsRegenerative)
	assert.False(t, out.IsBiomimetic)
}

func TestHandler_InvalidRegistryFile(t *testing.T) {
	_, err := NewHandler(&Config{RegistryPath: filepath.Join(t.TempDir(), "missing.json")}, nil, logger.NewNoOpLogger())
	assert.Error(t, err)
}

func TestHandler_ExplicitRegistryWins(t *testing.T) {
	reg, err := registry.New("inline", []string{"humedal"}, []string{"nido"})
	require.NoError(t, err)

	h, err := NewHandler(&Config{RegistryPath: "/does/not/matter.json"}, reg, logger.NewNoOpLogger())
	require.NoError(t, err)

	assert.True(t, h.Classify("Recuperación de un humedal").IsRegenerative)
}

func TestHandler_Execute(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Description: "Edificio resiliente"})
	require.NoError(t, err)
	assert.True(t, out.IsBiomimetic)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.Execute(ctx, &Input{Description: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
