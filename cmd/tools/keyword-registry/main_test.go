// cmd/tools/keyword-registry/main_test.go
package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-analyzer/pkg/registry"
)

func TestKeywordRegistry_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")

	require.Equal(t, 0, run([]string{"export", "-path", path, "-version", "2026.10"}))
	require.Equal(t, 0, run([]string{"validate", "-path", path}))

	require.Equal(t, 0, run([]string{"add", "-path", path, "-set", "regenerative", "-keyword", " Renaturalización "}))
	assert.Equal(t, 1, run([]string{"add", "-path", path, "-set", "regenerative", "-keyword", "renaturalización"}), "duplicate")

	require.Equal(t, 0, run([]string{"remove", "-path", path, "-set", "biomimetic", "-keyword", "ALAS"}))
	assert.Equal(t, 1, run([]string{"remove", "-path", path, "-set", "biomimetic", "-keyword", "alas"}), "already gone")

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2026.10", reg.Version())
	assert.Contains(t, reg.Keywords(registry.Regenerative), "renaturalización")
	assert.NotContains(t, reg.Keywords(registry.Biomimetic), "alas")
	assert.False(t, reg.Match("Las salas", registry.Biomimetic).Found)
}

func TestKeywordRegistry_BadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")

	assert.Equal(t, 1, run(nil))
	assert.Equal(t, 1, run([]string{"frobnicate"}))
	assert.Equal(t, 1, run([]string{"validate", "-path", path}))
	assert.Equal(t, 1, run([]string{"add", "-path", path}))

	require.Equal(t, 0, run([]string{"export", "-path", path}))
	assert.Equal(t, 1, run([]string{"add", "-path", path, "-set", "other", "-keyword", "x"}))
}
