// cmd/project-analyzer/main_test.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func readResults(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ==========================
// Argument Handling Tests
// ==========================

func TestExecute_MissingInputPrintsUsage(t *testing.T) {
	code, stdout, stderr := runCLI(t)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Usage:")
	assert.Contains(t, stderr, "project-analyzer <input> [output]")
}

func TestExecute_UnknownFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "--nope", "in.json")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown flag")
}

func TestExecute_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "proyectos.xml", "<proyectos/>")

	code, _, stderr := runCLI(t, in, filepath.Join(dir, "out.json"))

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error: UNSUPPORTED_FORMAT")
	assert.NotContains(t, stderr, "goroutine")
	assert.NoFileExists(t, filepath.Join(dir, "out.json"))
}

func TestExecute_InvalidConcurrency(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "proyectos.json", "[]")

	code, _, stderr := runCLI(t, "--concurrency", "0", in, filepath.Join(dir, "out.json"))

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error: CONFIG_INVALID")
}

func TestExecute_ZeroTimeoutRejected(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "proyectos.json", "[]")

	for _, timeout := range []string{"0s", "500us"} {
		code, _, stderr := runCLI(t, "--timeout", timeout, in, filepath.Join(dir, "out.json"))

		assert.Equal(t, 1, code, timeout)
		assert.Contains(t, stderr, "error: CONFIG_INVALID", timeout)
	}
	assert.NoFileExists(t, filepath.Join(dir, "out.json"))
}

// ==========================
// End-to-end Tests
// ==========================

func TestExecute_AnalyzesStructuredInput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "proyectos.json",
		`[{"nombre":"Proyecto A","ubicacion":"Madrid","descripcion":"Proyecto con ciclo cerrado y biodiversidad"}]`)
	out := filepath.Join(dir, "resultado.json")

	code, _, stderr := runCLI(t, "--summary", in, out)
	require.Equal(t, 0, code, stderr)

	results := readResults(t, out)
	require.Len(t, results, 1)
	assert.Equal(t, "Proyecto A", results[0]["nombre"])
	assert.Equal(t, true, results[0]["regenerativo"])
	assert.Equal(t, false, results[0]["biomimetico"])
	assert.Equal(t, "https://www.acciona.com", results[0]["url"])
	assert.Contains(t, stderr, "Regenerative")
}

func TestExecute_FormatOverride(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "export.dat", "Torre\nMadrid\nFachada con ventilación pasiva\n")
	out := filepath.Join(dir, "resultado.json")

	code, _, stderr := runCLI(t, "--format", "freetext", in, out)
	require.Equal(t, 0, code, stderr)

	results := readResults(t, out)
	require.Len(t, results, 1)
	assert.Equal(t, true, results[0]["biomimetico"])
}

func TestExecute_FetchesAndCachesDescriptions(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`<html><head><meta name="description" content="Restauración ecológica del río"></head></html>`))
	}))
	defer server.Close()

	mr := miniredis.RunT(t)

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", fmt.Sprintf(`
cache:
  enabled: true
  address: %q
logging:
  level: debug
  output: %q
`, mr.Addr(), filepath.Join(dir, "analyzer.log")))
	in := writeFile(t, dir, "proyectos.json",
		`{"data":[{"title":"Río","labels":[{"icon":"icon-globe-16","text":"Chile"}],"actionUrl":"/es/proyectos/rio/"}]}`)
	out := filepath.Join(dir, "resultado.json")

	for i := 0; i < 2; i++ {
		code, _, stderr := runCLI(t, "--config", cfgPath, "--base-url", server.URL, in, out)
		require.Equal(t, 0, code, stderr)
	}

	results := readResults(t, out)
	require.Len(t, results, 1)
	assert.Equal(t, "Chile", results[0]["ubicacion"])
	assert.Equal(t, server.URL+"/es/proyectos/rio/", results[0]["url"])
	assert.Equal(t, true, results[0]["regenerativo"])

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second run is served from the cache")
	assert.True(t, mr.Exists("desc:"+server.URL+"/es/proyectos/rio/"))
	assert.FileExists(t, filepath.Join(dir, "analyzer.log"))
}

func TestExecute_BaseURLTrailingSlash(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		_, _ = w.Write([]byte(`<html><head><meta name="description" content="Fachada"></head></html>`))
	}))
	defer server.Close()

	dir := t.TempDir()
	in := writeFile(t, dir, "proyectos.json", `[{"nombre":"Torre","actionUrl":"/p"}]`)
	out := filepath.Join(dir, "resultado.json")

	code, _, stderr := runCLI(t, "--base-url", server.URL+"/", in, out)
	require.Equal(t, 0, code, stderr)

	results := readResults(t, out)
	require.Len(t, results, 1)
	assert.Equal(t, server.URL+"/p", results[0]["url"])
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/p"}, paths)
}
