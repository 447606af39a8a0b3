package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	RecordsNormalized.WithLabelValues("freetext").Add(2)

	path := filepath.Join(t.TempDir(), "analyzer.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `analyzer_records_normalized_total{format="freetext"}`)
}

func TestWriteTextfile_EmptyPathIsNoop(t *testing.T) {
	assert.NoError(t, WriteTextfile(""))
}

func TestProjectsClassifiedLabels(t *testing.T) {
	before := testutil.ToFloat64(ProjectsClassified.WithLabelValues("biomimetic", "true"))
	ProjectsClassified.WithLabelValues("biomimetic", "true").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ProjectsClassified.WithLabelValues("biomimetic", "true")))
}
