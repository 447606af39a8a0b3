package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestNewWithOptions_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyzer.log")

	zl := NewWithOptions(Options{Level: "info", Format: "json", Output: path})
	log := NewZapAdapter(zl).WithFields(map[string]interface{}{"runId": "r-1"})
	log.Info("record classified", map[string]interface{}{"index": 3})
	log.Debug("suppressed at info level", nil)
	_ = zl.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"record classified"`)
	assert.Contains(t, string(data), `"runId":"r-1"`)
	assert.NotContains(t, string(data), "suppressed")
}

func TestMapToZapFields(t *testing.T) {
	assert.Nil(t, mapToZapFields(nil))
	assert.Len(t, mapToZapFields(map[string]interface{}{"a": 1, "b": "x"}), 2)
}

func TestNoOpLoggerIsSafe(t *testing.T) {
	log := NewNoOpLogger()
	log.WithError(assert.AnError).With(map[string]interface{}{"k": "v"}).Warn("ignored", nil)
}
