// internal/workers/project/normalize-records/format.go
package normalizerecords

import (
	"path/filepath"
	"strings"

	apperrors "project-analyzer/internal/common/errors"
)

// InputFormat is the explicit source format tag, fixed once per run.
type InputFormat string

const (
	FormatStructured InputFormat = "structured"
	FormatTabular    InputFormat = "tabular"
	FormatFreeText   InputFormat = "freetext"
)

var extensionFormats = map[string]InputFormat{
	".json": FormatStructured,
	".csv":  FormatTabular,
	".txt":  FormatFreeText,
	".md":   FormatFreeText,
}

// DetectFormat maps a file extension (case-insensitive) to its format.
func DetectFormat(path string) (InputFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := extensionFormats[ext]
	if !ok {
		return "", apperrors.NewUnsupportedFormatError(ext)
	}
	return format, nil
}

// ParseFormat accepts a format tag or a bare extension, e.g. "csv" or ".md".
func ParseFormat(tag string) (InputFormat, error) {
	switch f := InputFormat(strings.ToLower(tag)); f {
	case FormatStructured, FormatTabular, FormatFreeText:
		return f, nil
	}
	ext := strings.ToLower(tag)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if format, ok := extensionFormats[ext]; ok {
		return format, nil
	}
	return "", apperrors.NewUnsupportedFormatError(tag)
}
