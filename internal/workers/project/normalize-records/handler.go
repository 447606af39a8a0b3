// internal/workers/project/normalize-records/handler.go
package normalizerecords

import (
	"context"
	"os"

	apperrors "project-analyzer/internal/common/errors"
	"project-analyzer/internal/common/logger"
	"project-analyzer/internal/common/metrics"
	"project-analyzer/internal/models"
)

const (
	TaskType = "normalize-records"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute reads the source (unless Data is supplied), picks its format and
// returns the records in source order.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := input.Format
	if format == "" {
		var err error
		format, err = DetectFormat(input.Path)
		if err != nil {
			return nil, err
		}
	}

	data := input.Data
	if data == nil {
		var err error
		data, err = os.ReadFile(input.Path)
		if err != nil {
			return nil, apperrors.NewInputReadFailedError(input.Path, err)
		}
	}

	out, err := h.Normalize(data, format)
	if err != nil {
		h.logger.Error("Failed to normalize records", map[string]interface{}{
			"path":   input.Path,
			"format": string(format),
			"error":  err.Error(),
		})
		return nil, err
	}

	h.logger.Info("Records normalized", map[string]interface{}{
		"path":    input.Path,
		"format":  string(out.Format),
		"shape":   out.Shape,
		"records": len(out.Records),
		"skipped": out.Skipped,
	})
	return out, nil
}

// Normalize converts raw bytes of the given format into project records.
func (h *Handler) Normalize(data []byte, format InputFormat) (*Output, error) {
	out := &Output{Format: format}

	var (
		records []models.ProjectRecord
		err     error
	)
	switch format {
	case FormatStructured:
		records, out.Shape, err = h.normalizeStructured(data)
	case FormatTabular:
		records, err = h.normalizeTabular(data)
	case FormatFreeText:
		records, out.Skipped = h.normalizeFreeText(data)
	default:
		return nil, apperrors.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return nil, err
	}

	out.Records = records
	metrics.RecordsNormalized.WithLabelValues(string(format)).Add(float64(len(records)))
	return out, nil
}
