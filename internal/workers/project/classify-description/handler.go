// internal/workers/project/classify-description/handler.go
package classifydescription

import (
	"context"
	"strings"

	"project-analyzer/internal/common/logger"
	"project-analyzer/internal/common/metrics"
	"project-analyzer/pkg/registry"
)

const (
	TaskType = "classify-description"

	MatchedReasonPrefix = "Se encontraron términos: "
	NotFoundReason      = "No se identifica contenido explícito o implícito en la descripción"
)

type Handler struct {
	config   *Config
	registry *registry.Registry
	logger   logger.Logger
}

// NewHandler builds a classifier over reg. A nil reg selects the built-in
// keyword lists, or the file named by config.RegistryPath.
func NewHandler(config *Config, reg *registry.Registry, log logger.Logger) (*Handler, error) {
	if reg == nil {
		var err error
		reg, err = loadRegistry(config)
		if err != nil {
			return nil, err
		}
	}

	h := &Handler{
		config:   config,
		registry: reg,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
	h.logger.Debug("keyword registry ready", map[string]interface{}{
		"registryVersion":   reg.Version(),
		"regenerativeTerms": len(reg.Keywords(registry.Regenerative)),
		"biomimeticTerms":   len(reg.Keywords(registry.Biomimetic)),
	})
	return h, nil
}

func loadRegistry(config *Config) (*registry.Registry, error) {
	if config == nil || config.RegistryPath == "" {
		return registry.Default(), nil
	}
	return registry.LoadRegistry(config.RegistryPath)
}

// Classify evaluates both keyword sets independently against description.
func (h *Handler) Classify(description string) Output {
	text := strings.ToLower(description)

	regen := registry.MatchLower(text, h.registry.Keywords(registry.Regenerative))
	bio := registry.MatchLower(text, h.registry.Keywords(registry.Biomimetic))

	out := Output{
		IsRegenerative:     regen.Found,
		IsBiomimetic:       bio.Found,
		RegenerativeReason: buildReason(regen),
		BiomimeticReason:   buildReason(bio),
		RegenerativeTerms:  regen.Matched,
		BiomimeticTerms:    bio.Matched,
	}

	metrics.ProjectsClassified.WithLabelValues(string(registry.Regenerative), verdictLabel(out.IsRegenerative)).Inc()
	metrics.ProjectsClassified.WithLabelValues(string(registry.Biomimetic), verdictLabel(out.IsBiomimetic)).Inc()

	return out
}

func buildReason(m registry.MatchResult) string {
	if !m.Found {
		return NotFoundReason
	}
	return MatchedReasonPrefix + strings.Join(m.Matched, ", ")
}

func verdictLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// Execute is the stage entry point used by the pipeline. Classification
// cannot fail; the error return keeps the stage signature uniform.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := h.Classify(input.Description)
	return &out, nil
}
