// internal/workers/project/resolve-description/handler.go
package resolvedescription

import (
	"context"
	"time"

	apperrors "project-analyzer/internal/common/errors"
	"project-analyzer/internal/common/logger"
	"project-analyzer/internal/common/metrics"
	"project-analyzer/internal/models"
)

const (
	TaskType = "resolve-description"
)

type Handler struct {
	config  *Config
	fetcher Fetcher
	cache   DescriptionCache
	logger  logger.Logger
}

// NewHandler wires a resolver. A nil fetcher selects MetaFetcher; a nil
// cache disables caching.
func NewHandler(config *Config, fetcher Fetcher, cache DescriptionCache, log logger.Logger) *Handler {
	if fetcher == nil {
		fetcher = NewMetaFetcher(config)
	}
	return &Handler{
		config:  config,
		fetcher: fetcher,
		cache:   cache,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// BuildURL joins the fixed origin and a record's relative action path.
func (h *Handler) BuildURL(actionURL string) string {
	return h.config.BaseURL + actionURL
}

// Resolve returns the record's description, or fallback text fetched from
// its project page. It never fails: any fetch problem yields ("", false).
func (h *Handler) Resolve(ctx context.Context, record models.ProjectRecord) (string, bool) {
	out := h.resolve(ctx, record)
	return out.Description, out.Found
}

func (h *Handler) resolve(ctx context.Context, record models.ProjectRecord) *Output {
	if record.HasDescription() {
		return &Output{Description: record.DescriptionText(), Found: true, Source: SourceRecord}
	}

	action := record.ActionPath()
	if action == "" {
		return &Output{Source: SourceNone}
	}

	url := h.BuildURL(action)

	if desc, ok := h.lookupCache(ctx, url); ok {
		return &Output{Description: desc, Found: true, Source: SourceCache, URL: url}
	}

	desc, err := h.fetch(ctx, url)
	if err != nil {
		code := apperrors.CodeOf(err)
		metrics.DescriptionFetches.WithLabelValues(string(code)).Inc()
		h.logger.Warn("description fetch failed, continuing without description", map[string]interface{}{
			"url":       url,
			"errorCode": string(code),
			"error":     err.Error(),
		})
		return &Output{Source: SourceNone, URL: url, FetchErrorCode: string(code)}
	}

	metrics.DescriptionFetches.WithLabelValues("ok").Inc()
	h.storeCache(ctx, url, desc)

	h.logger.Debug("description fetched", map[string]interface{}{
		"url":    url,
		"length": len(desc),
	})
	return &Output{Description: desc, Found: true, Source: SourceFetch, URL: url}
}

// fetch performs exactly one bounded-time attempt.
func (h *Handler) fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.DescriptionFetchDuration.Observe(time.Since(start).Seconds())
	}()

	desc, err := h.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if desc == "" {
		return "", apperrors.NewMetaNotFoundError(url)
	}
	return desc, nil
}

func (h *Handler) lookupCache(ctx context.Context, url string) (string, bool) {
	if h.cache == nil {
		return "", false
	}
	desc, ok, err := h.cache.GetDescription(ctx, url)
	if err != nil {
		metrics.DescriptionCacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("description cache lookup failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return "", false
	}
	if !ok || desc == "" {
		metrics.DescriptionCacheLookups.WithLabelValues("miss").Inc()
		return "", false
	}
	metrics.DescriptionCacheLookups.WithLabelValues("hit").Inc()
	return desc, true
}

func (h *Handler) storeCache(ctx context.Context, url, desc string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SetDescription(ctx, url, desc); err != nil {
		h.logger.Warn("description cache store failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}
}

// Execute is the stage entry point used by the pipeline.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.resolve(ctx, input.Record), nil
}
