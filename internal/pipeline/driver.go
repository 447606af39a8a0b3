// Package pipeline runs the analysis: normalize the input, resolve missing
// descriptions, classify every project and write the result document.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"project-analyzer/internal/common/logger"
	"project-analyzer/internal/common/metrics"
	"project-analyzer/internal/models"
	classify "project-analyzer/internal/workers/project/classify-description"
	normalize "project-analyzer/internal/workers/project/normalize-records"
	resolve "project-analyzer/internal/workers/project/resolve-description"
)

type Config struct {
	// Concurrency bounds how many records are resolved and classified at
	// once. Values below 1 mean strictly sequential.
	Concurrency int
	// Format overrides extension-based format detection when set.
	Format normalize.InputFormat
}

type Driver struct {
	config     *Config
	normalizer *normalize.Handler
	resolver   *resolve.Handler
	classifier *classify.Handler
	logger     logger.Logger
}

func NewDriver(config *Config, normalizer *normalize.Handler, resolver *resolve.Handler, classifier *classify.Handler, log logger.Logger) *Driver {
	if config == nil {
		config = &Config{}
	}
	return &Driver{
		config:     config,
		normalizer: normalizer,
		resolver:   resolver,
		classifier: classifier,
		logger:     log,
	}
}

// recordStats is what a single record contributes to the run summary.
type recordStats struct {
	fetched      bool
	fetchFailed  bool
	cached       bool
	regenerative bool
	biomimetic   bool
}

// Run analyzes records and returns one AnalyzedProject per record, in input
// order. A failed description fetch never aborts the run; only context
// cancellation does.
func (d *Driver) Run(ctx context.Context, records []models.ProjectRecord) ([]models.AnalyzedProject, error) {
	projects, _, err := d.run(ctx, records)
	return projects, err
}

// RunFile reads inputPath, analyzes its records and writes the result
// document to outputPath.
func (d *Driver) RunFile(ctx context.Context, inputPath, outputPath string) (*Summary, error) {
	normalized, err := d.normalizer.Execute(ctx, &normalize.Input{
		Path:   inputPath,
		Format: d.config.Format,
	})
	if err != nil {
		return nil, err
	}

	projects, summary, err := d.run(ctx, normalized.Records)
	if err != nil {
		return nil, err
	}
	summary.Input = inputPath
	summary.Output = outputPath
	summary.Format = string(normalized.Format)
	summary.SkippedBlocks = normalized.Skipped

	if err := WriteFile(outputPath, projects); err != nil {
		d.logger.Error("Failed to write results", map[string]interface{}{
			"runId":  summary.RunID,
			"output": outputPath,
			"error":  err.Error(),
		})
		return nil, err
	}

	d.logger.Info("Results written", map[string]interface{}{
		"runId":    summary.RunID,
		"output":   outputPath,
		"projects": len(projects),
	})
	return summary, nil
}

func (d *Driver) run(ctx context.Context, records []models.ProjectRecord) ([]models.AnalyzedProject, *Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := d.logger.WithFields(map[string]interface{}{"runId": runID})

	limit := d.config.Concurrency
	if limit < 1 {
		limit = 1
	}

	log.Info("Starting analysis", map[string]interface{}{
		"records":     len(records),
		"concurrency": limit,
	})

	projects := make([]models.AnalyzedProject, len(records))
	stats := make([]recordStats, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range records {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			project, st, err := d.analyze(gctx, records[i])
			if err != nil {
				return err
			}
			projects[i] = project
			stats[i] = st
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn("Analysis interrupted", map[string]interface{}{"error": err.Error()})
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		log.Warn("Analysis interrupted", map[string]interface{}{"error": err.Error()})
		return nil, nil, err
	}

	summary := summarize(runID, stats)
	summary.Duration = time.Since(start)
	metrics.RunDuration.Set(summary.Duration.Seconds())

	log.Info("Analysis complete", map[string]interface{}{
		"records":       summary.Records,
		"regenerative":  summary.Regenerative,
		"biomimetic":    summary.Biomimetic,
		"fetched":       summary.Fetched,
		"fetchFailures": summary.FetchFailures,
		"cacheHits":     summary.CacheHits,
		"durationMs":    summary.Duration.Milliseconds(),
	})
	return projects, summary, nil
}

// analyze resolves (only when the record has no description) and classifies
// one record.
func (d *Driver) analyze(ctx context.Context, record models.ProjectRecord) (models.AnalyzedProject, recordStats, error) {
	var st recordStats

	description := record.DescriptionText()
	if !record.HasDescription() {
		resolved, err := d.resolver.Execute(ctx, &resolve.Input{Record: record})
		if err != nil {
			return models.AnalyzedProject{}, st, err
		}
		description = resolved.Description
		st.fetched = resolved.Source == resolve.SourceFetch
		st.cached = resolved.Source == resolve.SourceCache
		st.fetchFailed = resolved.FetchErrorCode != ""
	}

	verdict, err := d.classifier.Execute(ctx, &classify.Input{Description: description})
	if err != nil {
		return models.AnalyzedProject{}, st, err
	}
	st.regenerative = verdict.IsRegenerative
	st.biomimetic = verdict.IsBiomimetic

	return models.AnalyzedProject{
		Name:               record.Name,
		Location:           record.Location,
		URL:                d.resolver.BuildURL(record.ActionPath()),
		IsRegenerative:     verdict.IsRegenerative,
		IsBiomimetic:       verdict.IsBiomimetic,
		RegenerativeReason: verdict.RegenerativeReason,
		BiomimeticReason:   verdict.BiomimeticReason,
	}, st, nil
}
