// cmd/project-analyzer/root.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"project-analyzer/internal/common/config"
	"project-analyzer/internal/common/database"
	apperrors "project-analyzer/internal/common/errors"
	"project-analyzer/internal/common/logger"
	"project-analyzer/internal/common/metrics"
	"project-analyzer/internal/pipeline"
	classify "project-analyzer/internal/workers/project/classify-description"
	normalize "project-analyzer/internal/workers/project/normalize-records"
	resolve "project-analyzer/internal/workers/project/resolve-description"
)

// errUsage marks failures already reported with the usage text.
var errUsage = errors.New("usage")

type options struct {
	configPath   string
	concurrency  int
	baseURL      string
	timeout      time.Duration
	format       string
	registryPath string
	logLevel     string
	summary      bool
}

type app struct {
	opts   options
	stdout io.Writer
	stderr io.Writer
	log    logger.Logger
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, log: logger.NewNoOpLogger()}

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if errors.Is(err, errUsage) {
		return 1
	}
	return apperrors.NewErrorHandler(a.log, stderr).HandleRunError(err)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project-analyzer <input> [output]",
		Short: "Classify project descriptions as regenerative and/or biomimetic",
		Long: `project-analyzer reads a project list (.json, .csv, .txt or .md), fills in
missing descriptions from each project's page and writes a JSON document with
a regenerative and a biomimetic verdict per project.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintf(c.ErrOrStderr(), "%v\n", err)
		fmt.Fprint(c.ErrOrStderr(), c.UsageString())
		return errUsage
	})

	f := cmd.Flags()
	f.StringVar(&a.opts.configPath, "config", "", "config file (default: ./configs/config.yaml if present)")
	f.IntVar(&a.opts.concurrency, "concurrency", 1, "number of projects analyzed in parallel")
	f.StringVar(&a.opts.baseURL, "base-url", config.DefaultBaseURL, "origin prepended to each project's actionUrl")
	f.DurationVar(&a.opts.timeout, "timeout", config.GetDuration(config.DefaultFetchTimeout), "timeout for a single project page fetch")
	f.StringVar(&a.opts.format, "format", "", "input format (structured|tabular|freetext or an extension); detected from the file name when empty")
	f.StringVar(&a.opts.registryPath, "registry", "", "keyword registry file replacing the built-in lists")
	f.StringVar(&a.opts.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	f.BoolVar(&a.opts.summary, "summary", false, "print a run summary table on stderr")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"structured", "tabular", "freetext"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	zapLog := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	defer func() { _ = zapLog.Sync() }()
	a.log = logger.NewZapAdapter(zapLog.With(zap.String("app", cfg.App.Name)))

	input := args[0]
	output := cfg.Output.DefaultPath
	if len(args) > 1 {
		output = args[1]
	}

	var format normalize.InputFormat
	if a.opts.format != "" {
		format, err = normalize.ParseFormat(a.opts.format)
		if err != nil {
			return err
		}
	}

	cache, closeCache := a.connectCache(ctx, cfg.Cache)
	defer closeCache()

	resolver := resolve.NewHandler(&resolve.Config{
		BaseURL:      cfg.Fetch.BaseURL,
		Timeout:      config.GetDuration(cfg.Fetch.Timeout),
		UserAgent:    cfg.Fetch.UserAgent,
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
	}, nil, cache, a.log)

	classifier, err := classify.NewHandler(&classify.Config{RegistryPath: cfg.Keywords.RegistryPath}, nil, a.log)
	if err != nil {
		return err
	}

	driver := pipeline.NewDriver(&pipeline.Config{
		Concurrency: cfg.Pipeline.Concurrency,
		Format:      format,
	}, normalize.NewHandler(normalize.LoadConfig(), a.log), resolver, classifier, a.log)

	summary, runErr := driver.RunFile(ctx, input, output)

	if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
		a.log.Warn("Failed to write metrics textfile", map[string]interface{}{
			"path":  cfg.Metrics.TextfilePath,
			"error": err.Error(),
		})
	}

	if runErr != nil {
		return runErr
	}
	if a.opts.summary {
		summary.Render(a.stderr)
	}
	return nil
}

// loadConfig reads the config file and environment, then applies flags the
// user set explicitly.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.opts.configPath != "" {
		cfg, err = config.LoadFromFile(a.opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrCodeConfigInvalid {
			return nil, err
		}
		return nil, apperrors.NewConfigInvalidError(err.Error())
	}

	flags := cmd.Flags()
	if flags.Changed("concurrency") {
		cfg.Pipeline.Concurrency = a.opts.concurrency
	}
	if flags.Changed("base-url") {
		cfg.Fetch.BaseURL = a.opts.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Fetch.Timeout = int(a.opts.timeout.Milliseconds())
	}
	if flags.Changed("registry") {
		cfg.Keywords.RegistryPath = a.opts.registryPath
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.opts.logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// connectCache returns the description cache, or nil when caching is off or
// Redis cannot be reached. A cache is an optimization, never a requirement.
func (a *app) connectCache(ctx context.Context, cfg config.CacheConfig) (resolve.DescriptionCache, func()) {
	noop := func() {}
	if !cfg.Enabled {
		return nil, noop
	}

	client, err := database.NewRedis(cfg)
	if err != nil {
		a.log.Warn("Description cache disabled", map[string]interface{}{"error": err.Error()})
		return nil, noop
	}

	err = retryWithBackoff(ctx, func() error {
		return client.Ping(ctx)
	}, 3, 200*time.Millisecond, a.log, "Redis connection")
	if err != nil {
		_ = client.Close()
		a.log.Warn("Description cache disabled", map[string]interface{}{
			"address": cfg.Address,
			"error":   err.Error(),
		})
		return nil, noop
	}

	a.log.Info("Description cache connected", map[string]interface{}{"address": cfg.Address})
	return client, func() { _ = client.Close() }
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
