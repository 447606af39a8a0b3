// internal/common/config/loader.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "project-analyzer/internal/common/errors"
)

const (
	DefaultBaseURL      = "https://www.acciona.com"
	DefaultOutputPath   = "proyectos_analizados.json"
	DefaultFetchTimeout = 10000
	MaxConcurrency      = 64
)

// Load reads config.yaml (optional) from the usual locations, merges
// config.<APP_ENVIRONMENT>.yaml and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	// FETCH_BASE_URL overrides fetch.base_url and so on.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	registerDefaults(v)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// registerDefaults makes every key known to viper so AutomaticEnv applies on
// Unmarshal even when no config file exists.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "project-analyzer")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")

	v.SetDefault("fetch.base_url", DefaultBaseURL)
	v.SetDefault("fetch.timeout", DefaultFetchTimeout)
	v.SetDefault("fetch.user_agent", "project-analyzer/1.0")
	v.SetDefault("fetch.max_body_bytes", 2<<20)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.address", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", 24*60*60*1000)

	v.SetDefault("pipeline.concurrency", 1)
	v.SetDefault("keywords.registry_path", "")
	v.SetDefault("output.default_path", DefaultOutputPath)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("metrics.textfile_path", "")
}

// loadEnvFile loads the first .env found walking up to the project root.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields that a
// config file may have zeroed out.
func applyDefaults(cfg *Config) {
	if cfg.Fetch.BaseURL == "" {
		cfg.Fetch.BaseURL = DefaultBaseURL
	}
	cfg.Fetch.BaseURL = strings.TrimRight(cfg.Fetch.BaseURL, "/")
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = DefaultFetchTimeout
	}
	if cfg.Fetch.MaxBodyBytes == 0 {
		cfg.Fetch.MaxBodyBytes = 2 << 20
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 24 * 60 * 60 * 1000
	}

	if cfg.Pipeline.Concurrency == 0 {
		cfg.Pipeline.Concurrency = 1
	}

	if cfg.Output.DefaultPath == "" {
		cfg.Output.DefaultPath = DefaultOutputPath
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}

// Validate checks critical configuration fields. It is exported so callers
// applying flag overrides can re-check the result. A trailing "/" on the base
// URL is dropped here too, since overrides bypass applyDefaults.
func Validate(cfg *Config) error {
	cfg.Fetch.BaseURL = strings.TrimRight(cfg.Fetch.BaseURL, "/")
	u, err := url.Parse(cfg.Fetch.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.NewConfigInvalidError(fmt.Sprintf("fetch.base_url must be an absolute http(s) URL, got %q", cfg.Fetch.BaseURL))
	}

	if cfg.Fetch.Timeout <= 0 {
		return apperrors.NewConfigInvalidError("fetch.timeout must be positive")
	}
	if cfg.Fetch.MaxBodyBytes <= 0 {
		return apperrors.NewConfigInvalidError("fetch.max_body_bytes must be positive")
	}

	if cfg.Pipeline.Concurrency < 1 || cfg.Pipeline.Concurrency > MaxConcurrency {
		return apperrors.NewConfigInvalidError(fmt.Sprintf("pipeline.concurrency must be between 1 and %d", MaxConcurrency))
	}

	if cfg.Cache.Enabled && cfg.Cache.Address == "" {
		return apperrors.NewConfigInvalidError("cache.address is required when cache.enabled is true")
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return apperrors.NewConfigInvalidError(fmt.Sprintf("logging.format must be json or console, got %q", cfg.Logging.Format))
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
