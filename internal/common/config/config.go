// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Keywords KeywordsConfig `mapstructure:"keywords"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// FetchConfig controls the project page fetch used to fill in missing
// descriptions.
type FetchConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	Timeout      int    `mapstructure:"timeout"` // milliseconds
	UserAgent    string `mapstructure:"user_agent"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

// CacheConfig holds the optional Redis cache for fetched descriptions.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // milliseconds
}

type PipelineConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// KeywordsConfig points at an optional registry file replacing the built-in
// keyword lists.
type KeywordsConfig struct {
	RegistryPath string `mapstructure:"registry_path"`
}

type OutputConfig struct {
	DefaultPath string `mapstructure:"default_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the node-exporter textfile target. Empty disables the
// flush.
type MetricsConfig struct {
	TextfilePath string `mapstructure:"textfile_path"`
}
