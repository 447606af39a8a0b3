// internal/workers/project/resolve-description/config.go
package resolvedescription

import "time"

type Config struct {
	BaseURL      string
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:      "https://www.acciona.com",
		Timeout:      10 * time.Second,
		UserAgent:    "project-analyzer/1.0",
		MaxBodyBytes: 2 << 20,
	}
}
