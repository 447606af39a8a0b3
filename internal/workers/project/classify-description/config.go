// internal/workers/project/classify-description/config.go
package classifydescription

type Config struct {
	// RegistryPath replaces the built-in keyword lists when set.
	RegistryPath string
}

func LoadConfig() *Config {
	return &Config{}
}
