// internal/workers/project/normalize-records/config.go
package normalizerecords

type Config struct {
	// LocationIcon marks the label holding a project's location in the
	// wrapped listing export.
	LocationIcon string
	// MinBlockLines is the number of non-empty lines a free-text block needs
	// to become a record.
	MinBlockLines int
}

func LoadConfig() *Config {
	return &Config{
		LocationIcon:  "icon-globe-16",
		MinBlockLines: 3,
	}
}
