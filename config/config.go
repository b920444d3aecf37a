package config

import (
	"github.com/wesleyorama2/fetchkit/internal/config"
)

type (
	// Config is a parsed preset file.
	Config = config.Config
	// Preset is one named entry of a preset file.
	Preset = config.Preset
	// ValidationError describes one problem found in a preset file.
	ValidationError = config.ValidationError
)

// Load reads, parses and validates the preset file at path.
func Load(path string) (*Config, error) {
	return config.LoadConfig(path)
}

// Parse decodes a preset document without validating it.
func Parse(data []byte) (*Config, error) {
	return config.ParseConfig(data)
}

// Validate returns every problem found in cfg.
func Validate(cfg *Config) []ValidationError {
	return config.ValidateConfig(cfg)
}
