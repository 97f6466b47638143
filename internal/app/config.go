package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TemplatePath string
	Format       string // plan output: "table" or "json"
	LogFormat    string
	LogLevel     string
}

// NewConfig validates and returns the configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TemplatePath == "" {
		return nil, errors.New("TemplatePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
