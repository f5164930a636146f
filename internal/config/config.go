// Package config loads, validates, and writes the thedoc.yaml project
// configuration. The extraction core itself never reads this file; the CLI
// loads it and hands the relevant pieces (roots, excludes, dialects) down.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file thedoc looks for in the project root.
const DefaultFileName = "thedoc.yaml"

// Config represents the application configuration
type Config struct {
	ProjectName string         `yaml:"project_name"`
	Source      SourceConfig   `yaml:"source"`
	Output      OutputConfig   `yaml:"output"`
	Site        SiteConfig     `yaml:"site,omitempty"`
	Generate    GenerateConfig `yaml:"generate,omitempty"`
	Logging     LoggingConfig  `yaml:"logging,omitempty"`
}

// SourceConfig describes where source files live and which to skip
type SourceConfig struct {
	Roots           []string `yaml:"roots"`
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty"`
	Dialects        []string `yaml:"dialects,omitempty"` // empty means all built-in dialects
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before generating
}

// SiteConfig carries site metadata passed through to the site generator
type SiteConfig struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
}

// GenerateConfig tunes the extraction run
type GenerateConfig struct {
	Workers     int    `yaml:"workers,omitempty"`     // parallel file passes, 0 = NumCPU
	Incremental bool   `yaml:"incremental,omitempty"` // skip files unchanged since the last run
	StatePath   string `yaml:"state_path,omitempty"`  // sqlite state for incremental runs
}

// LoggingConfig selects log verbosity and output format
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just note it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes the configuration to path in YAML form.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if len(c.Source.Roots) == 0 {
		return fmt.Errorf("source.roots must list at least one directory")
	}
	for _, name := range c.Source.Dialects {
		if NormalizeDialect(name) == "" {
			return fmt.Errorf("unknown dialect %q (supported: %v)", name, SupportedDialects())
		}
	}
	if c.Generate.Workers < 0 {
		return fmt.Errorf("generate.workers must not be negative")
	}
	return nil
}
