package config

// Default returns the configuration written by `thedoc init`.
func Default(projectName string) *Config {
	cfg := &Config{
		ProjectName: projectName,
		Source: SourceConfig{
			Roots: []string{"."},
			ExcludePatterns: []string{
				".git",
				".build",
				"build",
				"node_modules",
				"Pods",
				"vendor",
				"*.generated.*",
			},
		},
		Output: OutputConfig{
			Directory: "docs",
			Clean:     true,
		},
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills unset fields after unmarshal.
func (c *Config) applyDefaults() {
	if c.ProjectName == "" {
		c.ProjectName = "Documentation"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "docs"
	}
	if c.Site.Title == "" {
		c.Site.Title = c.ProjectName
	}
	if len(c.Source.Dialects) == 0 {
		c.Source.Dialects = SupportedDialects()
	}
	if c.Generate.StatePath == "" {
		c.Generate.StatePath = ".thedoc/state.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}
