package shared

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the file-level configuration. CLI flags take precedence over
// it, it takes precedence over built-in defaults.
type Config struct {
	// Sources are glob patterns of files to analyze.
	Sources []string `yaml:"sources"`

	// TargetVersion constrains the active Robot Framework release.
	// Multiple entries compose with OR; ";" inside one entry means AND.
	TargetVersion []string `yaml:"target_version"`

	Rules struct {
		Select    []string `yaml:"select"`
		Include   []string `yaml:"include"`
		Exclude   []string `yaml:"exclude"`
		Configure []string `yaml:"configure"` // rule-id.param=value tokens
		Packs     []string `yaml:"packs"`     // external YAML pattern-rule packs
	} `yaml:"rules"`

	Output struct {
		Template      string `yaml:"template"`       // "default" | "extended"
		FailThreshold string `yaml:"fail_threshold"` // info|warning|error
	} `yaml:"output"`

	Concurrency int `yaml:"concurrency"` // 0 = GOMAXPROCS

	History struct {
		DSN string `yaml:"dsn"` // SQLite path for the run-history store
	} `yaml:"history"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Sources = []string{"**/*.robot", "**/*.resource"}
	c.Output.Template = "default"
	c.Output.FailThreshold = "warning"
	c.History.DSN = "./robocop.db"
	c.Logging.Format = "text"
	c.Logging.Level = "info"
	return c
}

// LoadConfig reads the YAML file at path over the defaults, then applies
// explicit env overrides.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, err
		}
	}
	if v := os.Getenv("ROBOCOP_TARGET_VERSION"); v != "" {
		c.TargetVersion = []string{v}
	}
	if v := os.Getenv("ROBOCOP_HISTORY_DSN"); v != "" {
		c.History.DSN = v
	}
	if v := os.Getenv("ROBOCOP_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}
	if v := os.Getenv("ROBOCOP_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("ROBOCOP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return c, nil
}
