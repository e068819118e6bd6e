package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rajan-personal/jsonstring-formatter/internal/errors"
)

// Config represents the complete configuration for the formatter
type Config struct {
	IndentWidth  int       `yaml:"indent_width"`
	ResolveDepth int       `yaml:"resolve_depth"`
	Gutter       bool      `yaml:"gutter"`
	Dev          DevConfig `yaml:"dev"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		IndentWidth:  2,
		ResolveDepth: 64,
		Gutter:       false,
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults so omitted fields keep their documented values
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configured values are usable
func (c *Config) Validate() error {
	if c.IndentWidth <= 0 {
		return errors.NewConfigError(
			fmt.Sprintf("indent_width must be positive, got %d", c.IndentWidth),
			errors.ErrInvalidIndent,
		)
	}
	if c.ResolveDepth <= 0 {
		return errors.NewConfigError(
			fmt.Sprintf("resolve_depth must be positive, got %d", c.ResolveDepth),
			nil,
		)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{
		".jsonstring-formatter.yml",
		".jsonstring-formatter.yaml",
		"jsonstring-formatter.yml",
		"jsonstring-formatter.yaml",
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}
