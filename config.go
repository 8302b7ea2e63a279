package shopprobe

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config represents the shopprobe configuration
type Config struct {
	Databases  map[string]Database `yaml:"databases"`
	Generation GenerationConfig    `yaml:"generation"`
	Query      QueryConfig         `yaml:"query"`
}

// Database represents database connection configuration
type Database struct {
	Driver     string `yaml:"driver"`
	Connection string `yaml:"connection"`
}

// GenerationConfig represents synthetic data generation settings
type GenerationConfig struct {
	OutputDir string `yaml:"output_dir"`
	Rows      int    `yaml:"rows"`
	Seed      int64  `yaml:"seed"`
}

// QueryConfig represents query execution settings
type QueryConfig struct {
	DefaultEnvironment string `yaml:"default_environment"`
	Timeout            int    `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no config file exists:
// a single sqlite environment pointing at ecommerce.db in the working
// directory, 100 rows per generated table.
func DefaultConfig() *Config {
	return &Config{
		Databases: map[string]Database{
			"development": {
				Driver:     "sqlite",
				Connection: "sqlite://ecommerce.db",
			},
		},
		Generation: GenerationConfig{
			OutputDir: ".",
			Rows:      100,
		},
		Query: QueryConfig{
			DefaultEnvironment: "development",
			Timeout:            30,
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file is not an
// error; the defaults are returned instead.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	expandConfigEnvVars(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	for name, db := range c.Databases {
		if db.Connection == "" {
			return fmt.Errorf("%w: database %q has no connection string", ErrConfigValidation, name)
		}
	}
	if c.Generation.Rows < 0 {
		return fmt.Errorf("%w: generation.rows must not be negative", ErrConfigValidation)
	}
	if c.Query.Timeout < 0 {
		return fmt.Errorf("%w: query.timeout must not be negative", ErrConfigValidation)
	}
	return nil
}

var (
	bracedVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareVarPattern   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// ExpandEnvVars expands environment variables in the format ${VAR} or $VAR
func ExpandEnvVars(s string) string {
	s = bracedVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
	s = bareVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
	return s
}

// expandConfigEnvVars expands environment variables in config values
func expandConfigEnvVars(config *Config) {
	for name, db := range config.Databases {
		db.Driver = ExpandEnvVars(db.Driver)
		db.Connection = ExpandEnvVars(db.Connection)
		config.Databases[name] = db
	}
	config.Generation.OutputDir = ExpandEnvVars(config.Generation.OutputDir)
}
