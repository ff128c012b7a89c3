package common

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig `toml:"logging"`
	Data        DataConfig    `toml:"data"`
	Cache       CacheConfig   `toml:"cache"`
	Workers     WorkersConfig `toml:"workers"`
	Export      ExportConfig  `toml:"export"`

	// AssumptionsFile points at a TOML file of assumption overrides.
	// Empty means built-in defaults.
	AssumptionsFile string `toml:"assumptions_file"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// DataConfig locates the CSV input files
type DataConfig struct {
	TitlesFile     string `toml:"titles_file"`
	EngagementFile string `toml:"engagement_file"`
	QualityFile    string `toml:"quality_file"`
}

// CacheConfig represents the scorecard cache storage settings
type CacheConfig struct {
	Enabled        bool   `toml:"enabled"`
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup
}

type WorkersConfig struct {
	Concurrency int `toml:"concurrency"` // Parallel scorecard computations
}

// ExportConfig controls report output
type ExportConfig struct {
	Dir    string `toml:"dir"`    // Output directory for CSV and PDF reports
	Format string `toml:"format"` // "csv", "pdf" or "both"
}

// NewDefaultConfig returns the baseline config before any file or flag overrides
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Data: DataConfig{
			TitlesFile:     "./data/titles.csv",
			EngagementFile: "./data/engagement.csv",
			QualityFile:    "./data/quality.csv",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    "./data/cache",
		},
		Workers: WorkersConfig{
			Concurrency: 8,
		},
		Export: ExportConfig{
			Dir:    "./reports",
			Format: "both",
		},
	}
}

// LoadConfig loads configuration with priority: defaults -> file -> env.
// An empty path skips the file stage.
func LoadConfig(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SLATE_ENV"); env != "" {
		config.Environment = env
	}
	if level := os.Getenv("SLATE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if path := os.Getenv("SLATE_CACHE_PATH"); path != "" {
		config.Cache.Path = path
	}
	if file := os.Getenv("SLATE_ASSUMPTIONS_FILE"); file != "" {
		config.AssumptionsFile = file
	}
}

// ApplyFlagOverrides applies CLI flag values over the loaded config.
// Empty values leave the config untouched.
func ApplyFlagOverrides(config *Config, assumptionsFile, exportDir string, concurrency int) {
	if assumptionsFile != "" {
		config.AssumptionsFile = assumptionsFile
	}
	if exportDir != "" {
		config.Export.Dir = exportDir
	}
	if concurrency > 0 {
		config.Workers.Concurrency = concurrency
	}
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
