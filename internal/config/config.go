package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// AnalysisConfig controls how the dataset is read and cleaned
type AnalysisConfig struct {
	InputPath      string `yaml:"input_path" envconfig:"INPUT_PATH" validate:"required"`
	Sentinel       string `yaml:"sentinel" envconfig:"SENTINEL" validate:"required"`
	Replacement    string `yaml:"replacement" envconfig:"REPLACEMENT" validate:"required,nefield=Sentinel"`
	DiagnosisCode  string `yaml:"diagnosis_code" envconfig:"DIAGNOSIS_CODE" validate:"required"`
	DiagnosisMatch string `yaml:"diagnosis_match" envconfig:"DIAGNOSIS_MATCH" validate:"oneof=contains prefix"`
	// Sentinel rate above which a column is reported as an exclusion candidate
	ExclusionThreshold float64 `yaml:"exclusion_threshold" envconfig:"EXCLUSION_THRESHOLD" validate:"gt=0,lte=1"`
}

// OutputConfig controls the artifacts written by a run
type OutputConfig struct {
	Dir         string  `yaml:"dir" envconfig:"DIR" validate:"required"`
	ChartFormat string  `yaml:"chart_format" envconfig:"CHART_FORMAT" validate:"oneof=png svg"`
	ChartWidth  float64 `yaml:"chart_width" envconfig:"CHART_WIDTH" validate:"gt=0"`
	ChartHeight float64 `yaml:"chart_height" envconfig:"CHART_HEIGHT" validate:"gt=0"`
	Workbook    bool    `yaml:"workbook" envconfig:"WORKBOOK"`
	CSVBOM      bool    `yaml:"csv_bom" envconfig:"CSV_BOM"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TelemetryConfig controls tracing and the metrics textfile
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
}

// Load resolves configuration in three layers: Default, then the YAML
// file, then environment variables that are actually set. An empty path
// searches the default locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields carry no default tags, so unset variables leave cfg untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile decodes the YAML file over cfg. Keys absent from the file
// keep their current value, including booleans set to true.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct tags and normalizes logging settings
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	// Logs are always JSON
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		DefaultConfigFile,
		"configs/" + DefaultConfigFile,
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			InputPath:          "diabetic_data.csv",
			Sentinel:           SentinelValue,
			Replacement:        ReplacementValue,
			DiagnosisCode:      DiabetesDiagnosisCode,
			DiagnosisMatch:     MatchContains,
			ExclusionThreshold: DefaultExclusionThreshold,
		},
		Output: OutputConfig{
			Dir:         "out",
			ChartFormat: ChartFormatPNG,
			ChartWidth:  DefaultChartWidth,
			ChartHeight: DefaultChartHeight,
			Workbook:    true,
			CSVBOM:      true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "console",
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
			EnableMetrics: true,
		},
	}
}
