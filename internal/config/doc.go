// Package config provides centralized configuration management for the
// diabetes readmission analysis. It handles loading configuration from
// multiple sources, validation, and the output directory layout.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern DIABETES_* for namespacing:
//
//	DIABETES_ANALYSIS_INPUT_PATH=data/diabetic_data.csv
//	DIABETES_OUTPUT_DIR=out
//	DIABETES_OUTPUT_CHART_FORMAT=svg
//	DIABETES_LOGGING_LEVEL=debug
//	DIABETES_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths := config.NewPaths(cfg.Output.Dir)
//
// For testing, use config.Default() which needs no environment or files.
package config
