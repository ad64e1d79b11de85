package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the output paths of a run.
// This is the single source of truth for where artifacts are written.
type Paths struct {
	OutputDir string
	ChartsDir string
	TablesDir string
	LogsDir   string

	// Well-known files
	WorkbookFile string
	ManifestFile string
	MetricsFile  string
	LogFile      string
}

// NewPaths returns the artifact layout rooted at outputDir:
//
//	<out>/
//	  ├── charts/          (bar and stacked-bar charts)
//	  ├── tables/          (frequency tables and cross-tabulations as CSV)
//	  ├── logs/
//	  ├── analysis.xlsx
//	  ├── manifest.json
//	  └── metrics.prom
func NewPaths(outputDir string) *Paths {
	if abs, err := filepath.Abs(outputDir); err == nil {
		outputDir = abs
	}
	logsDir := filepath.Join(outputDir, LogsSubdir)

	return &Paths{
		OutputDir:    outputDir,
		ChartsDir:    filepath.Join(outputDir, ChartsSubdir),
		TablesDir:    filepath.Join(outputDir, TablesSubdir),
		LogsDir:      logsDir,
		WorkbookFile: filepath.Join(outputDir, WorkbookFileName),
		ManifestFile: filepath.Join(outputDir, ManifestFileName),
		MetricsFile:  filepath.Join(outputDir, MetricsFileName),
		LogFile:      filepath.Join(logsDir, LogFileName),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.OutputDir,
		p.ChartsDir,
		p.TablesDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// GetChartPath returns the path for a chart file
func (p *Paths) GetChartPath(name, format string) string {
	return filepath.Join(p.ChartsDir, name+"."+format)
}

// GetTablePath returns the path for a table CSV file
func (p *Paths) GetTablePath(name string) string {
	return filepath.Join(p.TablesDir, name+".csv")
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved output layout
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("output", p.OutputDir),
			slog.String("charts", p.ChartsDir),
			slog.String("tables", p.TablesDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("workbook", p.WorkbookFile),
			slog.String("manifest", p.ManifestFile),
			slog.String("metrics", p.MetricsFile),
		))
}
