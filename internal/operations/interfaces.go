package operations

import (
	"log/slog"

	"github.com/namitajha/Diabetes-data-Namita/internal/charts"
	"github.com/namitajha/Diabetes-data-Namita/internal/config"
	"github.com/namitajha/Diabetes-data-Namita/internal/dataprocessing"
	"github.com/namitajha/Diabetes-data-Namita/internal/exporter"
	"github.com/namitajha/Diabetes-data-Namita/internal/infrastructure"
	"github.com/namitajha/Diabetes-data-Namita/internal/validation"
)

// StageOptions contains the collaborators shared by the steps
type StageOptions struct {
	Config     *config.Config
	Paths      *config.Paths
	Plan       Plan
	Logger     *slog.Logger
	Loader     *dataprocessing.Loader
	Summarizer *dataprocessing.Summarizer
	Validator  *validation.FileValidator
	Renderer   charts.Renderer
	CSV        *exporter.CSVWriter
	Workbook   *exporter.WorkbookWriter
	Metrics    *infrastructure.AnalysisMetrics
}

// NewStageOptions builds the default collaborators for cfg. Nil fields of
// the result may be replaced before the steps are created.
func NewStageOptions(cfg *config.Config, logger *slog.Logger) *StageOptions {
	if logger == nil {
		logger = slog.Default()
	}
	paths := config.NewPaths(cfg.Output.Dir)
	plan := DefaultPlan(cfg.Analysis)

	return &StageOptions{
		Config: cfg,
		Paths:  paths,
		Plan:   plan,
		Logger: logger,
		Loader: dataprocessing.NewLoader(logger, dataprocessing.LoaderConfig{
			RequiredColumns: plan.RequiredColumns(),
		}),
		Summarizer: dataprocessing.NewSummarizer(logger),
		Validator:  validation.NewFileValidator(logger),
		Renderer: charts.NewPlotRenderer(logger, charts.RendererConfig{
			Dir:    paths.ChartsDir,
			Format: cfg.Output.ChartFormat,
			Width:  cfg.Output.ChartWidth,
			Height: cfg.Output.ChartHeight,
		}),
		CSV:      exporter.NewCSVWriter(paths, logger),
		Workbook: exporter.NewWorkbookWriter(logger),
	}
}
