package operations

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/namitajha/Diabetes-data-Namita/internal/charts"
	"github.com/namitajha/Diabetes-data-Namita/internal/config"
	"github.com/namitajha/Diabetes-data-Namita/internal/dataprocessing"
	"github.com/namitajha/Diabetes-data-Namita/internal/exporter"
	"github.com/namitajha/Diabetes-data-Namita/internal/infrastructure"
)

// DefaultSteps returns the full analysis in execution order. Every step
// that computes runs before the first step that writes.
func DefaultSteps(opts *StageOptions) []Step {
	return append(CleaningSteps(opts),
		NewPostProfileStage(opts),
		NewSummarizeStage(opts),
		NewSubsetStage(opts),
		NewRenderStage(opts),
		NewExportStage(opts),
	)
}

// CleaningSteps loads, profiles, prunes and normalizes the input
func CleaningSteps(opts *StageOptions) []Step {
	return []Step{
		NewLoadStage(opts),
		NewPreProfileStage(opts),
		NewPruneStage(opts),
		NewNormalizeStage(opts),
	}
}

// LoadStage validates, fingerprints and reads the input file
type LoadStage struct {
	BaseStage
	opts *StageOptions
}

// NewLoadStage creates a new load Step
func NewLoadStage(opts *StageOptions) *LoadStage {
	return &LoadStage{BaseStage: NewBaseStage(StageIDLoad, StageNameLoad), opts: opts}
}

// Execute loads state.InputPath into state.Raw
func (s *LoadStage) Execute(ctx context.Context, state *RunState) error {
	if err := s.opts.Validator.ValidateInputFile(state.InputPath); err != nil {
		return err
	}

	size, digest, err := DigestFile(state.InputPath)
	if err != nil {
		return err
	}

	ds, err := s.opts.Loader.LoadFile(ctx, state.InputPath)
	if err != nil {
		return err
	}

	state.Raw = ds
	state.Manifest.Input.Size = size
	state.Manifest.Input.Digest = digest
	state.Manifest.RowsBefore = ds.NumRows()
	state.Manifest.ColumnsBefore = ds.NumColumns()

	if m := s.opts.Metrics; m != nil {
		m.RowsLoaded.Add(ctx, int64(ds.NumRows()))
	}

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"input.path":    state.InputPath,
		"input.size":    size,
		"input.rows":    ds.NumRows(),
		"input.columns": ds.NumColumns(),
	})

	step := state.GetStep(s.ID())
	step.SetMetadata(MetaRows, ds.NumRows())
	step.SetMetadata(MetaColumns, ds.NumColumns())
	return nil
}

// PreProfileStage measures the missing-value marker on the raw data
type PreProfileStage struct {
	BaseStage
	opts *StageOptions
}

// NewPreProfileStage creates a new pre-cleaning profile Step
func NewPreProfileStage(opts *StageOptions) *PreProfileStage {
	return &PreProfileStage{BaseStage: NewBaseStage(StageIDPreProfile, StageNamePreProfile), opts: opts}
}

// Execute profiles state.Raw
func (s *PreProfileStage) Execute(ctx context.Context, state *RunState) error {
	cfg := s.opts.Config.Analysis

	profiles := dataprocessing.Profile(state.Raw, cfg.Sentinel)
	suggested := dataprocessing.SuggestExclusions(profiles, cfg.ExclusionThreshold)

	tables, err := s.opts.Summarizer.Frequencies(ctx, state.Raw, s.opts.Plan.PreFrequencies)
	if err != nil {
		return err
	}

	state.Results.Profiles = profiles
	state.Results.SuggestedExclusions = suggested
	state.Results.PreFrequencies = tables
	state.Manifest.SuggestedExclusions = suggested

	if len(suggested) > 0 {
		s.opts.Logger.InfoContext(ctx, "columns above missing-value threshold",
			slog.Any("columns", suggested),
			slog.Float64("threshold", cfg.ExclusionThreshold))
	}
	return nil
}

// PruneStage drops the fixed excluded columns
type PruneStage struct {
	BaseStage
	opts *StageOptions
}

// NewPruneStage creates a new prune Step
func NewPruneStage(opts *StageOptions) *PruneStage {
	return &PruneStage{BaseStage: NewBaseStage(StageIDPrune, StageNamePrune), opts: opts}
}

// Execute drops config.ExcludedColumns from state.Raw into state.Pruned
func (s *PruneStage) Execute(ctx context.Context, state *RunState) error {
	pruned, err := dataprocessing.DropColumns(state.Raw, config.ExcludedColumns)
	if err != nil {
		return err
	}

	state.Pruned = pruned
	state.Manifest.DroppedColumns = append([]string(nil), config.ExcludedColumns...)
	state.GetStep(s.ID()).SetMetadata(MetaColumns, pruned.NumColumns())
	return nil
}

// NormalizeStage rewrites the missing-value marker
type NormalizeStage struct {
	BaseStage
	opts *StageOptions
}

// NewNormalizeStage creates a new normalize Step
func NewNormalizeStage(opts *StageOptions) *NormalizeStage {
	return &NormalizeStage{BaseStage: NewBaseStage(StageIDNormalize, StageNameNormalize), opts: opts}
}

// Execute replaces the sentinel in state.Pruned into state.Cleaned
func (s *NormalizeStage) Execute(ctx context.Context, state *RunState) error {
	cfg := s.opts.Config.Analysis

	cleaned, n := dataprocessing.ReplaceValue(state.Pruned, cfg.Sentinel, cfg.Replacement)

	state.Cleaned = cleaned
	state.ReplacedCells = n
	state.Manifest.ReplacedCells = n
	state.Manifest.RowsAfter = cleaned.NumRows()
	state.Manifest.ColumnsAfter = cleaned.NumColumns()

	if m := s.opts.Metrics; m != nil {
		m.CellsReplaced.Add(ctx, int64(n))
	}

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{"cells.replaced": n})
	state.GetStep(s.ID()).SetMetadata(MetaReplacedCells, n)
	s.opts.Logger.InfoContext(ctx, "missing values normalized",
		slog.String("sentinel", cfg.Sentinel),
		slog.String("replacement", cfg.Replacement),
		slog.Int("cells", n),
		slog.Int("replacement_cells", dataprocessing.CountValue(cleaned, cfg.Replacement)))
	return nil
}

// PostProfileStage inspects the cleaned dataset
type PostProfileStage struct {
	BaseStage
	opts *StageOptions
}

// NewPostProfileStage creates a new post-cleaning inspection Step
func NewPostProfileStage(opts *StageOptions) *PostProfileStage {
	return &PostProfileStage{BaseStage: NewBaseStage(StageIDPostProfile, StageNamePostProfile), opts: opts}
}

// Execute fills the info, numeric summaries and check frequencies
func (s *PostProfileStage) Execute(ctx context.Context, state *RunState) error {
	ds := state.Cleaned

	descriptions := make([]*dataprocessing.Description, 0)
	for _, column := range s.opts.Plan.describeColumns(ds) {
		d, err := dataprocessing.Describe(ds, column)
		if err != nil {
			return err
		}
		descriptions = append(descriptions, d)
	}

	tables, err := s.opts.Summarizer.Frequencies(ctx, ds, s.opts.Plan.PostFrequencies)
	if err != nil {
		return err
	}

	state.Results.Info = dataprocessing.Info(ds)
	state.Results.Descriptions = descriptions
	state.Results.PostFrequencies = tables
	return nil
}

// SummarizeStage builds the charted frequencies and cross-tabulations
type SummarizeStage struct {
	BaseStage
	opts *StageOptions
}

// NewSummarizeStage creates a new summarize Step
func NewSummarizeStage(opts *StageOptions) *SummarizeStage {
	return &SummarizeStage{BaseStage: NewBaseStage(StageIDSummarize, StageNameSummarize), opts: opts}
}

// Execute aggregates state.Cleaned
func (s *SummarizeStage) Execute(ctx context.Context, state *RunState) error {
	tables, err := s.opts.Summarizer.Frequencies(ctx, state.Cleaned, s.opts.Plan.Frequencies)
	if err != nil {
		return err
	}
	tabs, err := s.opts.Summarizer.CrossTabs(ctx, state.Cleaned, s.opts.Plan.CrossTabs)
	if err != nil {
		return err
	}

	state.Results.Frequencies = tables
	state.Results.CrossTabs = tabs
	return nil
}

// SubsetStage summarizes the filtered subsets of the plan
type SubsetStage struct {
	BaseStage
	opts *StageOptions
}

// NewSubsetStage creates a new subset Step
func NewSubsetStage(opts *StageOptions) *SubsetStage {
	return &SubsetStage{BaseStage: NewBaseStage(StageIDSubsets, StageNameSubsets), opts: opts}
}

// Execute filters state.Cleaned once per planned subset
func (s *SubsetStage) Execute(ctx context.Context, state *RunState) error {
	summaries := make([]*dataprocessing.SubsetSummary, 0, len(s.opts.Plan.Subsets))
	for _, sp := range s.opts.Plan.Subsets {
		filters := make([]dataprocessing.FilterStep, 0, len(sp.Filters))
		for _, fp := range sp.Filters {
			f, err := fp.Build()
			if err != nil {
				return fmt.Errorf("subset %s: %w", sp.Name, err)
			}
			filters = append(filters, f)
		}

		summary, err := s.opts.Summarizer.Subset(ctx, state.Cleaned, sp.Name, filters, sp.Column)
		if err != nil {
			return err
		}
		summaries = append(summaries, summary)
	}

	state.Results.Subsets = summaries
	return nil
}

// RenderStage draws a chart for every charted aggregate
type RenderStage struct {
	BaseStage
	opts *StageOptions
}

// NewRenderStage creates a new render Step
func NewRenderStage(opts *StageOptions) *RenderStage {
	return &RenderStage{BaseStage: NewBaseStage(StageIDRender, StageNameRender), opts: opts}
}

// ChartSpecs lists the charts of a run's results in output order, labeled
// by plan
func ChartSpecs(results Results, plan Plan) []charts.Spec {
	specs := make([]charts.Spec, 0, len(results.Frequencies)+len(results.CrossTabs)+len(results.Subsets))
	for _, t := range results.Frequencies {
		specs = append(specs, plan.Label(charts.FrequencySpec(t)))
	}
	for _, ct := range results.CrossTabs {
		specs = append(specs, plan.Label(charts.CrossTabSpec(ct)))
	}
	for _, s := range results.Subsets {
		specs = append(specs, plan.Label(charts.SubsetSpec(s)))
	}
	return specs
}

// Execute renders the charts. An aggregate with no values has nothing to
// draw and is skipped with a warning.
func (s *RenderStage) Execute(ctx context.Context, state *RunState) error {
	if err := s.opts.Validator.ValidateOutputDirectory(s.opts.Paths.OutputDir); err != nil {
		return err
	}
	if err := s.opts.Paths.EnsureDirectories(); err != nil {
		return err
	}

	rendered, skipped := 0, 0
	for _, spec := range ChartSpecs(state.Results, s.opts.Plan) {
		if len(spec.Categories) == 0 {
			s.opts.Logger.WarnContext(ctx, "chart skipped, no values",
				slog.String("chart", spec.Name))
			skipped++
			continue
		}

		path, err := s.opts.Renderer.Render(ctx, spec)
		if err != nil {
			return err
		}
		recordArtifact(ctx, state, s.opts.Metrics, ArtifactChart, spec.Name, path)
		rendered++
	}

	step := state.GetStep(s.ID())
	step.SetMetadata(MetaCharts, rendered)
	step.SetMetadata(MetaSkipped, skipped)
	return nil
}

// ExportStage writes every table as CSV and, when enabled, one workbook
type ExportStage struct {
	BaseStage
	opts *StageOptions
}

// NewExportStage creates a new export Step
func NewExportStage(opts *StageOptions) *ExportStage {
	return &ExportStage{BaseStage: NewBaseStage(StageIDExport, StageNameExport), opts: opts}
}

// Tables lays out every result of a run as exportable tables
func Tables(results Results) []exporter.Table {
	var tables []exporter.Table
	if len(results.Profiles) > 0 {
		tables = append(tables, exporter.ProfileRecords(results.Profiles))
	}
	for _, t := range results.PreFrequencies {
		tables = append(tables, prefixed("pre_", exporter.FrequencyRecords(t)))
	}
	if len(results.Info.Columns) > 0 {
		tables = append(tables, exporter.InfoRecords(results.Info))
	}
	if len(results.Descriptions) > 0 {
		tables = append(tables, exporter.DescribeRecords(results.Descriptions))
	}
	for _, t := range results.PostFrequencies {
		tables = append(tables, prefixed("post_", exporter.FrequencyRecords(t)))
	}
	for _, t := range results.Frequencies {
		tables = append(tables, exporter.FrequencyRecords(t))
	}
	for _, ct := range results.CrossTabs {
		tables = append(tables, exporter.CrossTabRecords(ct))
	}
	for _, sub := range results.Subsets {
		tables = append(tables, exporter.SubsetRecords(sub))
	}
	return tables
}

func prefixed(prefix string, t exporter.Table) exporter.Table {
	t.Name = prefix + t.Name
	return t
}

// Execute writes the tables
func (s *ExportStage) Execute(ctx context.Context, state *RunState) error {
	out := s.opts.Config.Output
	tables := Tables(state.Results)

	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := s.opts.CSV.WriteTable(t, out.CSVBOM)
		if err != nil {
			return err
		}
		recordArtifact(ctx, state, s.opts.Metrics, ArtifactTable, t.Name, path)
	}

	if out.Workbook && len(tables) > 0 {
		path := s.opts.Paths.WorkbookFile
		if err := s.opts.Workbook.Write(ctx, path, tables); err != nil {
			return err
		}
		recordArtifact(ctx, state, s.opts.Metrics, ArtifactWorkbook, config.WorkbookFileName, path)
	}

	state.GetStep(s.ID()).SetMetadata(MetaTables, len(tables))
	return nil
}

func recordArtifact(ctx context.Context, state *RunState, m *infrastructure.AnalysisMetrics, kind, name, path string) {
	state.Manifest.AddArtifact(kind, name, path)
	if m != nil {
		m.ArtifactsWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}
