package operations

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/namitajha/Diabetes-data-Namita/internal/config"
	apperrors "github.com/namitajha/Diabetes-data-Namita/internal/errors"
	"github.com/namitajha/Diabetes-data-Namita/internal/infrastructure"
	"github.com/namitajha/Diabetes-data-Namita/internal/shared/testutil"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")
	return cfg
}

func newTestProviders(t *testing.T, logger *slog.Logger) *infrastructure.OTelProviders {
	t.Helper()
	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		ServiceName:    infrastructure.ServiceName,
		ServiceVersion: config.AppVersion,
		TraceExporter:  "none",
		EnableMetrics:  true,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = providers.Shutdown(context.Background()) })
	return providers
}

func TestRunnerFullAnalysis(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	input := testutil.WriteFile(t, "diabetic_data.csv", testutil.EncounterCSV)
	cfg := newTestConfig(t)

	opts := NewStageOptions(cfg, logger)
	runner, err := NewRunner(opts, newTestProviders(t, logger), DefaultSteps(opts))
	require.NoError(t, err)
	require.NotNil(t, opts.Metrics)

	state, err := runner.Run(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, state)

	assert.Equal(t, RunStatusCompleted, state.Status)
	require.Len(t, state.Steps, 9)
	for _, s := range state.Steps {
		assert.Equal(t, StepStatusCompleted, s.Status, s.ID)
	}

	// Shape
	m := state.Manifest
	assert.Equal(t, 10, m.RowsBefore)
	assert.Equal(t, 29, m.ColumnsBefore)
	assert.Equal(t, 10, m.RowsAfter)
	assert.Equal(t, 29-len(config.ExcludedColumns), m.ColumnsAfter)
	assert.Equal(t, config.ExcludedColumns, m.DroppedColumns)
	// 31 markers, 20 of them in dropped weight and payer_code
	assert.Equal(t, 11, m.ReplacedCells)
	assert.Equal(t, 11, state.ReplacedCells)
	assert.Equal(t, []string{"weight", "payer_code", "medical_specialty"}, m.SuggestedExclusions)

	sum := blake2b.Sum256([]byte(testutil.EncounterCSV))
	assert.Equal(t, hex.EncodeToString(sum[:]), m.Input.Digest)
	assert.Equal(t, int64(len(testutil.EncounterCSV)), m.Input.Size)

	// No marker survives in the cleaned data
	for _, c := range state.Cleaned.Columns() {
		for i := 0; i < state.Cleaned.NumRows(); i++ {
			v, _ := state.Cleaned.Value(i, c)
			assert.NotEqual(t, "?", v)
		}
	}

	// Subsets
	require.Len(t, state.Results.Subsets, 2)
	assert.Equal(t, 1, state.Results.Subsets[0].Rows)
	assert.Equal(t, 6, state.Results.Subsets[1].Rows)

	// Artifacts
	assert.Len(t, m.ArtifactsOf(ArtifactChart), 8)
	assert.Len(t, m.ArtifactsOf(ArtifactTable), 19)
	assert.Len(t, m.ArtifactsOf(ArtifactWorkbook), 1)
	assert.Len(t, m.ArtifactsOf(ArtifactMetrics), 1)

	paths := opts.Paths
	for _, p := range []string{
		paths.GetChartPath("freq_gender", "png"),
		paths.GetChartPath("crosstab_age_by_readmitted", "png"),
		paths.GetChartPath("subset_medication_change", "png"),
		paths.GetTablePath("pre_freq_weight"),
		paths.GetTablePath("post_freq_race"),
		paths.GetTablePath("crosstab_A1Cresult_by_readmitted"),
		paths.GetTablePath("describe"),
		paths.WorkbookFile,
	} {
		assert.FileExists(t, p)
	}

	loaded, err := LoadManifestFromFile(paths.ManifestFile)
	require.NoError(t, err)
	assert.Equal(t, state.ID, loaded.RunID)
	assert.Equal(t, "completed", loaded.Status)
	assert.Len(t, loaded.Stages, 9)
	assert.Equal(t, m.Input.Digest, loaded.Input.Digest)

	metrics, err := os.ReadFile(paths.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "dataset_cells_replaced")
	assert.Contains(t, string(metrics), "analysis_steps")
	assert.Contains(t, string(metrics), `step_id="normalize"`)

	specs := ChartSpecs(state.Results, opts.Plan)
	require.Len(t, specs, 8)
	assert.Equal(t, "Gender distribution of the data", specs[0].Title)
	assert.Equal(t, "%age", specs[0].YLabel)
	assert.Equal(t, "Age v/s Readmission", specs[4].Title)
	assert.Equal(t, "Patients with HbA1c tested when there was a change in medication", specs[7].Title)

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "executing_stage")
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "run_completed")
	testutil.AssertLogAttr(t, handler, "total_stages", 9)
}

func TestRunnerUsesTraceIDAsRunID(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	cfg := newTestConfig(t)
	opts := NewStageOptions(cfg, logger)

	runner, err := NewRunner(opts, nil, []Step{newStubStep("one", nil)}, WithPersist(false))
	require.NoError(t, err)

	ctx := infrastructure.WithTraceID(context.Background(), "trace-123")
	state, err := runner.Run(ctx, "unused.csv")
	require.NoError(t, err)
	assert.Equal(t, "trace-123", state.ID)
	assert.Equal(t, "trace-123", state.Manifest.RunID)
}

func TestRunnerMissingInput(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	cfg := newTestConfig(t)
	opts := NewStageOptions(cfg, logger)

	runner, err := NewRunner(opts, newTestProviders(t, logger), DefaultSteps(opts))
	require.NoError(t, err)

	state, err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
	assert.Equal(t, apperrors.ErrTypeNotFound, apperrors.TypeOf(err))

	require.NotNil(t, state)
	assert.Equal(t, RunStatusFailed, state.Status)
	require.Len(t, state.Steps, 1)
	assert.Equal(t, StepStatusFailed, state.Steps[0].Status)
	assert.Equal(t, "failed", state.Manifest.Status)

	assert.NoFileExists(t, opts.Paths.ManifestFile)
	assert.NoFileExists(t, opts.Paths.MetricsFile)
	testutil.AssertLogContains(t, handler, slog.LevelError, "run_failed")
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	opts := NewStageOptions(newTestConfig(t), logger)

	first := newStubStep("first", nil)
	first.run = func(state *RunState) {
		state.GetStep("first").SetMetadata(MetaRows, 3)
	}
	failing := newStubStep("second", errors.New("boom"))
	never := newStubStep("third", nil)

	runner, err := NewRunner(opts, nil, []Step{first, failing, never})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, runner.Steps())

	state, err := runner.Run(context.Background(), "in.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second")

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Zero(t, never.calls)

	assert.True(t, state.Manifest.IsStageCompleted("first"))
	assert.Equal(t, 3, state.Manifest.Stages[0].Metadata[MetaRows])
	assert.Equal(t, "failed", state.Manifest.Stages[1].Status)
	assert.Len(t, state.Manifest.Stages, 2)
	assert.NoFileExists(t, opts.Paths.ManifestFile)
}

func TestRunnerCancelled(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	opts := NewStageOptions(newTestConfig(t), logger)
	step := newStubStep("only", nil)

	runner, err := NewRunner(opts, nil, []Step{step})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := runner.Run(ctx, "in.csv")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, step.calls)
	assert.Equal(t, RunStatusFailed, state.Status)
	testutil.AssertLogContains(t, handler, slog.LevelWarn, "run_cancelled")
}

func TestRunnerRejectsDuplicateSteps(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	opts := NewStageOptions(newTestConfig(t), logger)

	_, err := NewRunner(opts, nil, []Step{newStubStep("a", nil), newStubStep("a", nil)})
	assert.Error(t, err)
}

func TestRunnerCleaningStepsOnly(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	input := testutil.WriteFile(t, "diabetic_data.csv", testutil.EncounterCSV)
	opts := NewStageOptions(newTestConfig(t), logger)

	runner, err := NewRunner(opts, nil, CleaningSteps(opts), WithPersist(false))
	require.NoError(t, err)

	state, err := runner.Run(context.Background(), input)
	require.NoError(t, err)

	require.NotNil(t, state.Cleaned)
	assert.Len(t, state.Results.PreFrequencies, 5)
	assert.NotEmpty(t, state.Results.Profiles)
	assert.Empty(t, state.Manifest.Artifacts)
	assert.NoDirExists(t, opts.Paths.OutputDir)
}

func TestRunnerRecordsStepSpanAttributes(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	input := testutil.WriteFile(t, "diabetic_data.csv", testutil.EncounterCSV)
	opts := NewStageOptions(newTestConfig(t), logger)

	var spans bytes.Buffer
	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.TraceExporter = "stdout"
	otelCfg.EnableMetrics = false
	otelCfg.TraceWriter = &spans
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	require.NoError(t, err)

	runner, err := NewRunner(opts, providers, CleaningSteps(opts), WithPersist(false))
	require.NoError(t, err)
	_, err = runner.Run(context.Background(), input)
	require.NoError(t, err)
	require.NoError(t, providers.Shutdown(context.Background()))

	out := spans.String()
	assert.Contains(t, out, `"Name": "analysis.step.load"`)
	assert.Contains(t, out, `"Key": "input.path"`)
	assert.Contains(t, out, `"Key": "input.rows"`)
	assert.Contains(t, out, `"Key": "cells.replaced"`)
}
