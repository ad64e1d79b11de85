package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTelInitialization_Defaults(t *testing.T) {
	providers, err := InitializeOTel(nil, nil)
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.Nil(t, providers.TracerProvider, "tracing is off by default")
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Registry)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelInitialization_StdoutTracing(t *testing.T) {
	var spans bytes.Buffer
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "stdout"
	cfg.EnableMetrics = false
	cfg.TraceWriter = &spans

	providers, err := InitializeOTel(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)
	assert.Nil(t, providers.Registry)

	ctx, span := providers.Tracer.Start(context.Background(), "load")
	assert.True(t, span.SpanContext().IsValid())
	SetSpanAttributes(ctx, map[string]interface{}{"input.rows": 3, "input.path": "x.csv", "sampled": true})
	RecordError(ctx, errors.New("boom"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	out := spans.String()
	assert.Contains(t, out, `"Name": "load"`)
	assert.Contains(t, out, `"Key": "input.path"`)
	assert.Contains(t, out, `"Key": "input.rows"`)
}

func TestOTelInitialization_UnknownExporter(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "otlp"

	_, err := InitializeOTel(cfg, nil)
	assert.Error(t, err)
}

func TestWriteMetrics(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateAnalysisMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	RecordStepMetrics(ctx, metrics, "load", 150*time.Millisecond, nil)
	RecordStepMetrics(ctx, metrics, "prune", time.Millisecond, errors.New("missing column"))
	metrics.RowsLoaded.Add(ctx, 3)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, providers.WriteMetrics(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "analysis_steps_total")
	assert.Contains(t, text, "analysis_step_errors_total")
	assert.Contains(t, text, "dataset_rows_loaded_total")
	assert.Contains(t, text, `step_id="load"`)
	assert.Contains(t, text, `step_id="prune"`)
	assert.NotContains(t, text, `"step.id"`)
}

func TestWriteMetrics_Disabled(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.EnableMetrics = false
	providers, err := InitializeOTel(cfg, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, providers.WriteMetrics(path))
	assert.NoFileExists(t, path)

	// noop meter still hands out instruments
	metrics, err := CreateAnalysisMetrics(providers.Meter)
	require.NoError(t, err)
	RecordStepMetrics(context.Background(), metrics, "load", time.Second, nil)
	RecordStepMetrics(context.Background(), nil, "load", time.Second, nil)
}
