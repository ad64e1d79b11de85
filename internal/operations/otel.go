package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/namitajha/Diabetes-data-Namita/internal/infrastructure"
)

// RunTracer provides OpenTelemetry instrumentation for analysis runs
type RunTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.AnalysisMetrics
}

// NewRunTracer creates a tracer and the run's instruments from providers
func NewRunTracer(providers *infrastructure.OTelProviders) (*RunTracer, error) {
	metrics, err := infrastructure.CreateAnalysisMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis metrics: %w", err)
	}

	return &RunTracer{
		tracer:  providers.Tracer,
		metrics: metrics,
	}, nil
}

// Metrics returns the run's instruments
func (rt *RunTracer) Metrics() *infrastructure.AnalysisMetrics {
	return rt.metrics
}

// TraceRun creates a span for the entire run
func (rt *RunTracer) TraceRun(ctx context.Context, runID, input string) (context.Context, trace.Span) {
	return rt.tracer.Start(ctx, "analysis.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.input", input),
		),
	)
}

// TraceStep creates a span for one Step
func (rt *RunTracer) TraceStep(ctx context.Context, runID, stepID, stepName string) (context.Context, trace.Span) {
	return rt.tracer.Start(ctx, fmt.Sprintf("analysis.step.%s", stepID),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("step.id", stepID),
			attribute.String("step.name", stepName),
		),
	)
}

// RecordStepCompletion records the step metrics and closes span
func (rt *RunTracer) RecordStepCompletion(ctx context.Context, span trace.Span, stepID string, duration time.Duration, err error) {
	infrastructure.RecordStepMetrics(ctx, rt.metrics, stepID, duration, err)

	span.SetAttributes(attribute.Float64("step.duration_seconds", duration.Seconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "step completed")
	}
	span.End()
}

// RecordRunCompletion closes the run span with its final status
func (rt *RunTracer) RecordRunCompletion(span trace.Span, status RunStatusValue, duration time.Duration, err error) {
	span.SetAttributes(
		attribute.String("run.status", string(status)),
		attribute.Float64("run.duration_seconds", duration.Seconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "run completed")
	}
	span.End()
}
