package operations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/namitajha/Diabetes-data-Namita/internal/config"
	"github.com/namitajha/Diabetes-data-Namita/internal/infrastructure"
)

// Runner executes the steps of an analysis in order and aborts on the
// first failure
type Runner struct {
	opts      *StageOptions
	registry  *Registry
	providers *infrastructure.OTelProviders
	tracer    *RunTracer
	logger    *slog.Logger
	persist   bool
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithPersist controls whether a successful run writes metrics.prom and
// manifest.json. It is on by default.
func WithPersist(persist bool) RunnerOption {
	return func(r *Runner) {
		r.persist = persist
	}
}

// NewRunner creates a runner for steps. Nil providers disable tracing and
// metrics. opts.Metrics is set to the runner's instruments.
func NewRunner(opts *StageOptions, providers *infrastructure.OTelProviders, steps []Step, options ...RunnerOption) (*Runner, error) {
	if providers == nil {
		var err error
		providers, err = infrastructure.InitializeOTel(&infrastructure.OTelConfig{
			ServiceName:    infrastructure.ServiceName,
			ServiceVersion: config.AppVersion,
			TraceExporter:  "none",
		}, opts.Logger)
		if err != nil {
			return nil, err
		}
	}

	tracer, err := NewRunTracer(providers)
	if err != nil {
		return nil, err
	}
	opts.Metrics = tracer.Metrics()

	registry := NewRegistry()
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}

	r := &Runner{
		opts:      opts,
		registry:  registry,
		providers: providers,
		tracer:    tracer,
		logger:    opts.Logger,
		persist:   true,
	}
	for _, o := range options {
		o(r)
	}
	return r, nil
}

// Steps returns the IDs of the runner's steps in execution order
func (r *Runner) Steps() []string {
	return r.registry.ListIDs()
}

// Run executes every step against input. The trace ID of ctx becomes the
// run ID; one is generated if ctx has none. The returned state is non-nil
// even when the run fails.
func (r *Runner) Run(ctx context.Context, input string) (*RunState, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)

	state := NewRunState(runID, input)
	state.Start()

	ctx, span := r.tracer.TraceRun(ctx, runID, input)
	steps := r.registry.List()

	r.logger.InfoContext(ctx, "run_start",
		slog.String("run_id", runID),
		slog.String("input", input),
		slog.Int("step_count", len(steps)))

	err := r.execute(ctx, state, steps)
	if err == nil && r.persist {
		err = r.finalize(ctx, state)
	}

	if err != nil {
		state.Fail(err)
		r.tracer.RecordRunCompletion(span, state.Status, state.Duration(), err)
		r.logger.ErrorContext(ctx, "run_failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()))
		return state, err
	}

	state.Complete()
	r.tracer.RecordRunCompletion(span, state.Status, state.Duration(), nil)
	r.logger.InfoContext(ctx, "run_completed",
		slog.String("run_id", runID),
		slog.Duration("duration", state.Duration()),
		slog.Int("artifacts", len(state.Manifest.Artifacts)))
	return state, nil
}

func (r *Runner) execute(ctx context.Context, state *RunState, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			r.logger.WarnContext(ctx, "run_cancelled",
				slog.String("run_id", state.ID),
				slog.String("step", step.ID()))
			return err
		}

		stepState := NewStepState(step.ID(), step.Name())
		state.AddStep(stepState)

		r.logger.InfoContext(ctx, "executing_stage",
			slog.String("run_id", state.ID),
			slog.String("step", step.ID()),
			slog.Int("stage_number", i+1),
			slog.Int("total_stages", len(steps)))

		stepCtx, span := r.tracer.TraceStep(ctx, state.ID, step.ID(), step.Name())
		stepState.Start()
		state.Manifest.RecordStageStart(step.ID(), step.Name())

		err := step.Execute(stepCtx, state)
		if err != nil {
			stepState.Fail(err)
			state.Manifest.RecordStageFailure(step.ID(), err)
			r.tracer.RecordStepCompletion(stepCtx, span, step.ID(), stepState.Duration(), err)
			return fmt.Errorf("%s: %w", step.ID(), err)
		}

		stepState.Complete()
		state.Manifest.RecordStageCompletion(step.ID(), stepState.Metadata)
		r.tracer.RecordStepCompletion(stepCtx, span, step.ID(), stepState.Duration(), nil)

		r.logger.DebugContext(ctx, "stage_completed",
			slog.String("step", step.ID()),
			slog.Duration("duration", stepState.Duration()))
	}
	return nil
}

// finalize writes the metrics textfile and the manifest
func (r *Runner) finalize(ctx context.Context, state *RunState) error {
	paths := r.opts.Paths
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	if r.providers.Registry != nil {
		if err := r.providers.WriteMetrics(paths.MetricsFile); err != nil {
			return err
		}
		state.Manifest.AddArtifact(ArtifactMetrics, config.MetricsFileName, paths.MetricsFile)
	}

	state.Manifest.Finish()
	if err := state.Manifest.SaveToFile(paths.ManifestFile); err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "manifest_written",
		slog.String("path", paths.ManifestFile))
	return nil
}
