// Package operations runs the exploratory analysis as a sequence of steps.
//
// A Runner executes the registered steps in order against one input file.
// Each Step reads the RunState left by the steps before it and adds its own
// results: the load step fills Raw, pruning fills Pruned, normalization
// fills Cleaned, and the aggregation steps fill Results. Rendering and
// export run last, so nothing is written until every computation has
// succeeded.
//
// Every run records a RunManifest describing the input (path, size and
// BLAKE2b digest), the row and column counts before and after cleaning,
// the status of each step and the artifacts written. A successful run
// saves it next to the outputs together with a Prometheus textfile of the
// run metrics.
//
// Example usage:
//
//	opts := operations.NewStageOptions(cfg, logger)
//	runner, err := operations.NewRunner(opts, providers, operations.DefaultSteps(opts))
//	if err != nil {
//		return err
//	}
//	state, err := runner.Run(ctx, cfg.Analysis.InputPath)
//
// What the analysis computes is described by a Plan. DefaultPlan returns
// the frequency tables, cross-tabulations and subsets of the standard
// report; the diagnosis subset follows the configured code and match mode.
package operations
