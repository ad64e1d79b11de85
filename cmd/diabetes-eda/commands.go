package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/namitajha/Diabetes-data-Namita/internal/charts"
	"github.com/namitajha/Diabetes-data-Namita/internal/dataprocessing"
	"github.com/namitajha/Diabetes-data-Namita/internal/exporter"
	"github.com/namitajha/Diabetes-data-Namita/internal/operations"
)

func (a *app) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full analysis and write every artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := operations.NewStageOptions(a.cfg, a.logger)

			runner, err := operations.NewRunner(opts, a.providers, operations.DefaultSteps(opts))
			if err != nil {
				return err
			}
			state, err := runner.Run(ctx, a.cfg.Analysis.InputPath)
			if err != nil {
				return err
			}

			return printRunSummary(cmd.OutOrStdout(), state, opts)
		},
	}
}

func printRunSummary(out io.Writer, state *operations.RunState, opts *operations.StageOptions) error {
	m := state.Manifest
	fmt.Fprintf(out, "Rows: %d, columns: %d -> %d, %q cells replaced: %d\n",
		m.RowsBefore, m.ColumnsBefore, m.ColumnsAfter, opts.Config.Analysis.Sentinel, m.ReplacedCells)

	var tables []exporter.Table
	for _, t := range state.Results.Frequencies {
		tables = append(tables, exporter.FrequencyRecords(t))
	}
	for _, ct := range state.Results.CrossTabs {
		tables = append(tables, exporter.CrossTabRecords(ct))
	}
	for _, s := range state.Results.Subsets {
		tables = append(tables, exporter.SubsetRecords(s))
	}
	if err := exporter.NewConsoleWriter(out).WriteTables(tables); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d charts, %d tables written to %s\n",
		len(m.ArtifactsOf(operations.ArtifactChart)),
		len(m.ArtifactsOf(operations.ArtifactTable)),
		opts.Paths.OutputDir)
	fmt.Fprintf(out, "Manifest: %s\n", opts.Paths.ManifestFile)
	return nil
}

func (a *app) profileCommand() *cobra.Command {
	var head int

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Report missing values and raw frequencies without writing artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _, err := a.clean(cmd.Context())
			if err != nil {
				return err
			}

			var tables []exporter.Table
			if head > 0 {
				tables = append(tables, exporter.DatasetRecords("head", dataprocessing.Head(state.Raw, head)))
			}
			tables = append(tables, exporter.ProfileRecords(state.Results.Profiles))
			for _, t := range state.Results.PreFrequencies {
				tables = append(tables, exporter.FrequencyRecords(t))
			}

			out := cmd.OutOrStdout()
			if err := exporter.NewConsoleWriter(out).WriteTables(tables); err != nil {
				return err
			}

			if len(state.Results.SuggestedExclusions) > 0 {
				fmt.Fprintf(out, "\nMissing rate above %.0f%%: %s\n",
					a.cfg.Analysis.ExclusionThreshold*100,
					strings.Join(state.Results.SuggestedExclusions, ", "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&head, "head", 0, "also print the first N rows of the raw dataset")
	return cmd
}

func (a *app) freqCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "freq <column>...",
		Short: "Print frequency tables of the cleaned dataset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, opts, err := a.clean(ctx)
			if err != nil {
				return err
			}

			tables, err := opts.Summarizer.Frequencies(ctx, state.Cleaned, args)
			if err != nil {
				return err
			}

			console := exporter.NewConsoleWriter(cmd.OutOrStdout())
			for _, t := range tables {
				if err := console.WriteTable(exporter.FrequencyRecords(t)); err != nil {
					return err
				}
				if save {
					if err := a.save(ctx, opts, exporter.FrequencyRecords(t), opts.Plan.Label(charts.FrequencySpec(t))); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "also write the table and chart to the output directory")
	return cmd
}

func (a *app) crosstabCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "crosstab <group> <outcome>",
		Short: "Print the count cross-tabulation of two columns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, opts, err := a.clean(ctx)
			if err != nil {
				return err
			}

			tabs, err := opts.Summarizer.CrossTabs(ctx, state.Cleaned, [][2]string{{args[0], args[1]}})
			if err != nil {
				return err
			}
			ct := tabs[0]

			if err := exporter.NewConsoleWriter(cmd.OutOrStdout()).WriteTable(exporter.CrossTabRecords(ct)); err != nil {
				return err
			}
			if save {
				return a.save(ctx, opts, exporter.CrossTabRecords(ct), opts.Plan.Label(charts.CrossTabSpec(ct)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "also write the table and chart to the output directory")
	return cmd
}

// clean runs the loading and cleaning steps only
func (a *app) clean(ctx context.Context) (*operations.RunState, *operations.StageOptions, error) {
	opts := operations.NewStageOptions(a.cfg, a.logger)

	runner, err := operations.NewRunner(opts, a.providers, operations.CleaningSteps(opts),
		operations.WithPersist(false))
	if err != nil {
		return nil, nil, err
	}
	state, err := runner.Run(ctx, a.cfg.Analysis.InputPath)
	if err != nil {
		return nil, nil, err
	}
	return state, opts, nil
}

// save writes one table as CSV and renders its chart
func (a *app) save(ctx context.Context, opts *operations.StageOptions, table exporter.Table, spec charts.Spec) error {
	if err := opts.Paths.EnsureDirectories(); err != nil {
		return err
	}

	tablePath, err := opts.CSV.WriteTable(table, a.cfg.Output.CSVBOM)
	if err != nil {
		return err
	}

	chartPath := ""
	if len(spec.Categories) > 0 {
		if chartPath, err = opts.Renderer.Render(ctx, spec); err != nil {
			return err
		}
	}

	a.logger.InfoContext(ctx, "saved",
		slog.String("table", tablePath),
		slog.String("chart", chartPath))
	return nil
}
