package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/namitajha/Diabetes-data-Namita/internal/config"
	apperrors "github.com/namitajha/Diabetes-data-Namita/internal/errors"
	"github.com/namitajha/Diabetes-data-Namita/internal/infrastructure"
	"github.com/namitajha/Diabetes-data-Namita/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(execute(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.reportError(ctx, stderr, err)
		return 1
	}
	return 0
}

// app holds the state shared by the subcommands of one invocation
type app struct {
	configPath string
	input      string
	outDir     string
	logLevel   string

	cfg       *config.Config
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Exploratory analysis of the diabetes readmission dataset",
		Long: `Loads the diabetic encounter dataset, drops the excluded columns, rewrites the
"?" missing-value marker and produces frequency tables, cross-tabulations,
filtered subsets and charts.

Settings come from a YAML file (--config or diabetes-eda.yaml) and DIABETES_*
environment variables; the flags below take precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVarP(&a.input, "input", "i", "", "dataset to analyze (.csv or .xlsx)")
	flags.StringVarP(&a.outDir, "out", "o", "", "output directory for charts, tables and the manifest")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.runCommand(),
		a.profileCommand(),
		a.freqCommand(),
		a.crosstabCommand(),
		versionCommand(),
	)
	return root
}

// setup loads the configuration, applies the flags and starts logging and
// telemetry
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return apperrors.NewConfigError("load configuration", err)
	}

	if a.input != "" {
		cfg.Analysis.InputPath = a.input
	}
	if a.outDir != "" {
		cfg.Output.Dir = a.outDir
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return apperrors.NewConfigError("invalid configuration", err)
	}
	if cfg.Logging.Output != "console" && cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = config.NewPaths(cfg.Output.Dir).LogFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return apperrors.NewConfigError("initialize logger", err)
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return apperrors.NewConfigError("initialize telemetry", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.providers = providers

	logger.DebugContext(cmd.Context(), "configuration loaded",
		slog.String("command", cmd.Name()),
		slog.String("input", cfg.Analysis.InputPath),
		slog.String("output_dir", cfg.Output.Dir))
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.providers != nil {
		if err := a.providers.Shutdown(context.WithoutCancel(ctx)); err != nil {
			a.logger.WarnContext(ctx, "telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}
	return infrastructure.CloseLogFile()
}

// reportError logs err with its type and context and prints one line
func (a *app) reportError(ctx context.Context, stderr io.Writer, err error) {
	logger := a.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{slog.String("error", err.Error())}
	if t := apperrors.TypeOf(err); t != "" {
		attrs = append(attrs, slog.String("error_type", string(t)))
	}
	if c := apperrors.ContextOf(err); len(c) > 0 {
		attrs = append(attrs, slog.Any("error_context", c))
	}
	logger.ErrorContext(ctx, "analysis failed", attrs...)

	fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
	_ = a.teardown(ctx)
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No configuration or logging is needed to print the version
		PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}
