package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/datacheck/internal/config"
	"github.com/nao1215/datacheck/internal/log"
	"github.com/nao1215/datacheck/internal/pipeline"
	"github.com/nao1215/datacheck/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file.csv]",
		Short: "Analyze a CSV file for data quality issues",
		Long: `Analyze runs all quality checks over a CSV file:
- Column type inference (numeric, categorical, temporal, boolean)
- Descriptive statistics for every column
- Missing value counts and percentages
- Whole-row duplicate detection
- Distribution shape (skewness, excess kurtosis)
- IQR-method outlier detection with configurable fences
- Pairwise Pearson correlations over numeric columns

A summary is printed to stdout and an Excel workbook with charts is
written into a timestamped output directory.

Examples:
  # Analyze a CSV file
  datacheck analyze sales.csv

  # Semicolon-separated file in Shift_JIS
  datacheck analyze --delimiter ";" --encoding shift_jis sales.csv

  # JSON report to a file, no workbook or charts
  datacheck analyze --json -o report.json --no-excel --no-plots sales.csv

  # Wider outlier fences and persistent history
  datacheck analyze --iqr-multiplier 3.0 --save sales.csv

Configuration file (.datacheck.yml) example:
  null_values: ["", "NA", "missing"]
  datasets:
    sales.csv:
      delimiter: ";"
      encoding: shift_jis
      ignore_columns: [internal_id]`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	// Input flags
	cmd.Flags().StringP("delimiter", "d", config.DefaultDelimiter,
		"CSV field delimiter (single character)")
	cmd.Flags().StringP("encoding", "e", "",
		"Input text encoding as an IANA name (default: UTF-8)")
	cmd.Flags().StringSliceP("null-values", "n", nil,
		"Cell values treated as null (overrides the default vocabulary)")

	// Analysis flags
	cmd.Flags().Float64P("iqr-multiplier", "q", config.DefaultIQRMultiplier,
		"Tukey fence multiplier for outlier detection")
	cmd.Flags().IntP("jobs", "j", 0,
		"Maximum number of concurrently running checks (0 = one per check)")

	// Output flags
	cmd.Flags().StringP("output-dir", "O", "",
		"Directory for the workbook and charts (default: timestamped directory)")
	cmd.Flags().Bool("json", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the stdout report to the specified file path")
	cmd.Flags().Bool("no-plots", false,
		"Skip PNG chart rendering")
	cmd.Flags().Bool("no-excel", false,
		"Skip the Excel workbook")

	// History flags
	cmd.Flags().BoolP("save", "s", false,
		"Save the report to the history database")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .datacheck.yml in current or home directory)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.InputPath = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.Delimiter, err = cmd.Flags().GetString("delimiter")
	if err != nil {
		return nil, err
	}

	cfg.Encoding, err = cmd.Flags().GetString("encoding")
	if err != nil {
		return nil, err
	}

	cfg.NullValues, err = cmd.Flags().GetStringSlice("null-values")
	if err != nil {
		return nil, err
	}

	cfg.IQRMultiplier, err = cmd.Flags().GetFloat64("iqr-multiplier")
	if err != nil {
		return nil, err
	}

	cfg.Jobs, err = cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoPlots, err = cmd.Flags().GetBool("no-plots")
	if err != nil {
		return nil, err
	}

	cfg.NoExcel, err = cmd.Flags().GetBool("no-excel")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}
	cfg.DBDir = config.XDGDataDir()

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load dataset overrides from the config file.
	// If the user explicitly specified a path, a missing file is an error;
	// otherwise a missing file silently means no overrides.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// runAnalyze executes the analysis.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	startTime := time.Now()
	outputDir := cfg.OutputDirName(startTime)

	logger.Debug("starting analysis",
		"input", cfg.InputPath,
		"output_dir", outputDir,
		"iqr_multiplier", cfg.IQRMultiplier,
	)

	run := &pipeline.Run{
		Config:    cfg,
		OutputDir: outputDir,
	}

	p := pipeline.DefaultPipeline(cfg, logger, pipeline.WithContinueOnError(true))
	if err := p.Execute(ctx, run); err != nil && run.Report == nil {
		return err
	}

	if err := outputReport(cfg, run); err != nil {
		return err
	}

	if len(run.Artifacts) > 0 {
		fmt.Fprintf(os.Stderr, "Artifacts written to %s (%d files)\n",
			outputDir, len(run.Artifacts))
	}
	logger.Debug("analysis finished", "elapsed", time.Since(startTime).Round(time.Millisecond))

	return nil
}

// outputReport writes the stdout report in the requested format.
func outputReport(cfg *config.Config, run *pipeline.Run) error {
	if run.Report == nil {
		return fmt.Errorf("no report produced")
	}

	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-chosen output path
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close() //nolint:errcheck // double close after the explicit one below is harmless
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	if _, err := writer.Write(run.Report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.ReportFile != "" {
		return output.Close()
	}
	return nil
}
