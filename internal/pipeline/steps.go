package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/datacheck/internal/analyzer"
	"github.com/nao1215/datacheck/internal/config"
	"github.com/nao1215/datacheck/internal/database"
	"github.com/nao1215/datacheck/internal/dataset"
	"github.com/nao1215/datacheck/internal/plot"
	"github.com/nao1215/datacheck/internal/report"
)

// LoadStep reads the input CSV into an immutable dataset.
// This step is the foundation of every run: all later steps consume the
// dataset it produces.
type LoadStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a new dataset loading step.
func NewLoadStep(opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step.
func (s *LoadStep) Do(ctx context.Context, run *Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	opts := run.Config.LoadOptions()
	opts.Logger = s.logger

	ds, err := dataset.LoadCSV(run.Config.InputPath, opts)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", run.Config.InputPath, err)
	}

	s.logger.Debug("dataset loaded",
		"source", ds.Source(),
		"rows", ds.RowCount(),
		"columns", ds.ColumnCount(),
	)

	run.Dataset = ds
	return nil
}

// AnalyzeStep runs the quality checks and assembles the report.
type AnalyzeStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeLogger sets a custom logger for the analyze step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates a new analysis step.
func NewAnalyzeStep(opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analysis step.
func (s *AnalyzeStep) Do(ctx context.Context, run *Run) error {
	if run.Dataset == nil {
		return fmt.Errorf("no dataset loaded")
	}

	a := analyzer.New(
		analyzer.WithIQRMultiplier(run.Config.IQRMultiplier),
		analyzer.WithJobs(run.Config.Jobs),
		analyzer.WithLogger(s.logger),
	)

	run.Report = a.Run(ctx, run.Dataset)

	s.logger.Debug("analysis completed",
		"blocks", run.Report.BlockCount(),
		"failures", len(run.Report.Failures),
	)
	return nil
}

// ExcelReportStep writes the Excel workbook into the output directory.
type ExcelReportStep struct {
	// fileName is the workbook file name inside the output directory.
	fileName string

	// logger for structured logging.
	logger *slog.Logger
}

// ExcelReportStepOption configures an ExcelReportStep.
type ExcelReportStepOption func(*ExcelReportStep)

// WithExcelFileName overrides the workbook file name.
func WithExcelFileName(name string) ExcelReportStepOption {
	return func(s *ExcelReportStep) {
		if name != "" {
			s.fileName = name
		}
	}
}

// WithExcelLogger sets a custom logger for the Excel step.
func WithExcelLogger(logger *slog.Logger) ExcelReportStepOption {
	return func(s *ExcelReportStep) {
		s.logger = logger
	}
}

// NewExcelReportStep creates a new Excel workbook step.
func NewExcelReportStep(opts ...ExcelReportStepOption) *ExcelReportStep {
	s := &ExcelReportStep{
		fileName: config.DefaultReportFileName,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ExcelReportStep) Name() string {
	return "excel_report"
}

// Do executes the Excel workbook step.
func (s *ExcelReportStep) Do(ctx context.Context, run *Run) error {
	if run.Report == nil {
		return fmt.Errorf("no report to write")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(run.OutputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(run.OutputDir, s.fileName)
	f, err := os.Create(path) //nolint:gosec // path is built from user-chosen output settings
	if err != nil {
		return fmt.Errorf("failed to create workbook file: %w", err)
	}
	defer f.Close() //nolint:errcheck // best-effort close after explicit error checks below

	if _, err := report.NewExcelWriter(f).Write(run.Report); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to flush workbook: %w", err)
	}

	run.Artifacts = append(run.Artifacts, path)
	s.logger.Debug("workbook written", "path", path)
	return nil
}

// PlotStep renders the quality charts into the output directory.
type PlotStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// PlotStepOption configures a PlotStep.
type PlotStepOption func(*PlotStep)

// WithPlotLogger sets a custom logger for the plot step.
func WithPlotLogger(logger *slog.Logger) PlotStepOption {
	return func(s *PlotStep) {
		s.logger = logger
	}
}

// NewPlotStep creates a new chart rendering step.
func NewPlotStep(opts ...PlotStepOption) *PlotStep {
	s := &PlotStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *PlotStep) Name() string {
	return "plot"
}

// Do executes the chart rendering step.
func (s *PlotStep) Do(ctx context.Context, run *Run) error {
	if run.Dataset == nil || run.Report == nil {
		return fmt.Errorf("no analysis results to plot")
	}

	renderer := plot.NewRenderer(run.OutputDir, plot.WithLogger(s.logger))
	written, err := renderer.Render(ctx, run.Dataset, run.Report)
	run.Artifacts = append(run.Artifacts, written...)
	if err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}

	s.logger.Debug("charts written", "count", len(written))
	return nil
}

// SaveStep persists the report to the history database.
type SaveStep struct {
	// dbDir is the directory holding the SQLite database.
	dbDir string

	// logger for structured logging.
	logger *slog.Logger
}

// SaveStepOption configures a SaveStep.
type SaveStepOption func(*SaveStep)

// WithSaveLogger sets a custom logger for the save step.
func WithSaveLogger(logger *slog.Logger) SaveStepOption {
	return func(s *SaveStep) {
		s.logger = logger
	}
}

// NewSaveStep creates a new history persistence step.
// An empty dbDir falls back to the XDG data directory.
func NewSaveStep(dbDir string, opts ...SaveStepOption) *SaveStep {
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	s := &SaveStep{
		dbDir:  dbDir,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do executes the history persistence step.
func (s *SaveStep) Do(ctx context.Context, run *Run) error {
	if run.Report == nil {
		return fmt.Errorf("no report to save")
	}

	db, err := database.Open(s.dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-mostly handle, nothing to do on close failure

	id, err := db.SaveReport(ctx, run.Report)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	run.HistoryRunID = id
	s.logger.Debug("report saved", "run_id", id, "db", db.Path())
	return nil
}

// DefaultPipeline creates a pipeline with the steps a run needs,
// respecting the config's output switches.
//
// Design decision: We provide a default pipeline because:
// 1. Most users want the full artifact set
// 2. Reduces boilerplate in the CLI
// 3. Ensures consistent step ordering
func DefaultPipeline(cfg *config.Config, logger *slog.Logger, pipelineOpts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	opts := append([]Option{WithLogger(logger)}, pipelineOpts...)
	p := New(opts...)

	p.AddSteps(
		NewLoadStep(WithLoadLogger(logger)),
		NewAnalyzeStep(WithAnalyzeLogger(logger)),
	)

	if !cfg.NoExcel {
		p.AddStep(NewExcelReportStep(WithExcelLogger(logger)))
	}
	if !cfg.NoPlots {
		p.AddStep(NewPlotStep(WithPlotLogger(logger)))
	}
	if cfg.SaveToDB {
		p.AddStep(NewSaveStep(cfg.DBDir, WithSaveLogger(logger)))
	}

	return p
}
