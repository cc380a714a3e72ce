package plot

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/nao1215/datacheck/internal/dataset"
	"github.com/nao1215/datacheck/internal/model"
)

// chartSize is the rendered width and height of every chart.
const chartSize = 6 * vg.Inch

// Renderer writes quality charts for a dataset into an output directory.
type Renderer struct {
	// outputDir is the directory PNG files are written into.
	outputDir string

	// logger records skipped charts.
	logger *slog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger used for skipped-chart messages.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer creates a Renderer that writes charts into outputDir.
func NewRenderer(outputDir string, opts ...RendererOption) *Renderer {
	r := &Renderer{
		outputDir: outputDir,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render writes all charts for the dataset and report.
// Individual chart failures are logged and skipped; the error return is
// reserved for environmental problems such as an unwritable output
// directory or a canceled context. It returns the paths of the files
// actually written.
func (r *Renderer) Render(ctx context.Context, ds *dataset.Dataset, report *model.Report) ([]string, error) {
	if err := os.MkdirAll(r.outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create plot output directory: %w", err)
	}

	var written []string
	record := func(chart, path string, err error) {
		if err != nil {
			r.logger.Warn("skipping chart", "chart", chart, "error", err)
			return
		}
		written = append(written, path)
	}

	for _, name := range ds.NumericColumnNames() {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		values := col.Floats()
		if len(values) == 0 {
			r.logger.Debug("no non-null values, skipping charts", "column", name)
			continue
		}

		path := r.chartPath("distribution", name)
		record("histogram", path, r.renderHistogram(name, values, path))

		path = r.chartPath("boxplot", name)
		record("boxplot", path, r.renderBoxPlot(name, values, path))
	}

	if err := ctx.Err(); err != nil {
		return written, err
	}

	if report.Missing != nil && len(report.Missing.Columns) > 0 {
		path := filepath.Join(r.outputDir, "missing_values.png")
		record("missing values bar chart", path, r.renderMissingBars(report.Missing, path))
	}

	if report.Correlation != nil && len(report.Correlation.Columns) >= 2 {
		path := filepath.Join(r.outputDir, "correlation_heatmap.png")
		record("correlation heatmap", path, r.renderHeatmap(report.Correlation, path))
	}

	return written, nil
}

// chartPath builds the output path for a per-column chart.
func (r *Renderer) chartPath(kind, column string) string {
	return filepath.Join(r.outputDir, fmt.Sprintf("%s_%s.png", kind, sanitizeFileName(column)))
}

// renderHistogram writes a value histogram for one numeric column.
func (r *Renderer) renderHistogram(column string, values []float64, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Distribution of %s", column)
	p.X.Label.Text = column
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(values), histogramBins(len(values)))
	if err != nil {
		return fmt.Errorf("failed to build histogram for %q: %w", column, err)
	}
	p.Add(h)

	return p.Save(chartSize, chartSize, path)
}

// histogramBins applies Sturges' rule, clamped to a sane range.
func histogramBins(n int) int {
	bins := int(math.Ceil(math.Log2(float64(n)))) + 1
	if bins < 5 {
		return 5
	}
	if bins > 50 {
		return 50
	}
	return bins
}

// renderBoxPlot writes a box plot for one numeric column.
func (r *Renderer) renderBoxPlot(column string, values []float64, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Box Plot of %s", column)
	p.Y.Label.Text = column

	b, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(values))
	if err != nil {
		return fmt.Errorf("failed to build box plot for %q: %w", column, err)
	}
	p.Add(b)
	p.NominalX(column)

	return p.Save(chartSize, chartSize, path)
}

// renderMissingBars writes the per-column missing-value bar chart.
func (r *Renderer) renderMissingBars(block *model.MissingBlock, path string) error {
	p := plot.New()
	p.Title.Text = "Missing Values per Column"
	p.Y.Label.Text = "Missing Count"

	values := make(plotter.Values, len(block.Columns))
	names := make([]string, len(block.Columns))
	for i, c := range block.Columns {
		values[i] = float64(c.NullCount)
		names[i] = c.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("failed to build missing-values bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)

	return p.Save(chartSize, chartSize, path)
}

// correlationGrid adapts a correlation matrix to the heatmap data
// interface. Coefficients that were not computed are reported as NaN,
// which the heatmap leaves blank.
type correlationGrid struct {
	block *model.CorrelationBlock
}

// Dims implements plotter.GridXYZ.
func (g correlationGrid) Dims() (int, int) {
	n := len(g.block.Columns)
	return n, n
}

// Z implements plotter.GridXYZ.
func (g correlationGrid) Z(c, r int) float64 {
	// Row 0 is drawn at the bottom; flip so the matrix reads top-down.
	v := g.block.At(len(g.block.Columns)-1-r, c)
	if v == nil {
		return math.NaN()
	}
	return *v
}

// X implements plotter.GridXYZ.
func (g correlationGrid) X(c int) float64 { return float64(c) }

// Y implements plotter.GridXYZ.
func (g correlationGrid) Y(r int) float64 { return float64(r) }

// renderHeatmap writes the Pearson correlation matrix heatmap.
func (r *Renderer) renderHeatmap(block *model.CorrelationBlock, path string) error {
	p := plot.New()
	p.Title.Text = "Correlation Heatmap"

	// Diverging blue-red palette centered on zero correlation.
	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	h := plotter.NewHeatMap(correlationGrid{block: block}, colors.Palette(255))
	h.Min = -1
	h.Max = 1
	p.Add(h)

	ticksX := make([]plot.Tick, len(block.Columns))
	ticksY := make([]plot.Tick, len(block.Columns))
	for i, name := range block.Columns {
		ticksX[i] = plot.Tick{Value: float64(i), Label: name}
		ticksY[i] = plot.Tick{Value: float64(len(block.Columns) - 1 - i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticksX)
	p.Y.Tick.Marker = plot.ConstantTicks(ticksY)

	return p.Save(chartSize, chartSize, path)
}

// sanitizeFileName replaces characters that are unsafe in file names.
func sanitizeFileName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "column"
	}
	return sb.String()
}
