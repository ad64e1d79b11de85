package charts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/namitajha/Diabetes-data-Namita/internal/config"
	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
)

// Renderer draws a chart and returns the path of the written file
type Renderer interface {
	Render(ctx context.Context, spec Spec) (string, error)
}

// RendererConfig controls where and how charts are saved
type RendererConfig struct {
	Dir    string
	Format string  // png or svg
	Width  float64 // inches
	Height float64 // inches
}

// PlotRenderer renders charts with gonum/plot
type PlotRenderer struct {
	cfg    RendererConfig
	logger *slog.Logger
}

const barWidth = 20

// NewPlotRenderer creates a renderer writing into cfg.Dir. Zero values
// fall back to png at the default chart size.
func NewPlotRenderer(logger *slog.Logger, cfg RendererConfig) *PlotRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Format == "" {
		cfg.Format = config.ChartFormatPNG
	}
	if cfg.Width <= 0 {
		cfg.Width = config.DefaultChartWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = config.DefaultChartHeight
	}
	return &PlotRenderer{cfg: cfg, logger: logger}
}

// Render validates spec and saves it as <dir>/<name>.<format>
func (r *PlotRenderer) Render(ctx context.Context, spec Spec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := spec.Validate(); err != nil {
		return "", err
	}

	p, err := r.build(spec)
	if err != nil {
		return "", errors.NewAppError(errors.ErrTypeValidation, fmt.Sprintf("chart %q", spec.Name), err).
			WithContext("chart", spec.Name)
	}

	if err := os.MkdirAll(r.cfg.Dir, 0755); err != nil {
		return "", errors.NewStorageError("create chart directory", err).WithContext("path", r.cfg.Dir)
	}

	path := filepath.Join(r.cfg.Dir, spec.Name+"."+r.cfg.Format)
	if err := p.Save(vg.Length(r.cfg.Width)*vg.Inch, vg.Length(r.cfg.Height)*vg.Inch, path); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("save chart %s", spec.Name), err).
			WithContext("path", path)
	}

	r.logger.DebugContext(ctx, "chart rendered",
		slog.String("chart", spec.Name),
		slog.String("kind", string(spec.Kind)),
		slog.Int("categories", len(spec.Categories)),
		slog.String("path", path))

	return path, nil
}

func (r *PlotRenderer) build(spec Spec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.Add(plotter.NewGrid())

	width := vg.Points(barWidth)
	n := len(spec.Series)

	var below *plotter.BarChart
	for i, s := range spec.Series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Name, err)
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = vg.Length(0)

		switch spec.Kind {
		case KindStackedBar:
			if below != nil {
				bars.StackOn(below)
			}
			below = bars
		default:
			// side by side, centred on the category tick
			bars.Offset = width * vg.Length(2*i-n+1) / 2
		}

		p.Add(bars)
		if n > 1 {
			p.Legend.Add(s.Name, bars)
		}
	}

	p.Legend.Top = true
	p.NominalX(spec.Categories...)
	p.X.Tick.Label.XAlign = draw.XCenter
	p.X.Tick.Label.YAlign = draw.YCenter

	return p, nil
}
