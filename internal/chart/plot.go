package chart

import (
	"fmt"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/user/linechart-go/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotFormats lists the output formats accepted by WritePlot.
var PlotFormats = []string{"png", "svg", "pdf", "eps", "jpg", "tiff"}

// pixels converts a pixel size at 96 DPI to a vg length.
func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / 96
}

// NewPlot builds a gonum plot of the chart's raw data, with axes, grid and
// the chart's stroke colour.
func NewPlot(c *models.Chart, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = c.X.Field
	p.Y.Label.Text = c.Y.Field

	pts := make(plotter.XYs, len(c.Dataset.Rows))
	for i, r := range c.Dataset.Rows {
		pts[i] = plotter.XY{X: r.X, Y: r.Y}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create line for %s: %w", title, err)
	}
	stroke, err := colorful.Hex(c.Stroke)
	if err != nil {
		return nil, fmt.Errorf("invalid stroke colour %q: %w", c.Stroke, err)
	}
	line.Color = stroke
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)
	p.Add(plotter.NewGrid())

	return p, nil
}

// WritePlot renders the chart preview to w in the given format, sized in pixels.
func WritePlot(w io.Writer, c *models.Chart, title string, width, height int, format string) error {
	p, err := NewPlot(c, title)
	if err != nil {
		return err
	}
	writer, err := p.WriterTo(pixels(width), pixels(height), format)
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}
