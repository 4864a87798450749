package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/user/linechart-go/internal/chart"
	"github.com/user/linechart-go/internal/dom"
	"github.com/user/linechart-go/internal/models"
)

// ReportAdapter defines the interface for writing a rendered chart in different formats.
type ReportAdapter interface {
	PrepareData(c *models.Chart) error
	Write(outputFilePath string) error
}

var errNotPrepared = errors.New("report data not prepared")

// writeOutput writes data to outputFilePath, creating parent directories.
// "-" writes to stdout.
func writeOutput(outputFilePath string, data []byte) error {
	if outputFilePath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for report file %s: %w", outputFilePath, err)
	}
	return os.WriteFile(outputFilePath, data, 0644)
}

// --- JSON Report Adapter ---

// JSONReportAdapter writes scales, points and path data as JSON.
type JSONReportAdapter struct {
	reportData []byte
}

// PrepareData marshals the chart into indented JSON.
func (jra *JSONReportAdapter) PrepareData(c *models.Chart) error {
	if c == nil {
		return errNotPrepared
	}
	payload := struct {
		Source string `json:"source"`
		Rows   int    `json:"rows"`
		*models.Chart
	}{
		Source: c.Dataset.Source,
		Rows:   c.Dataset.Len(),
		Chart:  c,
	}
	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chart to JSON: %w", err)
	}
	jra.reportData = append(jsonData, '\n')
	return nil
}

// Write saves the JSON report.
func (jra *JSONReportAdapter) Write(outputFilePath string) error {
	if jra.reportData == nil {
		return errNotPrepared
	}
	return writeOutput(outputFilePath, jra.reportData)
}

// --- HTML Report Adapter ---

// HTMLReportAdapter serializes the page a chart was rendered into.
type HTMLReportAdapter struct {
	Document  *dom.Document
	reportBuf bytes.Buffer
}

// PrepareData renders the page. The chart must already have been drawn into
// Document by chart.Renderer.
func (hra *HTMLReportAdapter) PrepareData(c *models.Chart) error {
	if c == nil || hra.Document == nil {
		return errNotPrepared
	}
	hra.reportBuf.Reset()
	if err := hra.Document.Render(&hra.reportBuf); err != nil {
		return fmt.Errorf("failed to render HTML document: %w", err)
	}
	return nil
}

// Write saves the HTML page.
func (hra *HTMLReportAdapter) Write(outputFilePath string) error {
	if hra.reportBuf.Len() == 0 {
		return errNotPrepared
	}
	return writeOutput(outputFilePath, hra.reportBuf.Bytes())
}

// --- SVG Report Adapter ---

// SVGReportAdapter writes a standalone SVG file containing the chart path.
type SVGReportAdapter struct {
	Width, Height int
	reportBuf     bytes.Buffer
}

// PrepareData draws the chart path on a Width x Height canvas. Fill is
// disabled through an embedded stylesheet; the path itself only carries d and stroke.
func (sra *SVGReportAdapter) PrepareData(c *models.Chart) error {
	if c == nil {
		return errNotPrepared
	}
	if sra.Width <= 0 || sra.Height <= 0 {
		return fmt.Errorf("invalid SVG canvas size %dx%d", sra.Width, sra.Height)
	}
	sra.reportBuf.Reset()
	canvas := svg.New(&sra.reportBuf)
	canvas.Start(sra.Width, sra.Height)
	canvas.Title(fmt.Sprintf("%s by %s", c.Y.Field, c.X.Field))
	canvas.Style("text/css", "path { fill: none; }")
	canvas.Path(c.Geometry, fmt.Sprintf(`stroke="%s"`, c.Stroke))
	canvas.End()
	return nil
}

// Write saves the SVG document.
func (sra *SVGReportAdapter) Write(outputFilePath string) error {
	if sra.reportBuf.Len() == 0 {
		return errNotPrepared
	}
	return writeOutput(outputFilePath, sra.reportBuf.Bytes())
}

// --- Plot Report Adapter ---

// PlotReportAdapter writes a gonum/plot preview of the raw data with axes.
type PlotReportAdapter struct {
	Format        string // one of chart.PlotFormats
	Width, Height int
	Title         string
	reportBuf     bytes.Buffer
}

// PrepareData renders the preview image.
func (pra *PlotReportAdapter) PrepareData(c *models.Chart) error {
	if c == nil {
		return errNotPrepared
	}
	format := strings.ToLower(pra.Format)
	if !slices.Contains(chart.PlotFormats, format) {
		return fmt.Errorf("unsupported plot format %q (want one of %s)", pra.Format, strings.Join(chart.PlotFormats, ", "))
	}
	title := pra.Title
	if title == "" {
		title = c.Y.Field
	}
	pra.reportBuf.Reset()
	return chart.WritePlot(&pra.reportBuf, c, title, pra.Width, pra.Height, format)
}

// Write saves the rendered image.
func (pra *PlotReportAdapter) Write(outputFilePath string) error {
	if pra.reportBuf.Len() == 0 {
		return errNotPrepared
	}
	return writeOutput(outputFilePath, pra.reportBuf.Bytes())
}
