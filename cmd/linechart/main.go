package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/linechart-go/internal/chart"
	"github.com/user/linechart-go/internal/config"
	"github.com/user/linechart-go/internal/dataset"
	"github.com/user/linechart-go/internal/dom"
	"github.com/user/linechart-go/internal/logging"
	"github.com/user/linechart-go/internal/models"
	"github.com/user/linechart-go/internal/report"
)

var (
	// Used for flags.
	configPath     string
	logLevel       string
	target         string
	stroke         string
	xField         string
	yField         string
	outputFilePath string
	pagePath       string
	plotFormat     string

	rootCmd = &cobra.Command{
		Use:   "linechart",
		Short: "Draws a CSV column as a single SVG line.",
		Long: `linechart loads a CSV dataset, maps two numeric columns onto a fixed
pixel canvas with linear scales, and draws the result as one SVG path.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
	}

	renderCmd = &cobra.Command{
		Use:   "render [CSV_PATH]",
		Short: "Appends the line to a container element of an HTML page.",
		Long: `Loads CSV_PATH (default ue_industry.csv) and appends one <path> element to
the element selected by --target in the page given by --page. Without --page
a minimal page with an empty <svg> container is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRender,
	}

	svgCmd = &cobra.Command{
		Use:   "svg [CSV_PATH]",
		Short: "Writes the line as a standalone SVG document.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, args)
			if err != nil {
				return err
			}
			return exportChart(cmd.Context(), cfg, &report.SVGReportAdapter{Width: cfg.Width, Height: cfg.Height}, "linechart.svg")
		},
	}

	plotCmd = &cobra.Command{
		Use:   "plot [CSV_PATH]",
		Short: "Writes an axis-labelled preview image of the data.",
		Long:  fmt.Sprintf("Renders the raw data with axes and grid. Supported formats: %s.", strings.Join(chart.PlotFormats, ", ")),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, args)
			if err != nil {
				return err
			}
			adapter := &report.PlotReportAdapter{Format: plotFormat, Width: cfg.Width, Height: cfg.Height}
			return exportChart(cmd.Context(), cfg, adapter, "linechart."+strings.ToLower(plotFormat))
		},
	}

	pointsCmd = &cobra.Command{
		Use:   "points [CSV_PATH]",
		Short: "Writes the computed scales and points as JSON.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, args)
			if err != nil {
				return err
			}
			return exportChart(cmd.Context(), cfg, &report.JSONReportAdapter{}, "-")
		},
	}
)

func setupLogging(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("log-level") {
		return logging.SetLevel(logLevel)
	}
	return nil
}

// loadSettings reads the config file and applies explicitly set flags and the
// optional CSV path argument on top of it.
func loadSettings(cmd *cobra.Command, args []string) (config.Config, error) {
	overrides := config.Config{}
	flags := cmd.Flags()
	if flags.Changed("target") {
		overrides.Target = target
	}
	if flags.Changed("stroke") {
		overrides.Stroke = stroke
	}
	if flags.Changed("x-field") {
		overrides.XField = xField
	}
	if flags.Changed("y-field") {
		overrides.YField = yField
	}
	if flags.Changed("log-level") {
		overrides.LogLevel = logLevel
	}
	if len(args) == 1 {
		overrides.Data = args[0]
	}

	fileCfg, err := config.Read(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := overrides.Merge(fileCfg); err != nil {
		return config.Config{}, err
	}
	if err := overrides.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	if !flags.Changed("log-level") {
		if err := logging.SetLevel(overrides.LogLevel); err != nil {
			return config.Config{}, err
		}
	}
	return overrides, nil
}

func outputPath(fallback string) (string, error) {
	path := outputFilePath
	if path == "" {
		path = fallback
	}
	if path == "-" {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid output file path '%s': %w", path, err)
	}
	return abs, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	var doc *dom.Document
	if pagePath != "" {
		f, err := os.Open(pagePath)
		if err != nil {
			return fmt.Errorf("failed to open page %s: %w", pagePath, err)
		}
		doc, err = dom.ParseDocument(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to load page %s: %w", pagePath, err)
		}
	} else {
		doc, err = dom.NewDocument(strings.TrimPrefix(cfg.Target, "#"), cfg.Width, cfg.Height)
		if err != nil {
			return err
		}
	}
	container, err := doc.Find(cfg.Target)
	if err != nil {
		return err
	}

	loader, err := dataset.NewLoader(cfg.Data, cfg.DatasetOptions())
	if err != nil {
		return err
	}
	renderer := chart.NewRenderer(cfg.ChartOptions())

	var (
		rendered  *models.Chart
		renderErr error
	)
	logging.Infof("Loading %s", loader.Path)
	done := loader.LoadAsync(cmd.Context(), func(ds models.Dataset) {
		rendered, renderErr = renderer.Render(ds, container)
	})
	if err := <-done; err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	if renderErr != nil {
		return fmt.Errorf("failed to render chart: %w", renderErr)
	}
	logging.Infof("Rendered %d points into #%s", len(rendered.Points), strings.TrimPrefix(cfg.Target, "#"))

	out, err := outputPath("linechart.html")
	if err != nil {
		return err
	}
	return writeReport(&report.HTMLReportAdapter{Document: doc}, rendered, out)
}

func exportChart(ctx context.Context, cfg config.Config, adapter report.ReportAdapter, fallback string) error {
	loader, err := dataset.NewLoader(cfg.Data, cfg.DatasetOptions())
	if err != nil {
		return err
	}
	ds, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	c, err := chart.Build(ds, cfg.ChartOptions())
	if err != nil {
		return fmt.Errorf("failed to build chart: %w", err)
	}
	out, err := outputPath(fallback)
	if err != nil {
		return err
	}
	return writeReport(adapter, c, out)
}

func writeReport(adapter report.ReportAdapter, c *models.Chart, out string) error {
	if err := adapter.PrepareData(c); err != nil {
		return fmt.Errorf("failed to prepare report data: %w", err)
	}
	if err := adapter.Write(out); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", out, err)
	}
	if out != "-" {
		logging.Infof("Report written to %s", out)
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVarP(&target, "target", "t", "answer1", "Id of the container element")
	pf.StringVar(&stroke, "stroke", chart.DefaultStroke, "Stroke colour of the line")
	pf.StringVar(&xField, "x-field", dataset.DefaultXField, "CSV column for the horizontal axis")
	pf.StringVar(&yField, "y-field", dataset.DefaultYField, "CSV column for the vertical axis")
	pf.StringVarP(&outputFilePath, "output-file-path", "o", "", "Output file path (- for stdout)")

	renderCmd.Flags().StringVarP(&pagePath, "page", "p", "", "HTML page containing the target element")
	plotCmd.Flags().StringVarP(&plotFormat, "format", "f", "png", "Image format")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(svgCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(pointsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
