package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/user/linechart-go/internal/chart"
	"github.com/user/linechart-go/internal/dataset"
	"github.com/user/linechart-go/internal/logging"
	"github.com/user/linechart-go/internal/models"
)

// Config holds every tunable of a rendering run.
type Config struct {
	Data     string    `yaml:"data"`
	XField   string    `yaml:"x_field"`
	YField   string    `yaml:"y_field"`
	XRange   []float64 `yaml:"x_range"`
	YRange   []float64 `yaml:"y_range"`
	Stroke   string    `yaml:"stroke"`
	Target   string    `yaml:"target"`
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	LogLevel string    `yaml:"log_level"`
}

// Default returns the configuration used when no file or flag overrides a field.
func Default() Config {
	opts := chart.DefaultOptions()
	return Config{
		Data:     dataset.DefaultFile,
		XField:   dataset.DefaultXField,
		YField:   dataset.DefaultYField,
		XRange:   []float64{opts.XRange.Lo, opts.XRange.Hi},
		YRange:   []float64{opts.YRange.Lo, opts.YRange.Hi},
		Stroke:   opts.Stroke,
		Target:   "answer1",
		Width:    1200,
		Height:   600,
		LogLevel: "info",
	}
}

// Load reads a YAML file, fills unset fields from Default and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Read is Load without validation, for callers that apply further overrides
// before validating.
func Read(path string) (Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		logging.Debugf("Loaded config from %s", path)
	}
	if err := cfg.Merge(Default()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge fills zero-valued fields of c from src.
func (c *Config) Merge(src Config) error {
	if err := mergo.Merge(c, src); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// Validate checks ranges, stroke colour, target and canvas size.
func (c Config) Validate() error {
	var errs []error
	if len(c.XRange) != 2 {
		errs = append(errs, fmt.Errorf("x_range must have 2 values, got %d", len(c.XRange)))
	}
	if len(c.YRange) != 2 {
		errs = append(errs, fmt.Errorf("y_range must have 2 values, got %d", len(c.YRange)))
	}
	if _, err := colorful.Hex(c.Stroke); err != nil {
		errs = append(errs, fmt.Errorf("stroke %q is not a hex colour", c.Stroke))
	}
	if strings.TrimPrefix(c.Target, "#") == "" {
		errs = append(errs, errors.New("target id must not be empty"))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Width, c.Height))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ChartOptions converts the config into renderer options. Call Validate first.
func (c Config) ChartOptions() chart.Options {
	return chart.Options{
		XRange: models.Interval{Lo: c.XRange[0], Hi: c.XRange[1]},
		YRange: models.Interval{Lo: c.YRange[0], Hi: c.YRange[1]},
		Stroke: c.Stroke,
	}
}

// DatasetOptions returns the column selection for the loader.
func (c Config) DatasetOptions() dataset.Options {
	return dataset.Options{XField: c.XField, YField: c.YField}
}
