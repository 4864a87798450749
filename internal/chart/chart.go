package chart

import (
	"fmt"
	"strings"

	"github.com/user/linechart-go/internal/dataset"
	"github.com/user/linechart-go/internal/dom"
	"github.com/user/linechart-go/internal/models"
	"github.com/user/linechart-go/internal/scale"
	"github.com/user/linechart-go/pkg/csvutil"
)

// DefaultStroke is the line colour used when none is configured.
const DefaultStroke = "#2e2928"

// Options controls the output ranges and path styling.
type Options struct {
	XRange models.Interval
	YRange models.Interval
	Stroke string
}

// DefaultOptions returns the 1200x600 layout with a 20px margin. The vertical
// range is inverted so larger values are drawn higher.
func DefaultOptions() Options {
	return Options{
		XRange: models.Interval{Lo: 20, Hi: 1180},
		YRange: models.Interval{Lo: 580, Hi: 20},
		Stroke: DefaultStroke,
	}
}

// Build computes both scales from the dataset extents and maps every row to a
// point, keeping dataset order.
func Build(ds models.Dataset, opts Options) (*models.Chart, error) {
	if ds.Len() == 0 {
		return nil, dataset.ErrEmptyDataset
	}

	xs := make([]float64, len(ds.Rows))
	ys := make([]float64, len(ds.Rows))
	for i, r := range ds.Rows {
		xs[i], ys[i] = r.X, r.Y
	}
	xDomain, err := scale.Extent(xs)
	if err != nil {
		return nil, fmt.Errorf("x extent for %q: %w", ds.XField, err)
	}
	yDomain, err := scale.Extent(ys)
	if err != nil {
		return nil, fmt.Errorf("y extent for %q: %w", ds.YField, err)
	}

	scaleX := scale.NewLinear(xDomain, opts.XRange)
	scaleY := scale.NewLinear(yDomain, opts.YRange)
	point := func(r models.Row) models.Point {
		return models.Point{X: scaleX.Apply(r.X), Y: scaleY.Apply(r.Y)}
	}

	points := make([]models.Point, len(ds.Rows))
	for i, r := range ds.Rows {
		points[i] = point(r)
	}

	return &models.Chart{
		Dataset:  ds,
		X:        models.ScaleSpec{Field: ds.XField, Domain: xDomain, Range: opts.XRange},
		Y:        models.ScaleSpec{Field: ds.YField, Domain: yDomain, Range: opts.YRange},
		Points:   points,
		Geometry: PathData(points),
		Stroke:   opts.Stroke,
	}, nil
}

// PathData encodes points as an SVG polyline path, e.g. "M20,580L600,300".
func PathData(points []models.Point) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(csvutil.FormatFloat(p.X))
		b.WriteByte(',')
		b.WriteString(csvutil.FormatFloat(p.Y))
	}
	return b.String()
}

// Renderer draws a dataset as a single line into a container.
type Renderer struct {
	Options Options
}

// NewRenderer returns a Renderer using opts; zero fields fall back to DefaultOptions.
func NewRenderer(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.XRange == (models.Interval{}) {
		opts.XRange = def.XRange
	}
	if opts.YRange == (models.Interval{}) {
		opts.YRange = def.YRange
	}
	if opts.Stroke == "" {
		opts.Stroke = def.Stroke
	}
	return &Renderer{Options: opts}
}

// Render appends one <path> with the dataset geometry and stroke colour to
// container. Each call appends a new path; existing children are untouched.
func (r *Renderer) Render(ds models.Dataset, container *dom.Container) (*models.Chart, error) {
	c, err := Build(ds, r.Options)
	if err != nil {
		return nil, err
	}
	if _, err := container.Append("path", "d", c.Geometry, "stroke", c.Stroke); err != nil {
		return nil, fmt.Errorf("failed to append path: %w", err)
	}
	return c, nil
}
