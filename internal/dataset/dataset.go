package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/user/linechart-go/internal/logging"
	"github.com/user/linechart-go/internal/models"
	"github.com/user/linechart-go/pkg/csvutil"
)

// Defaults for the data file and the two charted columns.
const (
	DefaultFile   = "ue_industry.csv"
	DefaultXField = "index"
	DefaultYField = "Agriculture"
)

// ErrEmptyDataset is returned when the file has a header but no data rows.
var ErrEmptyDataset = errors.New("dataset has no rows")

var errNotFinite = errors.New("value is not finite")

// ParseError reports a cell that could not be coerced to a number.
type ParseError struct {
	Line   int // 1-based, header is line 1
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %q: cannot parse %q as number: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingColumnError reports a required column absent from the header row.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in header", e.Column)
}

// Options selects the two charted columns.
type Options struct {
	XField string
	YField string
}

func (o Options) withDefaults() Options {
	if o.XField == "" {
		o.XField = DefaultXField
	}
	if o.YField == "" {
		o.YField = DefaultYField
	}
	return o
}

// Loader reads a CSV resource from disk.
type Loader struct {
	Path string
	opts Options
}

// NewLoader creates a Loader for the CSV file at path.
func NewLoader(path string, opts Options) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", path, err)
	}
	return &Loader{Path: absPath, opts: opts.withDefaults()}, nil
}

// Load opens and parses the file.
func (l *Loader) Load(ctx context.Context) (models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return models.Dataset{}, err
	}
	f, err := os.Open(l.Path)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to open data file %s: %w", l.Path, err)
	}
	defer f.Close()

	logging.Debugf("Parsing %s (x=%s, y=%s)", l.Path, l.opts.XField, l.opts.YField)
	ds, err := parse(ctx, f, l.opts)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to parse %s: %w", l.Path, err)
	}
	ds.Source = l.Path
	logging.Infof("Loaded %d rows from %s", ds.Len(), l.Path)
	return ds, nil
}

// LoadAsync loads the file in the background. onLoad runs at most once, only
// after a successful load, on the loader goroutine. The returned channel
// receives the load error (nil on success) once onLoad has returned, and is
// then closed.
func (l *Loader) LoadAsync(ctx context.Context, onLoad func(models.Dataset)) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		ds, err := l.Load(ctx)
		if err != nil {
			done <- err
			return
		}
		onLoad(ds)
		done <- nil
	}()
	return done
}

// Parse reads a dataset from r. The header row must contain both selected columns.
func Parse(r io.Reader, opts Options) (models.Dataset, error) {
	return parse(context.Background(), r, opts.withDefaults())
}

func parse(ctx context.Context, r io.Reader, opts Options) (models.Dataset, error) {
	cr := csvutil.NewReader(r)
	cols, err := csvutil.ReadHeader(cr)
	if err != nil {
		return models.Dataset{}, err
	}
	xi, ok := cols[opts.XField]
	if !ok {
		return models.Dataset{}, &MissingColumnError{Column: opts.XField}
	}
	yi, ok := cols[opts.YField]
	if !ok {
		return models.Dataset{}, &MissingColumnError{Column: opts.YField}
	}

	ds := models.Dataset{XField: opts.XField, YField: opts.YField}
	for {
		if err := ctx.Err(); err != nil {
			return models.Dataset{}, err
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Dataset{}, fmt.Errorf("failed to read record: %w", err)
		}
		line, _ := cr.FieldPos(0)

		x, err := numericField(record, xi, opts.XField, line)
		if err != nil {
			return models.Dataset{}, err
		}
		y, err := numericField(record, yi, opts.YField, line)
		if err != nil {
			return models.Dataset{}, err
		}
		ds.Rows = append(ds.Rows, models.Row{Line: line, X: x, Y: y})
	}

	if len(ds.Rows) == 0 {
		return models.Dataset{}, ErrEmptyDataset
	}
	return ds, nil
}

func numericField(record []string, idx int, column string, line int) (float64, error) {
	raw, ok := csvutil.Field(record, idx)
	if !ok {
		return 0, &ParseError{Line: line, Column: column, Err: errors.New("missing field")}
	}
	v, err := csvutil.ParseFloat(raw)
	if err != nil {
		return 0, &ParseError{Line: line, Column: column, Value: raw, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Line: line, Column: column, Value: raw, Err: errNotFinite}
	}
	return v, nil
}
