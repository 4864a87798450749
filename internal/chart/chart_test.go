package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/user/linechart-go/internal/dataset"
	"github.com/user/linechart-go/internal/dom"
	"github.com/user/linechart-go/internal/models"
)

func threeRowDataset() models.Dataset {
	return models.Dataset{
		XField: "index",
		YField: "Agriculture",
		Rows: []models.Row{
			{Line: 2, X: 0, Y: 10},
			{Line: 3, X: 5, Y: 20},
			{Line: 4, X: 10, Y: 30},
		},
	}
}

func newTestContainer(t *testing.T) (*dom.Document, *dom.Container) {
	t.Helper()
	doc, err := dom.NewDocument("answer1", 1200, 600)
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	c, err := doc.Find("#answer1")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	return doc, c
}

func TestBuildThreeRows(t *testing.T) {
	c, err := Build(threeRowDataset(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []models.Point{{X: 20, Y: 580}, {X: 600, Y: 300}, {X: 1180, Y: 20}}
	if len(c.Points) != len(want) {
		t.Fatalf("Build() produced %d points, want %d", len(c.Points), len(want))
	}
	for i := range want {
		if c.Points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, c.Points[i], want[i])
		}
	}
	if c.Geometry != "M20,580L600,300L1180,20" {
		t.Errorf("Geometry = %q", c.Geometry)
	}
	if c.X.Domain != (models.Interval{Lo: 0, Hi: 10}) || c.Y.Domain != (models.Interval{Lo: 10, Hi: 30}) {
		t.Errorf("domains = %+v / %+v", c.X.Domain, c.Y.Domain)
	}
}

func TestBuildKeepsInputOrder(t *testing.T) {
	ds := models.Dataset{Rows: []models.Row{
		{X: 10, Y: 0},
		{X: 0, Y: 4},
		{X: 5, Y: 2},
		{X: 5, Y: 2},
	}}
	c, err := Build(ds, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(c.Points) != len(ds.Rows) {
		t.Fatalf("Build() produced %d points for %d rows", len(c.Points), len(ds.Rows))
	}
	if c.Geometry != "M1180,580L20,20L600,300L600,300" {
		t.Errorf("Geometry = %q", c.Geometry)
	}
}

func TestBuildEmpty(t *testing.T) {
	if _, err := Build(models.Dataset{}, DefaultOptions()); !errors.Is(err, dataset.ErrEmptyDataset) {
		t.Errorf("Build(empty) error = %v, want ErrEmptyDataset", err)
	}
}

func TestPathData(t *testing.T) {
	tests := []struct {
		points []models.Point
		want   string
	}{
		{nil, ""},
		{[]models.Point{{X: 1.5, Y: -2}}, "M1.5,-2"},
		{[]models.Point{{X: 0, Y: 0}, {X: 0.25, Y: 100}}, "M0,0L0.25,100"},
	}
	for _, tt := range tests {
		if got := PathData(tt.points); got != tt.want {
			t.Errorf("PathData(%v) = %q, want %q", tt.points, got, tt.want)
		}
	}
}

func TestRenderAppendsOnePath(t *testing.T) {
	doc, container := newTestContainer(t)
	r := NewRenderer(Options{})

	c, err := r.Render(threeRowDataset(), container)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	paths := container.Children("path")
	if len(paths) != 1 {
		t.Fatalf("container has %d paths, want 1", len(paths))
	}
	if got := dom.Attr(paths[0], "stroke"); got != "#2e2928" {
		t.Errorf("stroke = %q, want #2e2928", got)
	}
	if got := dom.Attr(paths[0], "d"); got != c.Geometry {
		t.Errorf("d = %q, want %q", got, c.Geometry)
	}
	if dom.Attr(paths[0], "fill") != "" || dom.Attr(paths[0], "stroke-width") != "" {
		t.Errorf("unexpected styling attributes: %+v", paths[0].Attr)
	}
	if !strings.Contains(doc.String(), `d="M20,580L600,300L1180,20"`) {
		t.Errorf("rendered page missing geometry")
	}
}

func TestRenderTwiceAppendsTwoPaths(t *testing.T) {
	_, container := newTestContainer(t)
	r := NewRenderer(DefaultOptions())
	for i := 0; i < 2; i++ {
		if _, err := r.Render(threeRowDataset(), container); err != nil {
			t.Fatalf("Render() #%d error = %v", i+1, err)
		}
	}
	if got := len(container.Children("path")); got != 2 {
		t.Errorf("container has %d paths after two renders, want 2", got)
	}
}

func TestRenderNilContainer(t *testing.T) {
	r := NewRenderer(DefaultOptions())
	if _, err := r.Render(threeRowDataset(), nil); !errors.Is(err, dom.ErrNoContainer) {
		t.Errorf("Render(nil container) error = %v, want ErrNoContainer", err)
	}
}

func TestNewRendererCustomOptions(t *testing.T) {
	r := NewRenderer(Options{Stroke: "#ff0000"})
	if r.Options.Stroke != "#ff0000" {
		t.Errorf("Stroke = %q", r.Options.Stroke)
	}
	if r.Options.XRange != DefaultOptions().XRange {
		t.Errorf("XRange = %+v, want default", r.Options.XRange)
	}
}

func TestWritePlot(t *testing.T) {
	c, err := Build(threeRowDataset(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	var buf bytes.Buffer
	if err := WritePlot(&buf, c, "Agriculture", 600, 300, "png"); err != nil {
		t.Fatalf("WritePlot() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Errorf("WritePlot() output is not a PNG (%d bytes)", buf.Len())
	}

	c.Stroke = "not-a-colour"
	if err := WritePlot(&bytes.Buffer{}, c, "bad", 100, 100, "png"); err == nil {
		t.Error("WritePlot() with invalid stroke expected error")
	}
}
