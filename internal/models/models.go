package models

// Row is a single parsed CSV record. Only the two charted fields are kept.
type Row struct {
	Line int     `json:"line"` // 1-based line number in the source file
	X    float64 `json:"x"`    // value of the horizontal field (e.g. "index")
	Y    float64 `json:"y"`    // value of the vertical field (e.g. "Agriculture")
}

// Dataset is the ordered sequence of rows, in file order.
type Dataset struct {
	Source string `json:"source"`
	XField string `json:"x_field"`
	YField string `json:"y_field"`
	Rows   []Row  `json:"rows"`
}

// Len returns the number of rows.
func (d Dataset) Len() int { return len(d.Rows) }

// Point is a mapped coordinate pair in output (pixel) space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Interval is a closed numeric interval, used both for data extents and for
// output ranges. Lo may be greater than Hi for inverted ranges.
type Interval struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// ScaleSpec describes one axis mapping.
type ScaleSpec struct {
	Field  string   `json:"field"`
	Domain Interval `json:"domain"`
	Range  Interval `json:"range"`
}

// Chart holds everything produced by a single rendering pass.
type Chart struct {
	Dataset  Dataset   `json:"-"`
	X        ScaleSpec `json:"x"`
	Y        ScaleSpec `json:"y"`
	Points   []Point   `json:"points"`
	Geometry string    `json:"d"`
	Stroke   string    `json:"stroke"`
}
