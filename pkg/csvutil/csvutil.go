package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NewReader returns a csv.Reader configured for loosely formatted data files:
// ragged rows are allowed and leading spaces around fields are dropped.
func NewReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// ReadHeader reads the first record and returns a column-name -> index map.
// A UTF-8 byte order mark on the first column is stripped.
func ReadHeader(cr *csv.Reader) (map[string]int, error) {
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols, nil
}

// Field returns the value at column idx, or "" and false if the record is too short.
func Field(record []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(record) {
		return "", false
	}
	return record[idx], true
}

// ParseFloat parses a numeric cell after trimming surrounding whitespace.
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// FormatFloat renders v in the shortest form that round-trips, e.g. 600 or 0.25.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
