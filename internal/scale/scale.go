// Package scale computes data extents and maps them linearly onto output ranges.
package scale

import (
	"errors"
	"math"

	"github.com/user/linechart-go/internal/models"
)

// ErrEmptyExtent is returned when there is no usable value to build a domain from.
var ErrEmptyExtent = errors.New("no values to compute extent from")

// Extent returns the [min, max] of values. NaN values are skipped.
func Extent(values []float64) (models.Interval, error) {
	found := false
	var ext models.Interval
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !found {
			ext = models.Interval{Lo: v, Hi: v}
			found = true
			continue
		}
		if v < ext.Lo {
			ext.Lo = v
		}
		if v > ext.Hi {
			ext.Hi = v
		}
	}
	if !found {
		return models.Interval{}, ErrEmptyExtent
	}
	return ext, nil
}

// Linear is an affine map from Domain onto Range.
type Linear struct {
	Domain models.Interval
	Range  models.Interval
}

// NewLinear builds a linear scale.
func NewLinear(domain, rng models.Interval) Linear {
	return Linear{Domain: domain, Range: rng}
}

// Apply maps x from the domain into the range. Values outside the domain are
// extrapolated. A degenerate domain maps everything to the range midpoint.
func (l Linear) Apply(x float64) float64 {
	span := l.Domain.Hi - l.Domain.Lo
	if span == 0 {
		return l.Range.Lo*0.5 + l.Range.Hi*0.5
	}
	// Endpoints are returned exactly so min/max land on the range bounds.
	switch x {
	case l.Domain.Lo:
		return l.Range.Lo
	case l.Domain.Hi:
		return l.Range.Hi
	}
	var t float64
	if math.IsInf(span, 0) {
		// Halve before subtracting when the span overflows float64.
		t = (x/2 - l.Domain.Lo/2) / (l.Domain.Hi/2 - l.Domain.Lo/2)
	} else {
		t = (x - l.Domain.Lo) / span
	}
	return l.Range.Lo*(1-t) + l.Range.Hi*t
}
