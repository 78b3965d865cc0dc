// Package plot describes and rasterises the polynomial curve with its real roots.
package plot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/achernar1030/polyroot/internal/domain/curve"
)

// Colors used by the default figure.
var (
	CurveColor     = color.RGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 0xff}
	MarkerColor    = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	ReferenceColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	GridColor      = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
)

// Range is a closed data interval.
type Range struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Series is a polyline in data coordinates.
type Series struct {
	Label  string
	Color  color.Color
	Width  float64
	Points []curve.Point
}

// Orientation of a reference line.
type Orientation int

const (
	// Horizontal lines are drawn at a constant y.
	Horizontal Orientation = iota
	// Vertical lines are drawn at a constant x.
	Vertical
)

// RefLine is a dashed line spanning the whole plot area.
type RefLine struct {
	Orientation Orientation
	Value       float64
	Color       color.Color
	Width       float64
	Dash        []float64
}

// Marker is a filled point with an annotation.
type Marker struct {
	X, Y   float64
	Label  string
	Color  color.Color
	Radius float64
}

// Figure is a self-contained plot description; rendering never mutates it.
type Figure struct {
	Title       string
	XLabel      string
	YLabel      string
	Caption     string
	X           Range
	Y           Range
	Series      []Series
	RefLines    []RefLine
	Markers     []Marker
	MarkerLabel string // legend entry for the markers
	Legend      bool
	Grid        bool
}

// NewFigure builds the default figure for a sampled curve: the curve, dashed
// reference lines through the origin, labelled root markers, legend and grid.
func NewFigure(c curve.Curve) Figure {
	markers := make([]Marker, len(c.Markers))
	for i, m := range c.Markers {
		markers[i] = Marker{
			X:      m.X,
			Y:      m.Y,
			Label:  fmt.Sprintf("%.2f", m.X),
			Color:  MarkerColor,
			Radius: 6,
		}
	}

	dash := []float64{6, 4}
	return Figure{
		Title:   "Degree 11 polynomial and real roots",
		XLabel:  "x",
		YLabel:  "y",
		Caption: "Complex roots are not shown on this plot.",
		X:       Range{Min: c.MinX, Max: c.MaxX},
		Y:       yRange(c),
		Series: []Series{{
			Label:  "y = P(x)",
			Color:  CurveColor,
			Width:  2,
			Points: c.Samples,
		}},
		RefLines: []RefLine{
			{Orientation: Horizontal, Value: 0, Color: ReferenceColor, Width: 1, Dash: dash},
			{Orientation: Vertical, Value: 0, Color: ReferenceColor, Width: 1, Dash: dash},
		},
		Markers:     markers,
		MarkerLabel: "Real roots",
		Legend:      true,
		Grid:        true,
	}
}

// yRange covers the samples and y=0 (where the markers sit) with 5% margins.
func yRange(c curve.Curve) Range {
	lo, hi := c.YRange()
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	if span := hi - lo; span > 0 && !math.IsInf(span, 0) {
		lo -= span * 0.05
		hi += span * 0.05
	} else {
		lo--
		hi++
	}
	return Range{Min: lo, Max: hi}
}
