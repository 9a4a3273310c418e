// Package polar maps ordered attributes onto a radial chart.
//
// Index 0 points straight up and indices advance clockwise in screen
// coordinates (Y grows downward), one [Layout.Step] apart. A value v is
// plotted at radius (v + CenterOffset) * RingSpacing / 2, so the lowest score
// still sits outside the blank center disc.
//
// Labels are placed by a fixed four-way rule keyed on angular position:
//
//	index 0            centered above its anchor
//	0 < i < count/2    left edge to the right of its anchor
//	i == count/2       centered below its anchor
//	otherwise          right edge to the left of its anchor
//
// Label text reads "NAME [v]" up to the midpoint and "[v] NAME" after it, so
// the value always sits next to the chart.
package polar

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/radar/pkg/errors"
)

// Point is a pixel position on the canvas.
type Point struct {
	X, Y float64
}

// Layout holds the geometry needed to place attributes around a center.
type Layout struct {
	Count        int     // Number of attributes around the circle
	CenterOffset int     // Rings reserved for the blank center disc
	RingSpacing  float64 // Diameter step between guide rings
	MaxRadius    float64 // Diameter of the outermost ring
	MarkerSize   float64 // Diameter of point markers
}

// New returns a layout for count attributes. It fails with EMPTY_CHART when
// there is nothing to lay out, since the angular step would be undefined.
func New(count, centerOffset int, ringSpacing, maxRadius, markerSize float64) (Layout, error) {
	if count < 1 {
		return Layout{}, errors.New(errors.ErrCodeEmptyChart, "no attributes to plot")
	}
	return Layout{
		Count:        count,
		CenterOffset: centerOffset,
		RingSpacing:  ringSpacing,
		MaxRadius:    maxRadius,
		MarkerSize:   markerSize,
	}, nil
}

// Step returns the angle between neighbouring attributes in degrees.
func (l Layout) Step() float64 {
	return 360 / float64(l.Count)
}

// Angle returns the angle of index i in degrees; index 0 is -90 (up).
func (l Layout) Angle(i int) float64 {
	return float64(i)*l.Step() - 90
}

// Radians returns the angle of index i in radians.
func (l Layout) Radians(i int) float64 {
	return l.Angle(i) * math.Pi / 180
}

// Radius returns the distance from the center at which value v is plotted.
func (l Layout) Radius(v int) float64 {
	return float64(v+l.CenterOffset) * l.RingSpacing / 2
}

// OuterRadius returns the radius of the fixed anchor circle used for guide
// spokes and labels.
func (l Layout) OuterRadius() float64 {
	return l.MaxRadius / 2
}

// Point returns the pixel at radius r along index i, truncated toward zero
// relative to the center.
func (l Layout) Point(center Point, i int, r float64) Point {
	rad := l.Radians(i)
	return Point{
		X: center.X + math.Trunc(math.Cos(rad)*r),
		Y: center.Y + math.Trunc(math.Sin(rad)*r),
	}
}

// ValuePoint returns the plotted point for value v at index i.
func (l Layout) ValuePoint(center Point, i, v int) Point {
	return l.Point(center, i, l.Radius(v))
}

// OuterPoint returns the anchor point for index i.
func (l Layout) OuterPoint(center Point, i int) Point {
	return l.Point(center, i, l.OuterRadius())
}

// Polygon returns the closed value trace for values in index order.
func (l Layout) Polygon(center Point, values []int) []Point {
	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = l.ValuePoint(center, i, v)
	}
	return pts
}

// Anchor names the side of a point a label is attached to.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorRight
	AnchorBottom
	AnchorLeft
)

func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorRight:
		return "right"
	case AnchorBottom:
		return "bottom"
	case AnchorLeft:
		return "left"
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// Placement classifies index i. The checks run in order, so with an odd
// count the index at count/2 still lands on the right side.
func (l Layout) Placement(i int) Anchor {
	switch {
	case i == 0:
		return AnchorTop
	case float64(i) < float64(l.Count)*0.5:
		return AnchorRight
	case i == l.Count/2:
		return AnchorBottom
	default:
		return AnchorLeft
	}
}

// Flipped reports whether the label at index i puts the value first.
func (l Layout) Flipped(i int) bool {
	return i > l.Count/2
}

// LabelText returns the label for an attribute at index i.
func (l Layout) LabelText(i int, name string, value int) string {
	upper := strings.ToUpper(name)
	if l.Flipped(i) {
		return fmt.Sprintf("[%d] %s", value, upper)
	}
	return fmt.Sprintf("%s [%d]", upper, value)
}

// LabelOrigin returns the text baseline origin for a label of the given
// width attached to anchor point p.
func (l Layout) LabelOrigin(i int, p Point, width float64) Point {
	m := l.MarkerSize
	gap := math.Trunc(1.5 * m)
	half := math.Trunc(m / 2)
	w := math.Trunc(width)

	switch l.Placement(i) {
	case AnchorTop:
		return Point{X: p.X - math.Trunc(w/2), Y: p.Y - gap}
	case AnchorRight:
		return Point{X: p.X + gap, Y: p.Y + half}
	case AnchorBottom:
		return Point{X: p.X - math.Trunc(w/2), Y: p.Y + math.Trunc(2.5*m)}
	default:
		return Point{X: p.X - w - gap, Y: p.Y + half}
	}
}

// Label is a positioned piece of label text.
type Label struct {
	Text   string
	Anchor Anchor
	Origin Point
}

// MeasureFunc returns the rendered width of s.
type MeasureFunc func(s string) float64

// Label builds the text, side, and origin for the attribute at index i whose
// anchor point is p.
func (l Layout) Label(i int, name string, value int, p Point, measure MeasureFunc) Label {
	text := l.LabelText(i, name, value)
	return Label{
		Text:   text,
		Anchor: l.Placement(i),
		Origin: l.LabelOrigin(i, p, measure(text)),
	}
}
