package chart

import (
	"github.com/matzehuels/radar/pkg/errors"
	"github.com/matzehuels/radar/pkg/polar"
)

const (
	// DefaultHeight is the default image height in pixels.
	DefaultHeight = 4000

	// DefaultCenterRings is the number of rings kept blank at the center.
	DefaultCenterRings = 2

	// DefaultValueRings is the number of rings spanned by the value scale.
	DefaultValueRings = 20

	// MinHeight is the smallest height that still leaves room for labels.
	MinHeight = 100

	// ringMargin is the number of ring steps left free around the chart for labels.
	ringMargin = 6
)

// Geometry holds every canvas measurement, all derived from one height.
type Geometry struct {
	Width       int
	Height      int
	StrokeWidth float64
	CenterRings int
	ValueRings  int
	RingSpacing float64 // Diameter step between rings
	MaxRadius   float64 // Diameter of the outermost ring
	MarkerSize  float64 // Diameter of point markers
	FontSize    float64
}

// NewGeometry derives the canvas geometry from a height. Sizes are truncated
// to whole pixels so that rings land on a stable grid.
func NewGeometry(height, centerRings, valueRings int) (Geometry, error) {
	if height < MinHeight {
		return Geometry{}, errors.New(errors.ErrCodeInvalidConfig, "height %d is below the minimum of %d", height, MinHeight)
	}
	if centerRings < 0 {
		return Geometry{}, errors.New(errors.ErrCodeInvalidConfig, "center rings must not be negative, got %d", centerRings)
	}
	if valueRings < 1 {
		return Geometry{}, errors.New(errors.ErrCodeInvalidConfig, "value rings must be at least 1, got %d", valueRings)
	}

	rings := centerRings + valueRings
	spacing := height / (rings + ringMargin)
	return Geometry{
		Width:       (height*14 + 9) / 10,
		Height:      height,
		StrokeWidth: float64(max(1, height*15/10000)),
		CenterRings: centerRings,
		ValueRings:  valueRings,
		RingSpacing: float64(spacing),
		MaxRadius:   float64(rings * spacing),
		MarkerSize:  float64(int(float64(spacing) / 2.5)),
		FontSize:    float64(spacing / 2),
	}, nil
}

// DefaultGeometry returns the geometry for [DefaultHeight].
func DefaultGeometry() Geometry {
	g, _ := NewGeometry(DefaultHeight, DefaultCenterRings, DefaultValueRings)
	return g
}

// RingCount returns the total number of guide rings.
func (g Geometry) RingCount() int {
	return g.CenterRings + g.ValueRings
}

// Center returns the canvas center.
func (g Geometry) Center() polar.Point {
	return polar.Point{X: float64(g.Width / 2), Y: float64(g.Height / 2)}
}

// Layout returns the polar layout for count attributes on this canvas.
func (g Geometry) Layout(count int) (polar.Layout, error) {
	return polar.New(count, g.CenterRings, g.RingSpacing, g.MaxRadius, g.MarkerSize)
}
