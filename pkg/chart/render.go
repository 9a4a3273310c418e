// Package chart rasterizes attribute sets as radial charts.
//
// # Overview
//
// [Render] is a pure function of a normalized [attrs.Set], a [palette.Theme],
// and a [Geometry]: it holds no package state, so the dark and light charts of
// one run can be drawn concurrently from the same inputs.
//
// Layers are painted back to front:
//
//  1. Background (skipped with [WithClearBackground])
//  2. Guide disc behind the rings
//  3. Guide rings
//  4. Value polygon
//  5. Guide rings again, so the polygon sits under the grid
//  6. Per attribute: outer spoke and marker, label, value spoke and marker
//  7. Center cap over the converging spokes
//
// Basic usage:
//
//	geo := chart.DefaultGeometry()
//	png, err := chart.RenderPNG(set, palette.Dark, geo,
//	    chart.WithLogger(logger),
//	)
package chart

import (
	"bytes"
	"image"
	"io"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/matzehuels/radar/pkg/attrs"
	"github.com/matzehuels/radar/pkg/errors"
	"github.com/matzehuels/radar/pkg/fonts"
	"github.com/matzehuels/radar/pkg/palette"
	"github.com/matzehuels/radar/pkg/polar"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	logger *log.Logger
	font   *truetype.Font
	face   font.Face
	clear  bool
}

// WithLogger sets the logger for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(r *renderer) { r.logger = l }
}

// WithFont sets the label font. A face sized to the geometry is created per
// render.
func WithFont(f *truetype.Font) Option {
	return func(r *renderer) { r.font = f }
}

// WithFace uses face as-is for labels, overriding [WithFont].
func WithFace(face font.Face) Option {
	return func(r *renderer) { r.face = face }
}

// WithClearBackground leaves the background transparent.
func WithClearBackground(clear bool) Option {
	return func(r *renderer) { r.clear = clear }
}

// Render draws the chart for set and returns the canvas image. The set must
// already be normalized; an empty set fails with EMPTY_CHART.
func Render(set attrs.Set, theme palette.Theme, geo Geometry, opts ...Option) (image.Image, error) {
	dc, err := render(set, theme, geo, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// RenderPNG draws the chart and encodes it as PNG.
func RenderPNG(set attrs.Set, theme palette.Theme, geo Geometry, opts ...Option) ([]byte, error) {
	dc, err := render(set, theme, geo, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func render(set attrs.Set, theme palette.Theme, geo Geometry, opts []Option) (*gg.Context, error) {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	layout, err := geo.Layout(set.Len())
	if err != nil {
		return nil, err
	}

	if r.face == nil {
		f := r.font
		if f == nil {
			if f, err = fonts.Default(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "load default font")
			}
		}
		face := fonts.Face(f, geo.FontSize)
		defer face.Close()
		r.face = face
	}

	c := canvas{
		dc:     gg.NewContext(geo.Width, geo.Height),
		geo:    geo,
		theme:  theme,
		center: geo.Center(),
	}
	c.dc.SetLineWidth(geo.StrokeWidth)
	c.dc.SetFontFace(r.face)

	r.logger.Debug("drawing chart", "theme", theme.Name(), "attributes", set.Len(),
		"width", geo.Width, "height", geo.Height)

	if !r.clear {
		c.background()
	}
	c.guideDisc()
	c.rings()
	c.polygon(layout, set.Values())
	c.rings()
	for i, a := range set {
		c.attribute(layout, i, a)
	}
	c.centerCap()

	return c.dc, nil
}

// canvas draws chart layers onto a gg context.
type canvas struct {
	dc     *gg.Context
	geo    Geometry
	theme  palette.Theme
	center polar.Point
}

func (c *canvas) background() {
	c.dc.SetColor(c.theme.Color(palette.Background))
	c.dc.Clear()
}

func (c *canvas) guideDisc() {
	r := c.geo.RingSpacing * float64(c.geo.RingCount()) / 2
	c.dc.DrawCircle(c.center.X, c.center.Y, r)
	c.dc.SetColor(c.theme.Color(palette.Guide))
	c.dc.Fill()
}

func (c *canvas) rings() {
	c.dc.SetColor(c.theme.Color(palette.Base))
	for k := 1; k <= c.geo.RingCount(); k++ {
		c.dc.DrawCircle(c.center.X, c.center.Y, float64(k)*c.geo.RingSpacing/2)
		c.dc.Stroke()
	}
}

func (c *canvas) polygon(l polar.Layout, values []int) {
	pts := l.Polygon(c.center, values)
	c.dc.NewSubPath()
	for i, p := range pts {
		if i == 0 {
			c.dc.MoveTo(p.X, p.Y)
			continue
		}
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.SetColor(c.theme.Color(palette.Fill))
	c.dc.Fill()
}

func (c *canvas) attribute(l polar.Layout, i int, a attrs.Attribute) {
	outer := l.OuterPoint(c.center, i)
	c.spoke(outer, palette.Base)
	c.marker(outer, palette.Background, palette.Base)

	lbl := l.Label(i, a.Name, a.Value, outer, func(s string) float64 {
		w, _ := c.dc.MeasureString(s)
		return w
	})
	c.dc.SetColor(c.theme.Color(palette.Text))
	c.dc.DrawString(lbl.Text, lbl.Origin.X, lbl.Origin.Y)

	value := l.ValuePoint(c.center, i, a.Value)
	c.spoke(value, palette.Highlight)
	c.marker(value, palette.Base, palette.Highlight)
}

func (c *canvas) spoke(to polar.Point, role palette.Role) {
	c.dc.SetColor(c.theme.Color(role))
	c.dc.DrawLine(c.center.X, c.center.Y, to.X, to.Y)
	c.dc.Stroke()
}

func (c *canvas) marker(at polar.Point, fill, outline palette.Role) {
	r := c.geo.MarkerSize / 2
	c.dc.DrawCircle(at.X, at.Y, r)
	c.dc.SetColor(c.theme.Color(fill))
	c.dc.Fill()
	c.dc.DrawCircle(at.X, at.Y, r)
	c.dc.SetColor(c.theme.Color(outline))
	c.dc.Stroke()
}

func (c *canvas) centerCap() {
	if c.geo.CenterRings == 0 {
		return
	}
	r := c.geo.RingSpacing * float64(c.geo.CenterRings) / 2
	c.dc.DrawCircle(c.center.X, c.center.Y, r)
	c.dc.SetColor(c.theme.Color(palette.Guide))
	c.dc.Fill()
	c.dc.DrawCircle(c.center.X, c.center.Y, r)
	c.dc.SetColor(c.theme.Color(palette.Highlight))
	c.dc.Stroke()
}
