// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glyph builds the marks of a plot.
//
// A Spec is an immutable description of one kind of mark: its data
// channels, its style, its legend binding and its tooltip. Builder
// methods return modified copies, so a Spec can be shared and reused
// freely. Drawing a Spec on a Canvas resolves its channels against
// the canvas data and adds renderers to the canvas figure.
package glyph

import (
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/scene"
	"github.com/aclements/go-plotkit/style"
)

// A Glyph draws itself onto a canvas.
type Glyph interface {
	Draw(c *Canvas) error
}

// Canvas is the target of Glyph.Draw.
type Canvas struct {
	// Figure receives renderers. The canvas does not own it.
	Figure *scene.Figure

	// Legend, if non-nil, receives legend items.
	Legend *scene.Legend

	// Data is the table glyph channels are resolved against. It may
	// be nil.
	Data *table.Table

	// Filter restricts rendered rows to one facet.
	Filter map[string]interface{}
}

// StepMode places the steps of a Step glyph relative to its points.
type StepMode string

const (
	StepBefore StepMode = "before"
	StepAfter  StepMode = "after"
	StepCenter StepMode = "center"
)

// Spec describes one glyph. The zero Spec is not valid; use one of
// the constructors.
type Spec struct {
	kind     scene.Kind
	channels []field.Named
	values   map[string]interface{}
	style    style.Props

	// standalone glyphs resolve against no table.
	standalone bool

	name    string
	legend  *LegendBinding
	err     error
	tooltip Tooltip
	level   scene.Level
}

func newSpec(kind scene.Kind, channels ...field.Named) Spec {
	return Spec{
		kind:     kind,
		channels: channels,
		values:   map[string]interface{}{},
		style:    style.Props{},
		level:    scene.LevelGlyph,
	}
}

func ch(name string, v interface{}) field.Named {
	return field.Named{Name: name, Spec: field.Of(v)}
}

// Scatter returns a marker at each (x, y).
//
// Each position argument, here and in the other constructors, may be
// a field.Spec, a column reference made with field.Col, a slice of
// per-row values, or a scalar.
func Scatter(x, y interface{}) Spec {
	return newSpec(scene.Scatter, ch("x", x), ch("y", y))
}

// Line returns a line through the points (x, y).
func Line(x, y interface{}) Spec {
	return newSpec(scene.Line, ch("x", x), ch("y", y))
}

// VLine returns vertical lines at x.
func VLine(x interface{}) Spec {
	return newSpec(scene.VSpan, ch("x", x))
}

// HLine returns horizontal lines at y.
func HLine(y interface{}) Spec {
	return newSpec(scene.HSpan, ch("y", y))
}

// Segment returns a line segment from (x0, y0) to (x1, y1).
func Segment(x0, y0, x1, y1 float64) Spec {
	s := newSpec(scene.Segment, ch("x0", x0), ch("y0", y0), ch("x1", x1), ch("y1", y1))
	s.standalone = true
	return s
}

// Ray returns a ray starting at (x, y) at the given angle in degrees
// counterclockwise from the positive x axis.
func Ray(x, y, degrees float64) Spec {
	s := newSpec(scene.Ray, ch("x", x), ch("y", y))
	s.standalone = true
	s.values["angle"] = degrees
	s.values["length"] = 0.0
	return s
}

// Step returns a step line through (x, y).
func Step(x, y interface{}, mode StepMode) Spec {
	s := newSpec(scene.Step, ch("x", x), ch("y", y))
	s.values["mode"] = string(mode)
	return s
}

// VBar returns vertical bars centered at x extending from 0 to top.
func VBar(x, top interface{}) Spec {
	s := newSpec(scene.VBar, ch("x", x), ch("top", top), ch("bottom", 0.0))
	s.values["width"] = 1.0
	s.style = style.Props{style.FillAlpha: 0.95}
	return s
}

// HBar returns horizontal bars centered at y extending from 0 to
// right.
func HBar(y, right interface{}) Spec {
	s := newSpec(scene.HBar, ch("y", y), ch("right", right), ch("left", 0.0))
	s.values["height"] = 1.0
	s.style = style.Props{style.FillAlpha: 0.95}
	return s
}

// Rect returns axis-aligned rectangles.
func Rect(left, right, top, bottom interface{}) Spec {
	s := newSpec(scene.Quad, ch("left", left), ch("right", right), ch("top", top), ch("bottom", bottom))
	s.style = style.Props{style.FillAlpha: 0.95}
	return s
}

// VArea returns the area between y1 and y2 over x.
func VArea(x, y1, y2 interface{}) Spec {
	s := newSpec(scene.VArea, ch("x", x), ch("y1", y1), ch("y2", y2))
	s.style = style.Props{style.FillAlpha: 0.95}
	return s
}

// HArea returns the area between x1 and x2 over y.
func HArea(y, x1, x2 interface{}) Spec {
	s := newSpec(scene.HArea, ch("y", y), ch("x1", x1), ch("x2", x2))
	s.style = style.Props{style.FillAlpha: 0.95}
	return s
}

// Text returns text labels at (x, y).
func Text(x, y, text interface{}) Spec {
	return newSpec(scene.Text, ch("x", x), ch("y", y), ch("text", text))
}

// Kind returns the kind of mark s draws.
func (s Spec) Kind() scene.Kind { return s.kind }

// Name returns the name given to s's renderers.
func (s Spec) Name() string { return s.name }

// Style returns a copy of s's style.
func (s Spec) Style() style.Props { return s.style.Merge() }

// WithName names s's renderers.
func (s Spec) WithName(name string) Spec {
	s.name = name
	return s
}

// WithLegend adds s to the legend item labeled label.
func (s Spec) WithLegend(label string) Spec {
	s.legend, s.err = &LegendBinding{Value: label}, nil
	return s
}

// WithLegendGroup adds s to one legend item per distinct value of
// column col, labeled "col=value".
func (s Spec) WithLegendGroup(col string) Spec {
	s.legend, s.err = &LegendBinding{Group: true, Value: col}, nil
	return s
}

// WithLegendBinding binds s by label or by group. Giving both is an
// ErrLegendConflict. The error is kept in s and returned by Validate,
// so plot.Plot.Validate reports it before anything is rendered, and
// by Draw.
func (s Spec) WithLegendBinding(label, group string) Spec {
	s.legend, s.err = NewLegendBinding(label, group)
	return s
}

// WithTooltip replaces the default tooltip with tmpl, in the syntax
// of field.ParseTemplate.
func (s Spec) WithTooltip(tmpl string) Spec {
	s.tooltip = Tooltip{TooltipCustom, field.ParseTemplate(tmpl)}
	return s
}

// WithoutTooltip disables tooltips.
func (s Spec) WithoutTooltip() Spec {
	s.tooltip = Tooltip{Mode: TooltipNone}
	return s
}

// WithDefaultTooltip restores the default tooltip.
func (s Spec) WithDefaultTooltip() Spec {
	s.tooltip = Tooltip{}
	return s
}

// WithStyle merges props into s's style.
func (s Spec) WithStyle(props style.Props) Spec {
	s.style = s.style.Merge(props)
	return s
}

// WithLine merges line properties into s's style.
func (s Spec) WithLine(l style.Line) Spec { return s.WithStyle(l.Props()) }

// WithFill merges fill properties into s's style.
func (s Spec) WithFill(f style.Fill) Spec { return s.WithStyle(f.Props()) }

// WithMarker merges marker properties into s's style.
func (s Spec) WithMarker(m style.Marker) Spec { return s.WithStyle(m.Props()) }

// WithText merges text properties into s's style.
func (s Spec) WithText(t style.Text) Spec { return s.WithStyle(t.Props()) }

// WithJitter displaces scatter markers along a categorical axis.
// Zero fields take the defaults: width 0.5, mean 0, uniform
// distribution.
func (s Spec) WithJitter(j scene.Jitter) Spec {
	if j.Width == 0 {
		j.Width = 0.5
	}
	if j.Distribution == "" {
		j.Distribution = "uniform"
	}
	return s.withValue(scene.JitterValue, j)
}

// WithDodge shifts s along a categorical axis by d category widths.
func (s Spec) WithDodge(d float64) Spec { return s.withValue(scene.DodgeValue, d) }

// WithWidth sets the width of vertical bars.
func (s Spec) WithWidth(w float64) Spec { return s.withValue("width", w) }

// WithHeight sets the height of horizontal bars.
func (s Spec) WithHeight(h float64) Spec { return s.withValue("height", h) }

// WithBottom sets where vertical bars start.
func (s Spec) WithBottom(bottom interface{}) Spec { return s.withChannel("bottom", bottom) }

// WithLeft sets where horizontal bars start.
func (s Spec) WithLeft(left interface{}) Spec { return s.withChannel("left", left) }

// WithLevel sets the stacking level of s's renderers.
func (s Spec) WithLevel(l scene.Level) Spec {
	s.level = l
	return s
}

func (s Spec) withValue(key string, v interface{}) Spec {
	vals := make(map[string]interface{}, len(s.values)+1)
	for k, x := range s.values {
		vals[k] = x
	}
	vals[key] = v
	s.values = vals
	return s
}

func (s Spec) withChannel(name string, v interface{}) Spec {
	chs := make([]field.Named, 0, len(s.channels)+1)
	for _, c := range s.channels {
		if c.Name != name {
			chs = append(chs, c)
		}
	}
	s.channels = append(chs, ch(name, v))
	return s
}

// Validate reports construction errors, such as conflicting legend
// bindings.
func (s Spec) Validate() error {
	return s.err
}

// Draw resolves s against c.Data and adds its renderers to c.Figure.
func (s Spec) Draw(c *Canvas) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data := c.Data
	if s.standalone {
		data = nil
	}
	t, names, err := field.Resolve(data, s.channels...)
	if err != nil {
		return err
	}
	cols := make(map[string]string, len(names))
	g := scene.Glyph{Kind: s.kind, Fields: cols, Values: map[string]interface{}{}}
	for i, n := range s.channels {
		cols[n.Name] = names[i]
	}
	for k, v := range s.values {
		g.Values[k] = v
	}

	props := s.style
	if s.kind == scene.Scatter && props.Has(style.FillColor) && !props.Has(style.LineColor) {
		props = props.With(style.LineColor, props[style.FillColor])
	}

	_, err = RenderReducing(c, t, g, props, ReduceOptions{
		Name:    s.name,
		Binding: s.legend,
		Tooltip: s.tooltip,
		Default: s.defaultTooltip(cols),
		Level:   s.level,
	})
	return err
}

func (s Spec) defaultTooltip(cols map[string]string) field.Template {
	switch s.kind {
	case scene.Scatter, scene.Line, scene.Step, scene.Text:
		return field.XY(cols["x"], cols["y"])
	case scene.VBar:
		return field.XY(cols["x"], cols["top"])
	case scene.HBar:
		return field.XY(cols["right"], cols["y"])
	case scene.VSpan:
		return field.Columns(cols["x"])
	case scene.HSpan:
		return field.Columns(cols["y"])
	case scene.Quad:
		return field.Columns(cols["left"], cols["right"], cols["top"], cols["bottom"])
	case scene.VArea:
		return field.Columns(cols["x"], cols["y1"], cols["y2"])
	case scene.HArea:
		return field.Columns(cols["y"], cols["x1"], cols["x2"])
	}
	return field.Template{}
}
