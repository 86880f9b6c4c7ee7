// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/aclements/go-plotkit/style"

// Axis property names.
const (
	AxisLineColor          = "axis_line_color"
	AxisLabelFontSize      = "axis_label_text_font_size"
	MajorTickLineColor     = "major_tick_line_color"
	MinorTickLineColor     = "minor_tick_line_color"
	MajorLabelTextFontSize = "major_label_text_font_size"
	MajorLabelTextColor    = "major_label_text_color"
)

// AxisKind is the kind of values an axis shows.
type AxisKind string

const (
	AxisLinear      AxisKind = "linear"
	AxisLog         AxisKind = "log"
	AxisCategorical AxisKind = "categorical"
)

// Axis is a figure axis.
type Axis struct {
	Model
	Kind AxisKind
	Dim  Dim

	// DesiredTicks and MinorTicks configure the numeric ticker.
	DesiredTicks int
	MinorTicks   int

	Label         string
	LabelStyle    style.Props
	LabelStandoff int

	// Style holds axis line, tick and tick label properties.
	Style   style.Props
	Visible bool
}

// NewAxis returns a visible axis of the given kind along dim.
func NewAxis(kind AxisKind, dim Dim) *Axis {
	return &Axis{
		Model:        newModel(),
		Kind:         kind,
		Dim:          dim,
		DesiredTicks: 6,
		MinorTicks:   5,
		Style:        style.Props{},
		LabelStyle:   style.Props{},
		Visible:      true,
	}
}

// Suppress hides a's tick marks and tick labels while keeping the
// axis itself.
func (a *Axis) Suppress() {
	a.Style = a.Style.Merge(style.Props{
		MajorTickLineColor:     style.None,
		MinorTickLineColor:     style.None,
		MajorLabelTextFontSize: "0px",
	})
}

// Suppressed reports whether a's tick labels are hidden.
func (a *Axis) Suppressed() bool {
	return a.Style.String(MajorLabelTextFontSize, "") == "0px"
}

// Clone returns a copy of a.
func (a *Axis) Clone() *Axis {
	c := *a
	c.Model = a.Model.clone()
	c.Style = a.Style.Merge()
	c.LabelStyle = a.LabelStyle.Merge()
	return &c
}

// RangeKind is the kind of a Range.
type RangeKind int

const (
	// DataRange is computed from the data, optionally with a
	// fixed start or end.
	DataRange RangeKind = iota
	// FixedRange has a fixed start and end.
	FixedRange
	// FactorRange is a list of categorical factors.
	FactorRange
)

// A Range is the visible extent of one figure dimension. Ranges are
// shared by pointer: figures holding the same *Range pan and zoom
// together.
type Range struct {
	Model
	Kind    RangeKind
	Start   *float64
	End     *float64
	Factors []string
}

// NewDataRange returns an automatic range.
func NewDataRange() *Range {
	return &Range{Model: newModel(), Kind: DataRange}
}

// NewFixedRange returns the range [start, end].
func NewFixedRange(start, end float64) *Range {
	return &Range{Model: newModel(), Kind: FixedRange, Start: &start, End: &end}
}

// NewFactorRange returns a categorical range over factors.
func NewFactorRange(factors ...string) *Range {
	return &Range{Model: newModel(), Kind: FactorRange, Factors: factors}
}

// Clone returns a copy of r.
func (r *Range) Clone() *Range {
	c := *r
	c.Model = r.Model.clone()
	c.Factors = append([]string(nil), r.Factors...)
	return &c
}

// Scale maps data values to screen positions.
type Scale string

const (
	ScaleLinear      Scale = "linear"
	ScaleLog         Scale = "log"
	ScaleCategorical Scale = "categorical"
)

// GridLines draws lines across a figure at the ticks of an axis.
type GridLines struct {
	Model
	Dim          Dim
	Visible      bool
	MinorVisible bool
	Major        style.Props
	Minor        style.Props
}

// NewGridLines returns invisible grid lines along dim.
func NewGridLines(dim Dim) *GridLines {
	return &GridLines{Model: newModel(), Dim: dim, Major: style.Props{}, Minor: style.Props{}}
}

// Title is a text strip attached to a side of a figure.
type Title struct {
	Model
	Text       string
	Style      style.Props
	Background string
}

// NewTitle returns a title with the default background.
func NewTitle(text string) *Title {
	return &Title{Model: newModel(), Text: text, Style: style.Props{}, Background: style.TitleBackground}
}
