// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"errors"
	"fmt"

	"github.com/aclements/go-plotkit/scene"
	"github.com/aclements/go-plotkit/style"
)

// Default layout values.
const (
	DefaultMargin    = 8
	DefaultMinBorder = 2
)

// ErrNoFactors is returned when a categorical axis has no factors.
var ErrNoFactors = errors.New("categorical axis requires factors")

// AxisType is the type of values an axis shows.
type AxisType string

const (
	Numeric     AxisType = "numeric"
	Categorical AxisType = "categorical"
)

// Mirror controls the axis drawn on the side opposite an axis.
//
// The zero Mirror mirrors visible axes and does not mirror hidden
// ones. A default mirror has no tick marks or tick labels.
type Mirror struct {
	mode  mirrorMode
	style style.Props
}

type mirrorMode int

const (
	mirrorAuto mirrorMode = iota
	mirrorOn
	mirrorOff
)

var (
	// MirrorOn always draws a plain mirror axis.
	MirrorOn = Mirror{mode: mirrorOn}
	// MirrorOff never draws a mirror axis.
	MirrorOff = Mirror{mode: mirrorOff}
)

// MirrorStyle draws a mirror axis with the given axis style instead
// of the default suppressed one.
func MirrorStyle(p style.Props) Mirror {
	return Mirror{mode: mirrorOn, style: p}
}

// Bound returns a pointer to v, for use as a fixed range end.
func Bound(v float64) *float64 { return &v }

// AxisSpec configures one axis of a plot. The zero AxisSpec is a
// visible, mirrored, linear numeric axis with an automatic range.
type AxisSpec struct {
	Type AxisType

	// Scale is ScaleLinear or ScaleLog. It applies to numeric axes.
	Scale scene.Scale

	// Start and End fix the ends of a numeric range. A nil end is
	// computed from the data.
	Start, End *float64

	// Factors lists the categories of a categorical axis.
	Factors []string

	// DesiredTicks and MinorTicks default to 6 and 5.
	DesiredTicks int
	MinorTicks   int

	Label         string
	LabelStyle    style.Props
	LabelStandoff int

	// Style holds axis line, tick and tick label properties, such
	// as scene.MajorTickLineColor.
	Style style.Props

	Hidden bool
	Mirror Mirror
}

func (s AxisSpec) validate() error {
	switch s.Type {
	case "", Numeric:
		switch s.Scale {
		case "", scene.ScaleLinear, scene.ScaleLog:
		default:
			return fmt.Errorf("unknown axis scale %q", s.Scale)
		}
	case Categorical:
		if s.Factors == nil {
			return ErrNoFactors
		}
	default:
		return fmt.Errorf("unknown axis type %q", s.Type)
	}
	return nil
}

func (s AxisSpec) kind() scene.AxisKind {
	switch {
	case s.Type == Categorical:
		return scene.AxisCategorical
	case s.Scale == scene.ScaleLog:
		return scene.AxisLog
	}
	return scene.AxisLinear
}

// makeAxis returns the axis and mirror axis described by s. Either
// may be nil.
func makeAxis(s AxisSpec, dim scene.Dim) (axis, mirror *scene.Axis) {
	show := s.Mirror.mode == mirrorOn || s.Mirror.mode == mirrorAuto && !s.Hidden
	if s.Hidden && !show {
		return nil, nil
	}

	base := scene.NewAxis(s.kind(), dim)
	if s.DesiredTicks > 0 {
		base.DesiredTicks = s.DesiredTicks
	}
	if s.MinorTicks > 0 {
		base.MinorTicks = s.MinorTicks
	}

	if show {
		mirror = base.Clone()
		if s.Mirror.style != nil {
			mirror.Style = mirror.Style.Merge(s.Mirror.style)
		} else {
			mirror.Suppress()
		}
	}
	if !s.Hidden {
		axis = base
		axis.Label = s.Label
		axis.LabelStyle = axis.LabelStyle.Merge(s.LabelStyle)
		axis.LabelStandoff = s.LabelStandoff
		axis.Style = axis.Style.Merge(s.Style)
	}
	return axis, mirror
}

func makeScale(s AxisSpec) scene.Scale {
	switch s.kind() {
	case scene.AxisCategorical:
		return scene.ScaleCategorical
	case scene.AxisLog:
		return scene.ScaleLog
	}
	return scene.ScaleLinear
}

func makeRange(s AxisSpec) (*scene.Range, error) {
	if s.Type == Categorical {
		if s.Factors == nil {
			return nil, ErrNoFactors
		}
		return scene.NewFactorRange(s.Factors...), nil
	}
	if s.Start != nil && s.End != nil {
		return scene.NewFixedRange(*s.Start, *s.End), nil
	}
	r := scene.NewDataRange()
	if s.Start != nil {
		v := *s.Start
		r.Start = &v
	}
	if s.End != nil {
		v := *s.End
		r.End = &v
	}
	return r, nil
}

// TitleSpec configures a title strip.
type TitleSpec struct {
	Text string

	// Placement is the side of the figure the title is attached to.
	// The empty placement takes the default: above for titles and
	// none for secondary titles. PlaceNone removes the title.
	Placement scene.Place

	// Style holds text properties (see style.Text).
	Style style.Props

	// Background defaults to style.TitleBackground.
	Background string
}

// merge returns s with the non-zero fields of o applied.
func (s TitleSpec) merge(o TitleSpec) TitleSpec {
	if o.Text != "" {
		s.Text = o.Text
	}
	if o.Placement != "" {
		s.Placement = o.Placement
	}
	s.Style = s.Style.Merge(o.Style)
	if o.Background != "" {
		s.Background = o.Background
	}
	return s
}

func makeTitle(s TitleSpec, def scene.Place) (*scene.Title, scene.Place) {
	place := s.Placement
	if place == "" {
		place = def
	}
	if place == scene.PlaceNone || s.Text == "" {
		return nil, scene.PlaceNone
	}
	t := scene.NewTitle(s.Text)
	t.Style = t.Style.Merge(s.Style)
	if s.Background != "" {
		t.Background = s.Background
	}
	return t, place
}

// GridLineSpec configures the grid lines of one dimension. Grid lines
// are hidden until a GridLineSpec is given.
type GridLineSpec struct {
	Hidden      bool
	MinorHidden bool

	// Major and Minor hold line properties (see style.Line).
	Major style.Props
	Minor style.Props
}

func makeGridLines(s *GridLineSpec, dim scene.Dim) *scene.GridLines {
	if s == nil || s.Hidden {
		return nil
	}
	g := scene.NewGridLines(dim)
	g.Visible = true
	g.Major = g.Major.Merge(s.Major)
	if s.MinorHidden {
		g.Minor = style.Props{style.LineColor: style.None}
	} else {
		g.MinorVisible = true
		g.Minor = g.Minor.Merge(s.Minor)
	}
	return g
}

// LegendSpec configures a plot's legend.
type LegendSpec struct {
	// Placement defaults to PlaceCenter, inside the plot area.
	// PlaceNone leaves the legend out of the figure.
	Placement scene.Place

	// Location is the corner or edge of the placement area, such as
	// "top_left" or "bottom_right".
	Location string

	// Orientation is "vertical" or "horizontal".
	Orientation string

	NCols, NRows int

	Title      string
	TitleStyle style.Props
	LabelStyle style.Props
	Background string
}

func (s LegendSpec) placement() scene.Place {
	if s.Placement == "" {
		return scene.PlaceCenter
	}
	return s.Placement
}

func applyLegend(s LegendSpec, l *scene.Legend) {
	if s.Location != "" {
		l.Location = s.Location
	}
	if s.Orientation != "" {
		l.Orientation = s.Orientation
	}
	l.NCols, l.NRows = s.NCols, s.NRows
	l.Title = s.Title
	l.TitleStyle = l.TitleStyle.Merge(s.TitleStyle)
	l.LabelStyle = l.LabelStyle.Merge(s.LabelStyle)
	if s.Background != "" {
		l.Background = s.Background
	}
}

// Layout configures the figure of a plot. Zero fields take the
// defaults: automatic size, DefaultMinBorder, DefaultMargin and a
// style.Background background.
type Layout struct {
	Width, Height int
	MinBorder     int
	Margin        int
	Background    string
}

func (l Layout) apply(fig *scene.Figure) {
	fig.Width, fig.Height = l.Width, l.Height
	fig.MinBorder = DefaultMinBorder
	if l.MinBorder > 0 {
		fig.MinBorder = l.MinBorder
	}
	fig.Margin = DefaultMargin
	if l.Margin > 0 {
		fig.Margin = l.Margin
	}
	fig.Background = style.Background
	if l.Background != "" {
		fig.Background = l.Background
	}
}
