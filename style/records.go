// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

// Line holds stroke properties. A nil field is left unset. Color and
// Dash may be field specs.
type Line struct {
	Color      interface{}
	Alpha      interface{}
	Width      interface{}
	Dash       interface{}
	Join       interface{}
	Cap        interface{}
	DashOffset interface{}
}

// Props returns the bag of properties set in l.
func (l Line) Props() Props {
	return collect(
		LineColor, l.Color,
		LineAlpha, l.Alpha,
		LineWidth, l.Width,
		LineDash, l.Dash,
		LineJoin, l.Join,
		LineCap, l.Cap,
		LineDashOffset, l.DashOffset,
	)
}

// Fill holds area fill properties. Color may be a field spec.
type Fill struct {
	Color interface{}
	Alpha interface{}
}

func (f Fill) Props() Props {
	return collect(FillColor, f.Color, FillAlpha, f.Alpha)
}

// Marker holds point marker properties. Type and Size may be field
// specs.
type Marker struct {
	Type  interface{}
	Size  interface{}
	Angle interface{}
}

func (m Marker) Props() Props {
	return collect(MarkerType, m.Type, Size, m.Size, Angle, m.Angle)
}

// Text holds text properties. Color may be a field spec.
type Text struct {
	Color      interface{}
	Alpha      interface{}
	Font       interface{}
	FontSize   interface{}
	FontStyle  interface{}
	Align      interface{}
	Baseline   interface{}
	LineHeight interface{}
}

func (t Text) Props() Props {
	return collect(
		TextColor, t.Color,
		TextAlpha, t.Alpha,
		TextFont, t.Font,
		TextFontSize, t.FontSize,
		TextFontStyle, t.FontStyle,
		TextAlign, t.Align,
		TextBaseline, t.Baseline,
		TextLineHeight, t.LineHeight,
	)
}

// Markers lists the marker types understood by scatter glyphs, in
// the order used when cycling markers over factors.
var Markers = []string{
	"circle", "square", "triangle", "diamond", "inverted_triangle",
	"plus", "cross", "x", "star", "hex", "asterisk", "dash", "dot",
	"circle_cross", "circle_x", "square_cross", "square_x",
	"diamond_cross", "triangle_dot", "y",
}
