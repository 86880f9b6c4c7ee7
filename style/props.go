// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package style provides the visual property bags shared by glyphs,
// axes, titles and legends.
//
// A Props bag maps property names such as "line_color" to values.
// Bags are never modified in place by this package: Merge, With and
// friends all return new bags, so a bag held by an immutable glyph
// spec can be shared freely between copies of that spec.
//
// The Line, Fill, Marker and Text records group the properties of
// one styling capability. Their Props methods produce bags that can
// be merged into a glyph's style.
package style

import (
	"reflect"
	"sort"
)

// Property names.
const (
	LineColor      = "line_color"
	LineAlpha      = "line_alpha"
	LineWidth      = "line_width"
	LineDash       = "line_dash"
	LineJoin       = "line_join"
	LineCap        = "line_cap"
	LineDashOffset = "line_dash_offset"

	FillColor = "fill_color"
	FillAlpha = "fill_alpha"

	MarkerType = "marker"
	Size       = "size"
	Angle      = "angle"

	TextColor      = "text_color"
	TextAlpha      = "text_alpha"
	TextFont       = "text_font"
	TextFontSize   = "text_font_size"
	TextFontStyle  = "text_font_style"
	TextAlign      = "text_align"
	TextBaseline   = "text_baseline"
	TextLineHeight = "text_line_height"
)

// LineKeys, FillKeys, MarkerKeys and TextKeys list the property names
// of each styling capability.
var (
	LineKeys   = []string{LineColor, LineAlpha, LineWidth, LineDash, LineJoin, LineCap, LineDashOffset}
	FillKeys   = []string{FillColor, FillAlpha}
	MarkerKeys = []string{MarkerType, Size, Angle}
	TextKeys   = []string{TextColor, TextAlpha, TextFont, TextFontSize, TextFontStyle, TextAlign, TextBaseline, TextLineHeight}
)

// Props is a bag of visual properties. Values are usually literals
// (strings, numbers, booleans), but glyph styles may also hold field
// specs that are resolved against the data at render time.
type Props map[string]interface{}

// Merge returns a new bag holding the properties of p overridden, key
// by key, by those of each of others in turn.
func (p Props) Merge(others ...Props) Props {
	n := len(p)
	for _, o := range others {
		n += len(o)
	}
	out := make(Props, n)
	for k, v := range p {
		out[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// With returns a copy of p with key set to v.
func (p Props) With(key string, v interface{}) Props {
	return p.Merge(Props{key: v})
}

// Without returns a copy of p without the given keys.
func (p Props) Without(keys ...string) Props {
	out := p.Merge()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Only returns a copy of p restricted to the given keys.
func (p Props) Only(keys ...string) Props {
	out := make(Props)
	for _, k := range keys {
		if v, ok := p[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Prefixed returns a copy of p with prefix prepended to every key.
// Titles use this to turn text properties into axis label
// properties.
func (p Props) Prefixed(prefix string) Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[prefix+k] = v
	}
	return out
}

// Has reports whether key is set in p.
func (p Props) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Keys returns the keys of p in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the value of key as a string, or def if key is
// unset or does not hold a string.
func (p Props) String(key, def string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return def
}

// Float returns the value of key converted to float64, or def if key
// is unset or does not hold a number.
func (p Props) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return def
}

// Equal reports whether p and q hold the same properties.
func (p Props) Equal(q Props) bool {
	if len(p) != len(q) {
		return false
	}
	for k, v := range p {
		w, ok := q[k]
		if !ok || !reflect.DeepEqual(v, w) {
			return false
		}
	}
	return true
}

func toFloat(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// collect builds a bag from alternating key/value pairs, skipping
// nil values.
func collect(kvs ...interface{}) Props {
	p := make(Props)
	for i := 0; i < len(kvs); i += 2 {
		if kvs[i+1] != nil {
			p[kvs[i].(string)] = kvs[i+1]
		}
	}
	return p
}
