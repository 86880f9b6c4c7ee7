// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-plotkit/internal/frame"
)

var dimChannels = [...][]string{
	X: {"x", "x0", "x1", "x2", "left", "right"},
	Y: {"y", "y0", "y1", "y2", "top", "bottom"},
}

// Channels returns the glyph channels that hold positions along d.
func Channels(d Dim) []string {
	return dimChannels[d]
}

// Bounds returns the extent along d of the data drawn by the visible
// renderers in rs. Numeric data contributes to lo and hi; any other
// data is returned as categorical factors in order of first
// appearance. ok is false if there is no numeric data.
func Bounds(rs []*GlyphRenderer, d Dim) (lo, hi float64, factors []string, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	seen := make(map[string]bool)
	add := func(xs []float64, pad float64) {
		var finite []float64
		for _, x := range xs {
			if !math.IsNaN(x) && !math.IsInf(x, 0) {
				finite = append(finite, x)
			}
		}
		if len(finite) == 0 {
			return
		}
		min, max := stats.Bounds(finite)
		lo = math.Min(lo, min-pad)
		hi = math.Max(hi, max+pad)
		ok = true
	}
	for _, r := range rs {
		if !r.Visible || r.Source == nil || r.Source.Table == nil {
			continue
		}
		t := r.Source.Table
		for _, ch := range dimChannels[d] {
			pad := barPad(r.Glyph, ch)
			col, val, has := r.Glyph.Channel(ch)
			if !has {
				continue
			}
			if col == "" {
				if f, isNum := frame.ToFloat(val); isNum {
					add([]float64{f}, pad)
				}
				continue
			}
			data := t.Column(col)
			if data == nil || frame.Len(data) == 0 {
				continue
			}
			if frame.IsNumeric(data) {
				xs, err := frame.Floats(data)
				if err == nil {
					add(xs, pad)
				}
				continue
			}
			for _, s := range frame.Strings(data) {
				if !seen[s] {
					seen[s] = true
					factors = append(factors, s)
				}
			}
		}
	}
	if !ok {
		lo, hi = 0, 0
	}
	return
}

// barPad returns half the thickness of a bar glyph along channel ch.
func barPad(g Glyph, ch string) float64 {
	var key string
	switch {
	case g.Kind == VBar && ch == "x":
		key = "width"
	case g.Kind == HBar && ch == "y":
		key = "height"
	default:
		return 0
	}
	if f, ok := frame.ToFloat(g.Values[key]); ok {
		return f / 2
	}
	return 0
}

// Extent returns the numeric interval shown by r for the renderers
// rs along d. Automatic bounds are padded by 5% on each side.
func (r *Range) Extent(rs []*GlyphRenderer, d Dim) (lo, hi float64) {
	if r.Kind == FixedRange {
		return *r.Start, *r.End
	}
	lo, hi, _, ok := Bounds(rs, d)
	if !ok {
		lo, hi = 0, 1
	}
	if lo == hi {
		pad := math.Abs(lo) * 0.1
		if pad == 0 {
			pad = 0.5
		}
		lo, hi = lo-pad, hi+pad
	} else {
		pad := (hi - lo) * 0.05
		lo, hi = lo-pad, hi+pad
	}
	if r.Start != nil {
		lo = *r.Start
	}
	if r.End != nil {
		hi = *r.End
	}
	return lo, hi
}
