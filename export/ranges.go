// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-plotkit/internal/frame"
	"github.com/aclements/go-plotkit/plot"
	"github.com/aclements/go-plotkit/scene"
)

// extent is the resolved data extent of a range.
type extent struct {
	lo, hi  float64
	factors []string
}

type rangeKey struct {
	r *scene.Range
	d scene.Dim
}

// resolveRanges computes the extent of every range used by figs.
// Figures sharing a range share its extent, which covers the
// renderers of all of them.
func resolveRanges(figs []*scene.Figure) map[rangeKey]extent {
	users := make(map[rangeKey][]*scene.GlyphRenderer)
	var order []rangeKey
	add := func(k rangeKey, rs []*scene.GlyphRenderer) {
		if _, ok := users[k]; !ok {
			order = append(order, k)
		}
		users[k] = append(users[k], rs...)
	}
	for _, fig := range figs {
		rs := fig.Renderers
		if fig.HasTag(plot.LegendPanelTag) {
			// The panel's renderers belong to other figures.
			rs = nil
		}
		add(rangeKey{fig.XRange, scene.X}, rs)
		add(rangeKey{fig.YRange, scene.Y}, rs)
	}

	out := make(map[rangeKey]extent, len(order))
	for _, k := range order {
		r, rs := k.r, users[k]
		if r == nil {
			out[k] = extent{lo: 0, hi: 1}
			continue
		}
		if r.Kind == scene.FactorRange {
			out[k] = extent{lo: 0, hi: float64(len(r.Factors)), factors: r.Factors}
			continue
		}
		_, _, factors, ok := scene.Bounds(rs, k.d)
		if !ok && len(factors) > 0 && r.Kind != scene.FixedRange {
			out[k] = extent{lo: 0, hi: float64(len(factors)), factors: factors}
			continue
		}
		lo, hi := r.Extent(rs, k.d)
		out[k] = extent{lo: lo, hi: hi}
	}
	return out
}

// axisMap maps data values along one dimension of a figure to
// pixels.
type axisMap struct {
	extent
	log    bool
	index  map[string]int
	p0, p1 float64 // pixels of lo and hi
}

func newAxisMap(e extent, log bool, p0, p1 float64) *axisMap {
	m := &axisMap{extent: e, p0: p0, p1: p1}
	if m.hi == m.lo {
		m.hi = m.lo + 1
	}
	if e.factors != nil {
		m.index = make(map[string]int, len(e.factors))
		for i, f := range e.factors {
			m.index[f] = i
		}
		return m
	}
	if log {
		m.log = true
		if m.hi <= 0 {
			m.lo, m.hi = 1, 10
		} else if m.lo <= 0 {
			m.lo = m.hi / 1000
		}
	}
	return m
}

func (m *axisMap) categorical() bool { return m.factors != nil }

// num maps a numeric data coordinate to pixels.
func (m *axisMap) num(v float64) float64 {
	lo, hi := m.lo, m.hi
	if m.log {
		v, lo, hi = math.Log10(v), math.Log10(lo), math.Log10(hi)
	}
	f := scale.Linear{Min: lo, Max: hi}.Map(v)
	return m.p0 + f*(m.p1-m.p0)
}

// pos maps a data value to pixels. On a categorical axis, factors map
// to their centers shifted by offset category widths. ok is false for
// missing or unknown values.
func (m *axisMap) pos(v interface{}, offset float64) (px float64, ok bool) {
	if f, isNum := frame.ToFloat(v); isNum {
		if math.IsNaN(f) || math.IsInf(f, 0) || (m.log && f <= 0) {
			return 0, false
		}
		if m.categorical() {
			f += offset
		}
		return m.num(f), true
	}
	if !m.categorical() || v == nil {
		return 0, false
	}
	i, ok := m.index[frame.Format(v)]
	if !ok {
		return 0, false
	}
	return m.num(float64(i) + 0.5 + offset), true
}

// span returns the pixel length of d data units, or of d category
// widths on a categorical axis.
func (m *axisMap) span(d float64) float64 {
	if m.log {
		return math.Abs(m.p1-m.p0) * d / 10
	}
	return math.Abs(m.num(m.lo+d) - m.num(m.lo))
}

// ticks returns the major and minor tick positions in data units and
// the labels of the major ticks.
func (m *axisMap) ticks(desired int) (major, minor []float64, labels []string) {
	if desired <= 0 {
		desired = 6
	}
	if m.categorical() {
		for i, f := range m.factors {
			major = append(major, float64(i)+0.5)
			labels = append(labels, f)
		}
		return major, nil, labels
	}
	lo, hi := m.lo, m.hi
	if m.log {
		// Decades only.
		lo, hi = math.Log10(lo), math.Log10(hi)
		o := scale.TickOptions{Max: desired, MinLevel: 0, MaxLevel: 1000}
		exps, _ := scale.Linear{Min: lo, Max: hi}.Ticks(o)
		// Log10 of a power of ten may miss the integer by an ulp.
		const eps = 1e-9
		for _, e := range exps {
			if e >= lo-eps && e <= hi+eps {
				major = append(major, math.Pow(10, e))
				labels = append(labels, "1e"+frame.Format(e))
			}
		}
		return major, nil, labels
	}
	maj, mnr := scale.Linear{Min: lo, Max: hi}.Ticks(scale.TickOptions{Max: desired})
	for _, t := range maj {
		if t >= lo && t <= hi {
			major = append(major, t)
			labels = append(labels, frame.Format(t))
		}
	}
	for _, t := range mnr {
		if t >= lo && t <= hi {
			minor = append(minor, t)
		}
	}
	return major, minor, labels
}
