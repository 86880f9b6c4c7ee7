// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats provides statistical glyphs: histograms, box plots
// and trend lines.
//
// Each statistical glyph computes its statistics from the canvas data
// when drawn and then draws ordinary glyphs over the computed table.
// Like the glyphs they draw, they are immutable and their builder
// methods return modified copies.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-gg/table"
	mstats "github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/internal/frame"
	"github.com/aclements/go-plotkit/plot"
	"github.com/aclements/go-plotkit/style"
)

// HistType is the quantity a histogram bar shows.
type HistType string

const (
	Count       HistType = "count"
	Probability HistType = "probability"
	Density     HistType = "density"
)

// BarMode arranges the bars of grouped histograms.
type BarMode string

const (
	Stack   BarMode = "stack"
	Overlay BarMode = "overlay"
)

// Columns of the binned table drawn by a Histogram.
const (
	HistLeft   = "__plotkit.histogram.left__"
	HistRight  = "__plotkit.histogram.right__"
	HistTop    = "__plotkit.histogram.top__"
	HistBottom = "__plotkit.histogram.bottom__"
	HistHover  = "__plotkit.histogram.hover_text__"
)

// HistHoverFunc formats the tooltip of one bar spanning [left, right)
// with height top.
type HistHoverFunc func(left, right, top float64) string

// DefaultHistHover is the default histogram tooltip.
func DefaultHistHover(left, right, top float64) string {
	return fmt.Sprintf("x = %s - %s<br> y = %s", frame.Format(left), frame.Format(right), frame.Format(top))
}

// Histogram bins a numeric channel and draws a bar per bin.
//
// If the histogram's style has field props, such as a fill color
// mapped from a column, the data is grouped by the columns those
// props read and each group gets its own bars over the same bins.
type Histogram struct {
	x     field.Spec
	bins  int
	edges []float64
	typ   HistType
	mode  BarMode
	style style.Props
	hover HistHoverFunc
}

// NewHistogram returns a histogram of x, which may be any value
// accepted by field.Of.
func NewHistogram(x interface{}) Histogram {
	return Histogram{x: field.Of(x), typ: Count, mode: Stack, style: style.Props{}}
}

// WithBins sets the number of equal-width bins spanning the data. If
// n is 0, the number of bins follows Sturges' rule.
func (h Histogram) WithBins(n int) Histogram {
	h.bins, h.edges = n, nil
	return h
}

// WithEdges sets explicit, increasing bin edges.
func (h Histogram) WithEdges(edges ...float64) Histogram {
	h.bins, h.edges = 0, append([]float64(nil), edges...)
	return h
}

// WithType sets what the bar heights show.
func (h Histogram) WithType(t HistType) Histogram {
	h.typ = t
	return h
}

// WithMode sets how the bars of groups are arranged.
func (h Histogram) WithMode(m BarMode) Histogram {
	h.mode = m
	return h
}

// WithStyle merges props into the bar style.
func (h Histogram) WithStyle(props style.Props) Histogram {
	h.style = h.style.Merge(props)
	return h
}

// WithLine merges line properties into the bar style.
func (h Histogram) WithLine(l style.Line) Histogram { return h.WithStyle(l.Props()) }

// WithFill merges fill properties into the bar style.
func (h Histogram) WithFill(f style.Fill) Histogram { return h.WithStyle(f.Props()) }

// WithHoverTemplate replaces the bar tooltip.
func (h Histogram) WithHoverTemplate(f HistHoverFunc) Histogram {
	h.hover = f
	return h
}

// Plot returns a plot of h over data with the y axis starting at 0.
func (h Histogram) Plot(data *table.Table) plot.Plot {
	return plot.New(data).
		WithYAxis(plot.AxisSpec{Start: plot.Bound(0)}).
		Add(h)
}

// Draw bins the canvas data and draws the bars.
func (h Histogram) Draw(c *glyph.Canvas) error {
	switch h.typ {
	case Count, Probability, Density:
	default:
		return fmt.Errorf("unknown histogram type %q", h.typ)
	}
	switch h.mode {
	case Stack, Overlay:
	default:
		return fmt.Errorf("unknown histogram mode %q", h.mode)
	}

	// The binned table has no facet columns, so filter first.
	data := frame.Filter(c.Data, c.Filter)
	t, names, err := field.Resolve(data, field.Named{Name: "x", Spec: h.x})
	if err != nil {
		return err
	}
	xcol := names[0]

	st := style.Props{style.FillAlpha: 0.6}.Merge(h.style)
	by, err := fieldColumns(t, st)
	if err != nil {
		return err
	}

	all, err := finite(t.MustColumn(xcol))
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	edges := h.edges
	if edges == nil {
		n := h.bins
		if n <= 0 {
			n = sturges(len(all))
		}
		edges = binEdges(all, n)
	} else if len(edges) < 2 || !sort.Float64sAreSorted(edges) {
		return fmt.Errorf("histogram: need at least two increasing edges, got %v", edges)
	}

	name, label := xcol, ""
	if len(by) > 0 {
		name = strings.Join(by, ",")
		if len(by) > 1 {
			label = name
		}
	}

	hover := h.hover
	if hover == nil {
		hover = DefaultHistHover
	}
	nb := len(edges) - 1
	cols := map[string][]interface{}{}
	var order []string
	add := func(col string, v interface{}) {
		if _, ok := cols[col]; !ok {
			order = append(order, col)
		}
		cols[col] = append(cols[col], v)
	}
	tops := make([]float64, nb)
	for _, g := range frame.Groups(t, by...) {
		xs, err := finite(g.Table.MustColumn(xcol))
		if err != nil {
			return fmt.Errorf("histogram: %w", err)
		}
		hist := count(xs, edges)
		switch h.typ {
		case Probability:
			for i := 0; len(xs) > 0 && i < len(hist); i++ {
				hist[i] /= float64(len(xs))
			}
		case Density:
			total := vec.Sum(hist)
			for i := range hist {
				if total > 0 {
					hist[i] /= total * (edges[i+1] - edges[i])
				}
			}
		}
		bottoms := make([]float64, nb)
		if h.mode == Stack {
			copy(bottoms, tops)
			for i := range tops {
				tops[i] += hist[i]
			}
		} else {
			copy(tops, hist)
		}
		for i := 0; i < nb; i++ {
			// Empty bars draw nothing but would still take a
			// hover.
			if tops[i] == bottoms[i] {
				continue
			}
			for j, col := range by {
				add(col, g.Key[j])
			}
			if label != "" {
				add(label, joinKey(g.Key))
			}
			add(HistLeft, edges[i])
			add(HistRight, edges[i+1])
			add(HistTop, tops[i])
			add(HistBottom, bottoms[i])
			add(HistHover, hover(edges[i], edges[i+1], tops[i]))
		}
	}

	b := new(table.Builder)
	need := append(append([]string(nil), by...), HistLeft, HistRight, HistTop, HistBottom, HistHover)
	if label != "" {
		need = append(need, label)
	}
	for _, col := range need {
		if _, ok := cols[col]; !ok {
			order = append(order, col)
		}
	}
	for _, col := range order {
		b.Add(col, frame.Column(cols[col]))
	}

	bars := glyph.Rect(field.Col(HistLeft), field.Col(HistRight), field.Col(HistTop), field.Col(HistBottom)).
		WithName(name).
		WithStyle(st).
		WithTooltip("{" + HistHover + "}")
	if len(by) > 0 {
		bars = bars.WithLegendGroup(name)
	} else {
		bars = bars.WithLegend(xcol)
	}
	return bars.Draw(&glyph.Canvas{Figure: c.Figure, Legend: c.Legend, Data: b.Done()})
}

// fieldColumns returns the columns read by the field props of st, in
// order of st's sorted keys.
func fieldColumns(t *table.Table, st style.Props) ([]string, error) {
	var by []string
	seen := map[string]bool{}
	for _, k := range st.Keys() {
		spec, ok := st[k].(field.Spec)
		if !ok || !field.IsField(spec) {
			continue
		}
		for _, col := range field.Underlying(spec) {
			if t.Column(col) == nil {
				return nil, fmt.Errorf("style %s: %w", k, &field.MissingColumnError{Name: col})
			}
			if !seen[col] {
				seen[col] = true
				by = append(by, col)
			}
		}
	}
	return by, nil
}

func joinKey(key []interface{}) string {
	parts := make([]string, len(key))
	for i, v := range key {
		parts[i] = frame.Format(v)
	}
	return strings.Join(parts, ",")
}

// finite returns the finite values of col.
func finite(col table.Slice) ([]float64, error) {
	xs, err := frame.Floats(col)
	if err != nil {
		return nil, err
	}
	out := xs[:0:0]
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out, nil
}

// sturges returns the number of bins for n samples by Sturges' rule.
func sturges(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// binEdges returns n+1 equally spaced edges spanning xs.
func binEdges(xs []float64, n int) []float64 {
	lo, hi := 0.0, 1.0
	if len(xs) > 0 {
		lo, hi = mstats.Bounds(xs)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return vec.Linspace(lo, hi, n+1)
}

// count returns the number of xs in each bin. Bins are closed on the
// left, except the last, which is closed on both sides.
func count(xs, edges []float64) []float64 {
	out := make([]float64, len(edges)-1)
	for _, x := range xs {
		if x < edges[0] || x > edges[len(edges)-1] {
			continue
		}
		i := sort.SearchFloat64s(edges, x)
		if edges[i] != x {
			i--
		}
		if i == len(out) {
			i--
		}
		out[i]++
	}
	return out
}
