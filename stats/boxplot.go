// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
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
	"github.com/aclements/go-plotkit/scene"
	"github.com/aclements/go-plotkit/style"
)

// ErrNotCategorical is returned when a box plot's channels are not
// one numeric and one categorical column.
var ErrNotCategorical = errors.New("x/y must be a numeric/categorical pair")

// Columns of the statistics table drawn by a BoxPlot.
const (
	BoxLower  = "__plotkit.boxplot.lower__"
	BoxQ1     = "__plotkit.boxplot.q1__"
	BoxQ2     = "__plotkit.boxplot.q2__"
	BoxQ3     = "__plotkit.boxplot.q3__"
	BoxUpper  = "__plotkit.boxplot.upper__"
	BoxHover  = "__plotkit.boxplot.hover_text__"
	BoxOffset = "__plotkit.boxplot.offset__"
)

// whiskerHead is the width in pixels of the tee at a whisker's end.
const whiskerHead = 10

// BoxStats are the statistics of one box.
type BoxStats struct {
	// Label identifies the box: its category, or its category and
	// subgroup values joined by commas.
	Label string

	// Lower and Upper are the whisker ends.
	Lower, Upper float64

	Q1, Q2, Q3 float64
}

// BoxHoverFunc formats the tooltip of one box.
type BoxHoverFunc func(BoxStats) string

// BoxPlot draws a box and whiskers per category of a categorical
// channel, summarizing the values of a numeric channel.
//
// The box spans the lower and upper quantiles with a bar at the
// middle quantile. Whiskers reach k interquartile ranges beyond the
// box, and values beyond the whiskers are drawn as outliers. If the
// style has field props, each category is split into subgroups by
// the columns those props read and the subgroups' boxes are dodged
// side by side within the category.
type BoxPlot struct {
	x, y      field.Spec
	quantiles [3]float64
	k         float64
	style     style.Props
	hover     BoxHoverFunc
}

// NewBoxPlot returns a box plot of x and y. One must resolve to a
// numeric column and the other to a categorical column; boxes are
// vertical if x is categorical and horizontal otherwise.
func NewBoxPlot(x, y interface{}) BoxPlot {
	return BoxPlot{
		x:         field.Of(x),
		y:         field.Of(y),
		quantiles: [3]float64{0.25, 0.5, 0.75},
		k:         1.5,
		style:     style.Props{},
	}
}

// WithQuantiles sets the quantiles of the box bottom, middle bar and
// box top.
func (b BoxPlot) WithQuantiles(lower, middle, upper float64) BoxPlot {
	b.quantiles = [3]float64{lower, middle, upper}
	return b
}

// WithOutlierFactor sets how many interquartile ranges the whiskers
// reach beyond the box.
func (b BoxPlot) WithOutlierFactor(k float64) BoxPlot {
	b.k = k
	return b
}

// WithStyle merges props into the box style.
func (b BoxPlot) WithStyle(props style.Props) BoxPlot {
	b.style = b.style.Merge(props)
	return b
}

// WithLine merges line properties into the box style.
func (b BoxPlot) WithLine(l style.Line) BoxPlot { return b.WithStyle(l.Props()) }

// WithFill merges fill properties into the box style.
func (b BoxPlot) WithFill(f style.Fill) BoxPlot { return b.WithStyle(f.Props()) }

// WithHoverTemplate replaces the box tooltip.
func (b BoxPlot) WithHoverTemplate(f BoxHoverFunc) BoxPlot {
	b.hover = f
	return b
}

// DefaultBoxHover is the default box tooltip.
func (b BoxPlot) DefaultBoxHover(s BoxStats) string {
	f := frame.Format
	q := b.quantiles
	return fmt.Sprintf("<b>%s</b><br>q(min)=%s<br>q(%s)=%s<br>q(%s)=%s<br>q(%s)=%s<br>q(max)=%s",
		s.Label, f(s.Lower), f(q[0]), f(s.Q1), f(q[1]), f(s.Q2), f(q[2]), f(s.Q3), f(s.Upper))
}

// Validate checks b's parameters.
func (b BoxPlot) Validate() error {
	q := b.quantiles
	for _, v := range q {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("box plot: quantile %v outside [0, 1]", v)
		}
	}
	if !(q[0] <= q[1] && q[1] <= q[2]) {
		return fmt.Errorf("box plot: quantiles %v not increasing", q)
	}
	if b.k < 0 || math.IsNaN(b.k) {
		return fmt.Errorf("box plot: negative outlier factor %v", b.k)
	}
	return nil
}

// Plot returns a plot of b over data whose categorical axis lists
// the sorted categories of data.
func (b BoxPlot) Plot(data *table.Table) plot.Plot {
	p := plot.New(data).Add(b)
	t, names, err := field.Resolve(data, field.Named{Name: "x", Spec: b.x}, field.Named{Name: "y", Spec: b.y})
	if err != nil || t.Len() == 0 {
		// Render reports the error.
		return p
	}
	catY, err := orient(t, names[0], names[1])
	if err != nil {
		return p
	}
	cat := names[0]
	if catY {
		cat = names[1]
	}
	axis := plot.AxisSpec{Type: plot.Categorical, Factors: frame.Strings(frame.Column(frame.SortedUnique(t.MustColumn(cat))))}
	if catY {
		return p.WithYAxis(axis)
	}
	return p.WithXAxis(axis)
}

// orient reports whether the categorical column of a box plot is y.
func orient(t *table.Table, x, y string) (catY bool, err error) {
	xn, yn := frame.IsNumeric(t.MustColumn(x)), frame.IsNumeric(t.MustColumn(y))
	switch {
	case !xn && yn:
		return false, nil
	case xn && !yn:
		return true, nil
	}
	return false, ErrNotCategorical
}

type boxGroup struct {
	key  []interface{}
	rows *table.Table
	BoxStats
}

// Draw computes the box statistics of the canvas data and draws the
// whiskers, boxes, median bars and outliers.
func (b BoxPlot) Draw(c *glyph.Canvas) error {
	if err := b.Validate(); err != nil {
		return err
	}
	data := frame.Filter(c.Data, c.Filter)
	t, names, err := field.Resolve(data, field.Named{Name: "x", Spec: b.x}, field.Named{Name: "y", Spec: b.y})
	if err != nil {
		return err
	}
	if t.Len() == 0 {
		return nil
	}
	catY, err := orient(t, names[0], names[1])
	if err != nil {
		return err
	}
	cat, num := names[0], names[1]
	if catY {
		cat, num = num, cat
	}

	st := style.Props{style.FillAlpha: 1.0}.Merge(b.style)
	sub, err := fieldColumns(t, st)
	if err != nil {
		return err
	}
	by := []string{cat}
	for _, col := range sub {
		if col != cat {
			by = append(by, col)
		}
	}
	group := strings.Join(by, ",")

	// Compute statistics per subgroup.
	var groups []boxGroup
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, g := range frame.Groups(t, by...) {
		xs, err := finite(g.Table.MustColumn(num))
		if err != nil {
			return fmt.Errorf("box plot: %w", err)
		}
		if len(xs) == 0 {
			continue
		}
		sort.Float64s(xs)
		s := mstats.Sample{Xs: xs, Sorted: true}
		bg := boxGroup{key: g.Key, rows: g.Table}
		bg.Label = joinKey(g.Key)
		bg.Q1 = s.Quantile(b.quantiles[0])
		bg.Q2 = s.Quantile(b.quantiles[1])
		bg.Q3 = s.Quantile(b.quantiles[2])
		iqr := bg.Q3 - bg.Q1
		bg.Lower, bg.Upper = bg.Q1-b.k*iqr, bg.Q3+b.k*iqr
		smin, smax := mstats.Bounds(xs)
		lo = math.Min(lo, math.Min(smin, bg.Lower))
		hi = math.Max(hi, math.Max(smax, bg.Upper))
		groups = append(groups, bg)
	}
	if len(groups) == 0 {
		return nil
	}

	// Subgroups of a category are dodged side by side in order of
	// their subgroup values.
	byCat := make(map[interface{}][]int)
	for i, g := range groups {
		k := frame.Key(g.key[0])
		byCat[k] = append(byCat[k], i)
	}
	offsets := make([]float64, len(groups))
	width := 0.5
	for _, idx := range byCat {
		sort.SliceStable(idx, func(i, j int) bool {
			ki, kj := groups[idx[i]].key[1:], groups[idx[j]].key[1:]
			for n := range ki {
				if c := frame.Compare(ki[n], kj[n]); c != 0 {
					return c < 0
				}
			}
			return false
		})
		w := 0.5 / float64(len(idx))
		width = math.Min(width, w)
		pos := []float64{0}
		if len(idx) > 1 {
			pos = vec.Linspace(-0.25, 0.25, len(idx))
		}
		for n, i := range idx {
			offsets[i] = pos[n]
		}
	}

	hover := b.hover
	if hover == nil {
		hover = b.DefaultBoxHover
	}
	stats, props, err := b.statsTable(groups, by, group, offsets, hover, st)
	if err != nil {
		return err
	}

	fig := c.Figure
	lineProps := props.Only(style.LineKeys...)
	for _, off := range distinct(offsets) {
		rows := frame.Select(stats, frame.Rows(stats, func(i int) bool {
			return offsets[i] == off
		}))
		canvas := &glyph.Canvas{Figure: fig, Legend: c.Legend, Data: rows}

		for _, w := range [][2]string{{BoxLower, BoxQ1}, {BoxQ3, BoxUpper}} {
			head := scene.LowerHead
			if w[0] == BoxQ3 {
				head = scene.UpperHead
			}
			g := scene.Glyph{
				Kind:   scene.Segment,
				Fields: map[string]string{"x0": cat, "x1": cat, "y0": w[0], "y1": w[1]},
				Values: map[string]interface{}{scene.DodgeValue: off, head: float64(whiskerHead)},
			}
			if catY {
				g.Fields = map[string]string{"y0": cat, "y1": cat, "x0": w[0], "x1": w[1]}
			}
			if _, err := glyph.RenderReducing(canvas, rows, g, lineProps, glyph.ReduceOptions{
				Tooltip: glyph.Tooltip{Mode: glyph.TooltipNone},
				Level:   scene.LevelUnderlay,
			}); err != nil {
				return err
			}
		}

		var box glyph.Spec
		if catY {
			box = glyph.HBar(field.Col(cat), field.Col(BoxQ3)).WithLeft(field.Col(BoxQ1)).WithHeight(width)
		} else {
			box = glyph.VBar(field.Col(cat), field.Col(BoxQ3)).WithBottom(field.Col(BoxQ1)).WithWidth(width)
		}
		box = box.WithName(group).WithStyle(props).WithDodge(off).
			WithLegendGroup(group).WithTooltip("{" + BoxHover + "}")
		if err := box.Draw(canvas); err != nil {
			return err
		}

		// The median is a zero-height bar. Both of its ends read the
		// one q2 column.
		median := scene.Glyph{
			Kind:   scene.VBar,
			Fields: map[string]string{"x": cat, "top": BoxQ2, "bottom": BoxQ2},
			Values: map[string]interface{}{"width": width, scene.DodgeValue: off},
		}
		if catY {
			median.Kind = scene.HBar
			median.Fields = map[string]string{"y": cat, "right": BoxQ2, "left": BoxQ2}
			median.Values = map[string]interface{}{"height": width, scene.DodgeValue: off}
		}
		if _, err := glyph.RenderReducing(canvas, rows, median, lineProps, glyph.ReduceOptions{
			Tooltip: glyph.Tooltip{Mode: glyph.TooltipNone},
			Level:   scene.LevelGlyph,
		}); err != nil {
			return err
		}
	}

	if err := b.drawOutliers(c, stats, groups, offsets, cat, num, catY, props); err != nil {
		return err
	}

	// Pad the numeric range unless the caller fixed it.
	r := fig.YRange
	if catY {
		r = fig.XRange
	}
	if r.Kind == scene.DataRange && r.Start == nil && r.End == nil {
		r.Kind = scene.FixedRange
		r.Start, r.End = plot.Bound(0.9*lo), plot.Bound(1.1*hi)
	}
	return nil
}

// statsTable builds one row per box. Field props of st are evaluated
// over the whole table and replaced by references to the resulting
// columns, so every subset of rows draws with consistent values.
func (b BoxPlot) statsTable(groups []boxGroup, by []string, group string, offsets []float64, hover BoxHoverFunc, st style.Props) (*table.Table, style.Props, error) {
	bl := new(table.Builder)
	for j, col := range by {
		vals := make([]interface{}, len(groups))
		for i, g := range groups {
			vals[i] = g.key[j]
		}
		bl.Add(col, frame.Column(vals))
	}
	if len(by) > 1 {
		labels := make([]string, len(groups))
		for i, g := range groups {
			labels[i] = g.Label
		}
		bl.Add(group, labels)
	}
	n := len(groups)
	lower, q1, q2, q3, upper := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	tips := make([]string, n)
	for i, g := range groups {
		lower[i], q1[i], q2[i], q3[i], upper[i] = g.Lower, g.Q1, g.Q2, g.Q3, g.Upper
		tips[i] = hover(g.BoxStats)
	}
	t := bl.Add(BoxLower, lower).Add(BoxQ1, q1).Add(BoxQ2, q2).Add(BoxQ3, q3).Add(BoxUpper, upper).
		Add(BoxHover, tips).Add(BoxOffset, offsets).Done()

	props := st.Merge()
	for _, k := range st.Keys() {
		spec, ok := st[k].(field.Spec)
		if !ok || !field.IsField(spec) {
			continue
		}
		var col string
		var err error
		t, col, err = field.Apply(t, spec)
		if err != nil {
			return nil, nil, fmt.Errorf("style %s: %w", k, err)
		}
		props[k] = field.Col(col)
	}
	return t, props, nil
}

// drawOutliers draws the values beyond each box's whiskers as hollow
// markers in the line style of their box.
func (b BoxPlot) drawOutliers(c *glyph.Canvas, stats *table.Table, groups []boxGroup, offsets []float64, cat, num string, catY bool, props style.Props) error {
	mprops := props.Only(style.LineKeys...).With(style.FillAlpha, 0.0)
	var propCols []string
	for _, k := range mprops.Keys() {
		if col, ok := mprops[k].(field.Column); ok {
			propCols = append(propCols, col.Name)
		}
	}

	type outliers struct {
		cats []interface{}
		nums []float64
		vals [][]interface{}
	}
	byOff := make(map[float64]*outliers)
	var order []float64
	for i, g := range groups {
		xs, err := finite(g.rows.MustColumn(num))
		if err != nil {
			return err
		}
		off := offsets[i]
		for _, x := range xs {
			if x >= g.Lower && x <= g.Upper {
				continue
			}
			o := byOff[off]
			if o == nil {
				o = &outliers{vals: make([][]interface{}, len(propCols))}
				byOff[off] = o
				order = append(order, off)
			}
			o.cats = append(o.cats, g.key[0])
			o.nums = append(o.nums, x)
			for j, col := range propCols {
				o.vals[j] = append(o.vals[j], frame.Value(stats.MustColumn(col), i))
			}
		}
	}

	for _, off := range order {
		o := byOff[off]
		tb := new(table.Builder).Add(cat, frame.Column(o.cats)).Add(num, o.nums)
		for j, col := range propCols {
			if col != cat && col != num {
				tb.Add(col, frame.Column(o.vals[j]))
			}
		}
		var s glyph.Spec
		if catY {
			s = glyph.Scatter(field.Col(num), field.Col(cat))
		} else {
			s = glyph.Scatter(field.Col(cat), field.Col(num))
		}
		s = s.WithName("outlier").WithStyle(mprops).WithDodge(off).WithTooltip("stat={" + num + "}")
		if err := s.Draw(&glyph.Canvas{Figure: c.Figure, Data: tb.Done()}); err != nil {
			return err
		}
	}
	return nil
}

func distinct(xs []float64) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}
