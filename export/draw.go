// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"image/color"
	"math"
	"math/rand"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/internal/frame"
	"github.com/aclements/go-plotkit/plot"
	"github.com/aclements/go-plotkit/scene"
	"github.com/aclements/go-plotkit/style"
)

// tickLength is the length of major ticks in pixels. Minor ticks are
// half as long.
const tickLength = 6

// legendText returns the text shown for a legend item.
func legendText(it *scene.LegendItem) string {
	if !it.Label.Field {
		return it.Label.Text
	}
	if len(it.Renderers) == 0 || it.Index < 0 {
		return it.Label.Text
	}
	src := it.Renderers[0].Source
	if src == nil || src.Table == nil {
		return it.Label.Text
	}
	col := src.Table.Column(it.Label.Text)
	if col == nil || it.Index >= src.Table.Len() {
		return it.Label.Text
	}
	return frame.Format(frame.Value(col, it.Index))
}

// drawing is a scene laid out and ready to draw.
type drawing struct {
	root   *node
	w, h   float64
	ranges map[rangeKey]extent
	tips   bool
}

func newDrawing(item scene.Item, opts Options) (*drawing, error) {
	if item == nil {
		return nil, ErrEmpty
	}
	d := &drawing{root: buildLayout(item), tips: opts.Tooltips}
	d.w, d.h = d.root.place()
	if d.w <= 0 || d.h <= 0 {
		return nil, ErrEmpty
	}
	var figs []*scene.Figure
	d.root.visit(0, 0, func(it scene.Item, _ box) {
		if f, ok := it.(*scene.Figure); ok {
			figs = append(figs, f)
		}
	})
	d.ranges = resolveRanges(figs)
	return d, nil
}

func (d *drawing) draw(p painter) {
	d.root.visit(0, 0, func(it scene.Item, b box) {
		switch it := it.(type) {
		case *scene.Figure:
			d.drawFigure(p, it, b)
		case *scene.GridBox:
			if c := parseColor(it.Background, 1, style.None); c.A != 0 {
				p.rect(b.x, b.y, b.w, b.h, pen{fill: c})
			}
		}
	})
}

// frameMaps are the coordinate maps of one figure.
type frameMaps struct {
	x, y *axisMap
	plot box
	fig  *scene.Figure
}

func (f *frameMaps) axis(d scene.Dim) *axisMap {
	if d == scene.X {
		return f.x
	}
	return f.y
}

// desired returns the tick count requested by the first axis along d.
func (f *frameMaps) desired(d scene.Dim) int {
	if as := f.fig.Axes(d); len(as) > 0 {
		return as[0].DesiredTicks
	}
	return 0
}

func (d *drawing) drawFigure(p painter, fig *scene.Figure, b box) {
	fl := layoutFigure(fig, b)
	p.rect(b.x, b.y, b.w, b.h, pen{fill: parseColor(fig.Background, 1, style.Background)})

	pl := fl.plot
	fm := &frameMaps{
		x:    newAxisMap(d.ranges[rangeKey{fig.XRange, scene.X}], fig.XScale == scene.ScaleLog, pl.x, pl.x+pl.w),
		y:    newAxisMap(d.ranges[rangeKey{fig.YRange, scene.Y}], fig.YScale == scene.ScaleLog, pl.y+pl.h, pl.y),
		plot: pl,
		fig:  fig,
	}

	for _, s := range fl.sides {
		if g, ok := s.item.(*scene.GridLines); ok && g.Visible {
			drawGrid(p, fm, g)
		}
	}

	if !fig.HasTag(plot.LegendPanelTag) {
		rs := append([]*scene.GlyphRenderer(nil), fig.Renderers...)
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Level < rs[j].Level })
		p.clip(pl.x, pl.y, pl.w, pl.h)
		for _, r := range rs {
			if r.Visible && r.Source != nil && r.Source.Table != nil {
				d.drawRenderer(p, fm, r)
			}
		}
		p.unclip()
	}

	for _, s := range fl.sides {
		switch it := s.item.(type) {
		case *scene.Axis:
			if it.Visible {
				drawAxis(p, fm, it, s.box, s.place)
			}
		case *scene.Title:
			drawTitle(p, it, s.box, s.place)
		case *scene.Legend:
			if it.Visible && len(it.Items) > 0 {
				drawLegend(p, it, s.box, s.place)
			}
		}
	}
}

func drawGrid(p painter, fm *frameMaps, g *scene.GridLines) {
	m := fm.axis(g.Dim)
	major, minor, _ := m.ticks(fm.desired(g.Dim))
	line := func(v float64, st style.Props, def string) {
		pn := propsPen(st, def, 1)
		if pn.stroke.A == 0 {
			return
		}
		px := m.num(v)
		if g.Dim == scene.X {
			p.path([]float64{px, px}, []float64{fm.plot.y, fm.plot.y + fm.plot.h}, false, pn)
		} else {
			p.path([]float64{fm.plot.x, fm.plot.x + fm.plot.w}, []float64{px, px}, false, pn)
		}
	}
	if g.MinorVisible {
		for _, v := range minor {
			line(v, g.Minor, "#f3f3f3")
		}
	}
	for _, v := range major {
		line(v, g.Major, "#e5e5e5")
	}
}

// propsPen returns the line pen described by st.
func propsPen(st style.Props, def string, width float64) pen {
	return pen{
		stroke: parseColor(st[style.LineColor], st.Float(style.LineAlpha, 1), def),
		width:  st.Float(style.LineWidth, width),
		dash:   dashes(st[style.LineDash]),
	}
}

func drawAxis(p painter, fm *frameMaps, a *scene.Axis, b box, place scene.Place) {
	m := fm.axis(a.Dim)
	major, minor, labels := m.ticks(a.DesiredTicks)
	st := a.Style

	line := pen{stroke: parseColor(st[scene.AxisLineColor], 1, "#000000"), width: 1}
	majorPen := pen{stroke: parseColor(st[scene.MajorTickLineColor], 1, "#000000"), width: 1}
	minorPen := pen{stroke: parseColor(st[scene.MinorTickLineColor], 1, "#000000"), width: 1}
	labelSz := fontSize(st[scene.MajorLabelTextFontSize], 11)
	labelColor := parseColor(st[scene.MajorLabelTextColor], 1, "#444444")

	// out is +1 when ticks grow in the positive pixel direction.
	out := 1.0
	var edge float64
	switch place {
	case scene.PlaceLeft:
		edge, out = b.x+b.w, -1
	case scene.PlaceRight:
		edge = b.x
	case scene.PlaceAbove:
		edge, out = b.y+b.h, -1
	default:
		edge = b.y
	}

	seg := func(pos, from, to float64, pn pen) {
		if pn.stroke.A == 0 {
			return
		}
		if a.Dim == scene.X {
			p.path([]float64{pos, pos}, []float64{from, to}, false, pn)
		} else {
			p.path([]float64{from, to}, []float64{pos, pos}, false, pn)
		}
	}
	if line.stroke.A != 0 {
		if a.Dim == scene.X {
			p.path([]float64{fm.plot.x, fm.plot.x + fm.plot.w}, []float64{edge, edge}, false, line)
		} else {
			p.path([]float64{edge, edge}, []float64{fm.plot.y, fm.plot.y + fm.plot.h}, false, line)
		}
	}
	for _, v := range minor {
		seg(m.num(v), edge, edge+out*tickLength/2, minorPen)
	}
	depth := float64(tickLength + 2)
	for i, v := range major {
		px := m.num(v)
		seg(px, edge, edge+out*tickLength, majorPen)
		if labelSz <= 0 || labelColor.A == 0 {
			continue
		}
		f := font{color: labelColor, size: labelSz, anchor: anchorMiddle}
		if a.Dim == scene.X {
			p.text(px, edge+out*(depth+labelSz/2), labels[i], f)
		} else {
			f.anchor = anchorEnd
			if out > 0 {
				f.anchor = anchorStart
			}
			p.text(edge+out*depth, px, labels[i], f)
		}
	}

	if a.Label == "" {
		return
	}
	lsz := labelSize(a)
	lf := font{
		color:  parseColor(a.LabelStyle[style.TextColor], 1, "#444444"),
		size:   lsz,
		anchor: anchorMiddle,
		bold:   a.LabelStyle.String(style.TextFontStyle, "") == "bold",
	}
	switch place {
	case scene.PlaceLeft:
		lf.rotate = -90
		p.text(b.x+lsz/2+2, fm.plot.y+fm.plot.h/2, a.Label, lf)
	case scene.PlaceRight:
		lf.rotate = 90
		p.text(b.x+b.w-lsz/2-2, fm.plot.y+fm.plot.h/2, a.Label, lf)
	case scene.PlaceAbove:
		p.text(fm.plot.x+fm.plot.w/2, b.y+lsz/2+2, a.Label, lf)
	default:
		p.text(fm.plot.x+fm.plot.w/2, b.y+b.h-lsz/2-2, a.Label, lf)
	}
}

func drawTitle(p painter, t *scene.Title, b box, place scene.Place) {
	if bg := parseColor(t.Background, 1, style.None); bg.A != 0 {
		p.rect(b.x, b.y, b.w, b.h, pen{fill: bg})
	}
	f := font{
		color:  parseColor(t.Style[style.TextColor], t.Style.Float(style.TextAlpha, 1), "#444444"),
		size:   fontSize(t.Style[style.TextFontSize], 13),
		anchor: anchorMiddle,
		bold:   t.Style.String(style.TextFontStyle, "bold") == "bold",
	}
	switch place {
	case scene.PlaceLeft:
		f.rotate = -90
	case scene.PlaceRight:
		f.rotate = 90
	}
	p.text(b.x+b.w/2, b.y+b.h/2, t.Text, f)
}

func drawLegend(p painter, l *scene.Legend, b box, place scene.Place) {
	w, h := legendSize(l)
	x, y := b.x, b.y
	if place == scene.PlaceCenter {
		x, y = legendCorner(l.Location, b, w, h)
	}
	if bg := parseColor(l.Background, 0.95, style.None); bg.A != 0 {
		p.rect(x, y, w, h, pen{fill: bg, stroke: parseColor("#e5e5e5", 1, ""), width: 1})
	}
	size := fontSize(l.LabelStyle[style.TextFontSize], legendFontSz)
	cy := y + legendPad
	if l.Title != "" {
		tf := font{
			color: parseColor(l.TitleStyle[style.TextColor], 1, "#444444"),
			size:  fontSize(l.TitleStyle[style.TextFontSize], legendFontSz),
			bold:  true,
		}
		p.text(x+legendPad, cy+legendRow/2, l.Title, tf)
		cy += legendRow
	}
	cx := x + legendPad
	lf := font{color: parseColor(l.LabelStyle[style.TextColor], 1, "#444444"), size: size}
	for _, it := range l.Items {
		for _, r := range it.Renderers {
			drawSwatch(p, r, it.Index, box{cx, cy + 2, legendGlyph, legendRow - 4})
		}
		text := legendText(it)
		p.text(cx+legendGlyph+6, cy+legendRow/2, text, lf)
		if l.Orientation == "horizontal" {
			cx += legendGlyph + 6 + textWidth(text, size) + legendPad
		} else {
			cy += legendRow
		}
	}
}

// legendCorner returns the top left corner of a w by h legend at
// location loc within b.
func legendCorner(loc string, b box, w, h float64) (x, y float64) {
	const inset = 10
	x, y = b.x+inset, b.y+inset
	switch loc {
	case "top_right", "right", "bottom_right":
		x = b.x + b.w - w - inset
	case "top_center", "center", "bottom_center", "top", "bottom":
		x = b.x + (b.w-w)/2
	}
	switch loc {
	case "bottom_left", "bottom_right", "bottom_center", "bottom":
		y = b.y + b.h - h - inset
	case "center_left", "center_right", "center", "left", "right":
		y = b.y + (b.h-h)/2
	}
	return x, y
}

// drawSwatch draws the legend glyph of r for row i in b.
func drawSwatch(p painter, r *scene.GlyphRenderer, i int, b box) {
	rw := newRows(r)
	if i < 0 {
		i = 0
	}
	line := rw.line(i)
	cx, cy := b.x+b.w/2, b.y+b.h/2
	switch r.Glyph.Kind {
	case scene.Scatter:
		drawMarker(p, rw.marker(i), cx, cy, math.Min(rw.size(i), b.h), pen{stroke: line.stroke, fill: rw.fill(i, 1), width: line.width})
	case scene.Line, scene.Step, scene.Segment, scene.Ray, scene.VSpan, scene.HSpan:
		p.path([]float64{b.x, b.x + b.w}, []float64{cy, cy}, false, line)
	case scene.Text:
		p.text(cx, cy, "a", rw.font(i))
	default:
		pn := pen{fill: rw.fill(i, 1), stroke: line.stroke, width: line.width}
		if r.Glyph.Kind == scene.VArea || r.Glyph.Kind == scene.HArea {
			pn.stroke = color.NRGBA{}
		}
		p.rect(b.x, b.y, b.w, b.h, pn)
	}
}

// rows reads the per-row channels and style of a renderer.
type rows struct {
	r *scene.GlyphRenderer
	t *table.Table
}

func newRows(r *scene.GlyphRenderer) rows {
	var t *table.Table
	if r.Source != nil {
		t = r.Source.Table
	}
	return rows{r, t}
}

// value returns channel ch of row i.
func (rw rows) value(ch string, i int) (interface{}, bool) {
	col, val, ok := rw.r.Glyph.Channel(ch)
	if !ok {
		return nil, false
	}
	if col == "" {
		return val, true
	}
	return rw.column(col, i)
}

func (rw rows) column(name string, i int) (interface{}, bool) {
	if rw.t == nil || i >= rw.t.Len() {
		return nil, false
	}
	c := rw.t.Column(name)
	if c == nil {
		return nil, false
	}
	return frame.Value(c, i), true
}

// float returns channel ch of row i as a number, or def.
func (rw rows) float(ch string, i int, def float64) float64 {
	v, ok := rw.value(ch, i)
	if !ok {
		return def
	}
	if f, ok := frame.ToFloat(v); ok {
		return f
	}
	return def
}

// style returns style property key of row i.
func (rw rows) style(key string, i int) interface{} {
	v, ok := rw.r.Glyph.Style[key]
	if !ok {
		return nil
	}
	if ref, ok := v.(scene.FieldRef); ok {
		v, _ = rw.column(string(ref), i)
	}
	return v
}

func (rw rows) styleFloat(key string, i int, def float64) float64 {
	if f, ok := frame.ToFloat(rw.style(key, i)); ok {
		return f
	}
	return def
}

func (rw rows) line(i int) pen {
	return pen{
		stroke: parseColor(rw.style(style.LineColor, i), rw.styleFloat(style.LineAlpha, i, 1), defaultColor),
		width:  rw.styleFloat(style.LineWidth, i, 1),
		dash:   dashes(rw.style(style.LineDash, i)),
	}
}

func (rw rows) fill(i int, alpha float64) color.NRGBA {
	return parseColor(rw.style(style.FillColor, i), rw.styleFloat(style.FillAlpha, i, alpha), defaultColor)
}

// shape returns the outline and fill pen of filled glyphs.
func (rw rows) shape(i int) pen {
	pn := rw.line(i)
	pn.fill = rw.fill(i, 1)
	return pn
}

func (rw rows) marker(i int) string {
	if s, ok := rw.style(style.MarkerType, i).(string); ok {
		return s
	}
	return "circle"
}

func (rw rows) size(i int) float64 {
	return rw.styleFloat(style.Size, i, 6)
}

func (rw rows) font(i int) font {
	f := font{
		color: parseColor(rw.style(style.TextColor, i), rw.styleFloat(style.TextAlpha, i, 1), "#444444"),
		size:  fontSize(rw.style(style.TextFontSize, i), 12),
	}
	switch rw.style(style.TextAlign, i) {
	case "center":
		f.anchor = anchorMiddle
	case "right":
		f.anchor = anchorEnd
	}
	if s, _ := rw.style(style.TextFontStyle, i).(string); s == "bold" {
		f.bold = true
	}
	return f
}

// offsets returns the categorical offset of each row from dodge and
// jitter. Jitter is seeded by the renderer so output is stable.
func offsets(r *scene.GlyphRenderer, n int) []float64 {
	dodge, _ := frame.ToFloat(r.Glyph.Values[scene.DodgeValue])
	out := make([]float64, n)
	j, hasJitter := r.Glyph.Values[scene.JitterValue].(scene.Jitter)
	rng := rand.New(rand.NewSource(r.ID()))
	for i := range out {
		out[i] = dodge
		if !hasJitter {
			continue
		}
		switch j.Distribution {
		case "normal":
			out[i] += j.Mean + j.Width*rng.NormFloat64()
		default:
			out[i] += j.Mean + j.Width*(rng.Float64()-0.5)
		}
	}
	return out
}

func (d *drawing) drawRenderer(p painter, fm *frameMaps, r *scene.GlyphRenderer) {
	rw := newRows(r)
	n := rw.t.Len()
	off := offsets(r, n)
	var tips table.Slice
	if d.tips && r.HasTag(glyph.TooltipTag) {
		tips = rw.t.Column(glyph.TooltipColumn)
	}
	// mark brackets one row's drawing with its tooltip.
	mark := func(i int, f func()) {
		if tips == nil {
			f()
			return
		}
		p.beginTip(plainText(frame.Format(frame.Value(tips, i))))
		f()
		p.endTip()
	}
	pt := func(xch, ych string, i int) (x, y float64, ok bool) {
		xv, ok1 := rw.value(xch, i)
		yv, ok2 := rw.value(ych, i)
		if !ok1 || !ok2 {
			return 0, 0, false
		}
		x, okx := fm.x.pos(xv, off[i])
		y, oky := fm.y.pos(yv, off[i])
		return x, y, okx && oky
	}
	xpos := func(ch string, i int, def interface{}) (float64, bool) {
		v, ok := rw.value(ch, i)
		if !ok {
			v = def
		}
		return fm.x.pos(v, off[i])
	}
	ypos := func(ch string, i int, def interface{}) (float64, bool) {
		v, ok := rw.value(ch, i)
		if !ok {
			v = def
		}
		return fm.y.pos(v, off[i])
	}

	switch r.Glyph.Kind {
	case scene.Scatter:
		for i := 0; i < n; i++ {
			x, y, ok := pt("x", "y", i)
			if !ok {
				continue
			}
			pn := rw.line(i)
			pn.fill = rw.fill(i, 1)
			mark(i, func() { drawMarker(p, rw.marker(i), x, y, rw.size(i), pn) })
		}

	case scene.Line, scene.Step:
		var xs, ys []float64
		flush := func() {
			if len(xs) > 1 {
				if r.Glyph.Kind == scene.Step {
					mode, _ := r.Glyph.Values["mode"].(string)
					xs, ys = steps(xs, ys, mode)
				}
				p.path(xs, ys, false, rw.line(0))
			}
			xs, ys = nil, nil
		}
		for i := 0; i < n; i++ {
			x, y, ok := pt("x", "y", i)
			if !ok {
				flush()
				continue
			}
			xs, ys = append(xs, x), append(ys, y)
		}
		flush()

	case scene.VSpan:
		for i := 0; i < n; i++ {
			if x, ok := xpos("x", i, nil); ok {
				p.path([]float64{x, x}, []float64{fm.plot.y, fm.plot.y + fm.plot.h}, false, rw.line(i))
			}
		}

	case scene.HSpan:
		for i := 0; i < n; i++ {
			if y, ok := ypos("y", i, nil); ok {
				p.path([]float64{fm.plot.x, fm.plot.x + fm.plot.w}, []float64{y, y}, false, rw.line(i))
			}
		}

	case scene.Segment:
		lh, _ := frame.ToFloat(r.Glyph.Values[scene.LowerHead])
		uh, _ := frame.ToFloat(r.Glyph.Values[scene.UpperHead])
		for i := 0; i < n; i++ {
			x0, y0, ok0 := pt("x0", "y0", i)
			x1, y1, ok1 := pt("x1", "y1", i)
			if !ok0 || !ok1 {
				continue
			}
			pn := rw.line(i)
			mark(i, func() {
				p.path([]float64{x0, x1}, []float64{y0, y1}, false, pn)
				tee(p, x0, y0, x1, y1, lh, pn)
				tee(p, x1, y1, x0, y0, uh, pn)
			})
		}

	case scene.Ray:
		for i := 0; i < n; i++ {
			x, y, ok := pt("x", "y", i)
			if !ok {
				continue
			}
			a := rw.float("angle", i, 0) * math.Pi / 180
			l := rw.float("length", i, 0)
			if l <= 0 {
				l = fm.plot.w + fm.plot.h
			}
			p.path([]float64{x, x + l*math.Cos(a)}, []float64{y, y - l*math.Sin(a)}, false, rw.line(i))
		}

	case scene.VBar:
		for i := 0; i < n; i++ {
			x, okx := xpos("x", i, nil)
			top, okt := ypos("top", i, nil)
			bottom, okb := ypos("bottom", i, 0.0)
			if !okx || !okt || !okb {
				continue
			}
			hw := fm.x.span(rw.float("width", i, 0.8)) / 2
			pn := rw.shape(i)
			mark(i, func() { p.rect(x-hw, math.Min(top, bottom), 2*hw, math.Abs(bottom-top), pn) })
		}

	case scene.HBar:
		for i := 0; i < n; i++ {
			y, oky := ypos("y", i, nil)
			right, okr := xpos("right", i, nil)
			left, okl := xpos("left", i, 0.0)
			if !oky || !okr || !okl {
				continue
			}
			hh := fm.y.span(rw.float("height", i, 0.8)) / 2
			pn := rw.shape(i)
			mark(i, func() { p.rect(math.Min(left, right), y-hh, math.Abs(right-left), 2*hh, pn) })
		}

	case scene.Quad:
		for i := 0; i < n; i++ {
			left, ok1 := xpos("left", i, nil)
			right, ok2 := xpos("right", i, nil)
			top, ok3 := ypos("top", i, nil)
			bottom, ok4 := ypos("bottom", i, nil)
			if !ok1 || !ok2 || !ok3 || !ok4 {
				continue
			}
			pn := rw.shape(i)
			mark(i, func() {
				p.rect(math.Min(left, right), math.Min(top, bottom), math.Abs(right-left), math.Abs(bottom-top), pn)
			})
		}

	case scene.VArea, scene.HArea:
		along, lo, hi := "x", "y1", "y2"
		if r.Glyph.Kind == scene.HArea {
			along, lo, hi = "y", "x1", "x2"
		}
		var fwdX, fwdY, backX, backY []float64
		flush := func() {
			if len(fwdX) > 1 {
				for i := len(backX) - 1; i >= 0; i-- {
					fwdX, fwdY = append(fwdX, backX[i]), append(fwdY, backY[i])
				}
				p.path(fwdX, fwdY, true, pen{fill: rw.fill(0, 1)})
			}
			fwdX, fwdY, backX, backY = nil, nil, nil, nil
		}
		for i := 0; i < n; i++ {
			var x0, y0, x1, y1 float64
			var ok0, ok1 bool
			if along == "x" {
				x0, y0, ok0 = pt(along, lo, i)
				x1, y1, ok1 = pt(along, hi, i)
			} else {
				x0, y0, ok0 = pt(lo, along, i)
				x1, y1, ok1 = pt(hi, along, i)
			}
			if !ok0 || !ok1 {
				flush()
				continue
			}
			fwdX, fwdY = append(fwdX, x0), append(fwdY, y0)
			backX, backY = append(backX, x1), append(backY, y1)
		}
		flush()

	case scene.Text:
		for i := 0; i < n; i++ {
			x, y, ok := pt("x", "y", i)
			if !ok {
				continue
			}
			v, ok := rw.value("text", i)
			if !ok || v == nil {
				continue
			}
			f := rw.font(i)
			mark(i, func() { p.text(x, y, frame.Format(v), f) })
		}

	default:
		Warning.Printf("cannot draw glyph kind %q", r.Glyph.Kind)
	}
}

// steps expands a polyline into steps.
func steps(xs, ys []float64, mode string) (sx, sy []float64) {
	sx, sy = []float64{xs[0]}, []float64{ys[0]}
	for i := 1; i < len(xs); i++ {
		switch glyph.StepMode(mode) {
		case glyph.StepBefore:
			sx, sy = append(sx, xs[i-1]), append(sy, ys[i])
		case glyph.StepCenter:
			mid := (xs[i-1] + xs[i]) / 2
			sx, sy = append(sx, mid, mid), append(sy, ys[i-1], ys[i])
		default:
			sx, sy = append(sx, xs[i]), append(sy, ys[i-1])
		}
		sx, sy = append(sx, xs[i]), append(sy, ys[i])
	}
	return sx, sy
}

// tee draws a head of width w across (x0, y0), perpendicular to the
// segment towards (x1, y1).
func tee(p painter, x0, y0, x1, y1, w float64, pn pen) {
	if w <= 0 {
		return
	}
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	nx, ny := -dy/l*w/2, dx/l*w/2
	p.path([]float64{x0 - nx, x0 + nx}, []float64{y0 - ny, y0 + ny}, false, pn)
}

// drawMarker draws a marker of the given type and size centered at
// (x, y).
func drawMarker(p painter, kind string, x, y, size float64, pn pen) {
	r := size / 2
	stroke := pen{stroke: pn.stroke, width: pn.width}
	poly := func(pts ...float64) {
		var xs, ys []float64
		for i := 0; i < len(pts); i += 2 {
			xs, ys = append(xs, x+pts[i]*r), append(ys, y+pts[i+1]*r)
		}
		p.path(xs, ys, true, pn)
	}
	cross := func() {
		p.path([]float64{x - r, x + r}, []float64{y, y}, false, stroke)
		p.path([]float64{x, x}, []float64{y - r, y + r}, false, stroke)
	}
	ex := func(k float64) {
		p.path([]float64{x - k, x + k}, []float64{y - k, y + k}, false, stroke)
		p.path([]float64{x - k, x + k}, []float64{y + k, y - k}, false, stroke)
	}
	switch kind {
	case "square", "square_cross", "square_x":
		p.rect(x-r, y-r, 2*r, 2*r, pn)
		switch kind {
		case "square_cross":
			cross()
		case "square_x":
			ex(r)
		}
	case "triangle", "triangle_dot":
		poly(0, -1, 0.87, 0.5, -0.87, 0.5)
		if kind == "triangle_dot" {
			p.circle(x, y, 1, pen{fill: pn.stroke})
		}
	case "inverted_triangle":
		poly(0, 1, 0.87, -0.5, -0.87, -0.5)
	case "diamond", "diamond_cross":
		poly(0, -1, 0.7, 0, 0, 1, -0.7, 0)
		if kind == "diamond_cross" {
			cross()
		}
	case "hex":
		poly(-1, 0, -0.5, -0.87, 0.5, -0.87, 1, 0, 0.5, 0.87, -0.5, 0.87)
	case "star":
		var pts []float64
		for i := 0; i < 10; i++ {
			a := math.Pi/2 + float64(i)*math.Pi/5
			k := 1.0
			if i%2 == 1 {
				k = 0.4
			}
			pts = append(pts, k*math.Cos(a), -k*math.Sin(a))
		}
		poly(pts...)
	case "plus", "cross":
		cross()
	case "x":
		ex(r * 0.7)
	case "asterisk":
		cross()
		ex(r * 0.7)
	case "dash":
		p.path([]float64{x - r, x + r}, []float64{y, y}, false, stroke)
	case "y":
		p.path([]float64{x, x}, []float64{y, y + r}, false, stroke)
		p.path([]float64{x, x - 0.87*r}, []float64{y, y - 0.5*r}, false, stroke)
		p.path([]float64{x, x + 0.87*r}, []float64{y, y - 0.5*r}, false, stroke)
	case "dot":
		p.circle(x, y, math.Max(1, r/3), pen{fill: pn.stroke})
	default:
		p.circle(x, y, r, pn)
		switch kind {
		case "circle_cross":
			cross()
		case "circle_x":
			ex(r * 0.7)
		}
	}
}
