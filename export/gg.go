// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"image/color"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/internal/frame"
	"github.com/aclements/go-plotkit/scene"
)

// GG converts the renderers of fig to a go-gg plot. Only line, step,
// scatter, area and text glyphs have go-gg counterparts; other glyphs
// are skipped with a warning. Colors are carried over per row.
func GG(fig *scene.Figure) (*gg.Plot, error) {
	if fig == nil {
		return nil, ErrEmpty
	}
	p := gg.NewPlot(new(table.Builder).Add("x", []float64{}).Add("y", []float64{}).Done())
	layers := 0
	for _, r := range fig.Renderers {
		if !r.Visible || r.Source == nil || r.Source.Table == nil {
			continue
		}
		t, plotters := ggLayers(r)
		if plotters == nil {
			Warning.Printf("no go-gg layer for %s glyph %q", r.Glyph.Kind, r.Name)
			continue
		}
		p.Save().SetData(t).Add(plotters...).Restore()
		layers++
	}
	if layers == 0 {
		return nil, ErrEmpty
	}
	for _, d := range []scene.Dim{scene.X, scene.Y} {
		for _, a := range fig.Axes(d) {
			if a.Label != "" {
				p.Add(gg.AxisLabel(d.String(), a.Label))
				break
			}
		}
	}
	for _, it := range fig.At(scene.PlaceAbove) {
		if t, ok := it.(*scene.Title); ok && t.Text != "" {
			p.Add(gg.Title(t.Text))
			break
		}
	}
	if fig.XScale == scene.ScaleLog || fig.YScale == scene.ScaleLog {
		Warning.Print("go-gg export draws log axes linearly")
	}
	return p, nil
}

// ggColumn returns the values of channel ch as a go-gg column: numbers
// if every value is numeric, otherwise strings.
func ggColumn(rw rows, ch string) (table.Slice, bool) {
	n := rw.t.Len()
	nums := make([]float64, n)
	strs := make([]string, n)
	numeric := true
	for i := 0; i < n; i++ {
		v, ok := rw.value(ch, i)
		if !ok {
			return nil, false
		}
		if f, isNum := frame.ToFloat(v); isNum {
			nums[i] = f
		} else {
			numeric = false
		}
		strs[i] = frame.Format(v)
	}
	if numeric {
		return nums, true
	}
	return strs, true
}

// ggLayers returns the data and go-gg layers of r, or nil layers if r
// has no go-gg counterpart.
func ggLayers(r *scene.GlyphRenderer) (*table.Table, []gg.Plotter) {
	rw := newRows(r)
	n := rw.t.Len()
	b := new(table.Builder)
	add := func(name, ch string) bool {
		c, ok := ggColumn(rw, ch)
		if ok {
			b.Add(name, c)
		}
		return ok
	}
	colors := func(f func(i int) color.NRGBA) {
		cs := make([]color.NRGBA, n)
		for i := range cs {
			cs[i] = f(i)
		}
		b.Add("color", cs)
	}
	stroke := func(i int) color.NRGBA { return rw.line(i).stroke }
	fill := func(i int) color.NRGBA { return rw.fill(i, 1) }

	var plotters []gg.Plotter
	switch r.Glyph.Kind {
	case scene.Line, scene.Step:
		if !add("x", "x") || !add("y", "y") {
			return nil, nil
		}
		colors(stroke)
		paths := gg.LayerPaths{X: "x", Y: "y", Color: "color"}
		if r.Glyph.Kind == scene.Line {
			plotters = append(plotters, paths)
			break
		}
		step := gg.StepHV
		switch mode, _ := r.Glyph.Values["mode"].(string); glyph.StepMode(mode) {
		case glyph.StepBefore:
			step = gg.StepVH
		case glyph.StepCenter:
			step = gg.StepHMid
		}
		plotters = append(plotters, gg.LayerSteps{LayerPaths: paths, Step: step})

	case scene.Scatter:
		if !add("x", "x") || !add("y", "y") {
			return nil, nil
		}
		colors(fill)
		plotters = append(plotters, gg.LayerPoints{X: "x", Y: "y", Color: "color"})

	case scene.VArea:
		if !add("x", "x") || !add("upper", "y2") || !add("lower", "y1") {
			return nil, nil
		}
		colors(fill)
		plotters = append(plotters, gg.LayerArea{X: "x", Upper: "upper", Lower: "lower", Fill: "color"})

	case scene.Text:
		if !add("x", "x") || !add("y", "y") || !add("label", "text") {
			return nil, nil
		}
		plotters = append(plotters, gg.LayerTags{X: "x", Y: "y", Label: "label"})

	default:
		return nil, nil
	}

	if r.HasTag(glyph.TooltipTag) && r.Glyph.Kind != scene.VArea {
		if tc := rw.t.Column(glyph.TooltipColumn); tc != nil {
			tips := make([]string, n)
			for i := range tips {
				tips[i] = plainText(frame.Format(frame.Value(tc, i)))
			}
			b.Add("tooltip", tips)
			plotters = append(plotters, gg.LayerTooltips{X: "x", Y: "y", Label: "tooltip"})
		}
	}
	return b.Done(), plotters
}
